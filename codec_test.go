package authgate

import (
	"encoding/base64"
	"errors"
	"testing"
)

func basicHeader(payload string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(payload))
}

func TestDecodeBasicHeader(t *testing.T) {
	creds, err := decodeBasicHeader("Basic", basicHeader("a@x.com:secret"))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if creds.Identifier != "a@x.com" || creds.Secret != "secret" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
}

func TestDecodeBasicHeaderSecretKeepsColons(t *testing.T) {
	creds, err := decodeBasicHeader("Basic", basicHeader("a@x.com:pa:ss:wd"))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if creds.Secret != "pa:ss:wd" {
		t.Fatalf("secret truncated at colon: %q", creds.Secret)
	}
}

func TestDecodeBasicHeaderRejects(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   error
	}{
		{"empty", "", ErrMalformedHeader},
		{"wrong scheme", "Bearer abc", ErrMalformedHeader},
		{"scheme only", "Basic ", ErrMalformedHeader},
		{"embedded space", "Basic ab cd", ErrMalformedHeader},
		{"not base64", "Basic ???", ErrDecodeFailed},
		{"non canonical base64", "Basic QUJDRA", ErrDecodeFailed},
		{"binary payload", "Basic " + base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0x3a, 0x41}), ErrDecodeFailed},
		{"no colon", basicHeader("justtext"), ErrMalformedCredentials},
		{"empty identifier", basicHeader(":secret"), ErrMalformedCredentials},
		{"empty secret", basicHeader("a@x.com:"), ErrMalformedCredentials},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeBasicHeader("Basic", tc.header)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestDecodeBasicHeaderCustomScheme(t *testing.T) {
	header := "X-Auth " + base64.StdEncoding.EncodeToString([]byte("u:p"))

	if _, err := decodeBasicHeader("X-Auth", header); err != nil {
		t.Fatalf("custom scheme rejected: %v", err)
	}
	if _, err := decodeBasicHeader("Basic", header); !errors.Is(err, ErrMalformedHeader) {
		t.Fatalf("foreign scheme accepted: %v", err)
	}
}
