package authgate

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"
)

// decodeBasicHeader decodes an authorization header of the form
// "<scheme> <base64(identifier:secret)>" into credentials. Runs in O(len)
// with no side effects.
//
// The split happens at the FIRST colon: everything after it, further colons
// included, belongs to the secret verbatim. Base64 decoding is strict
// (non-canonical input is rejected) and the decoded bytes must be UTF-8
// text.
func decodeBasicHeader(scheme, header string) (Credentials, error) {
	header = strings.TrimSpace(header)

	prefix := scheme + " "
	if !strings.HasPrefix(header, prefix) {
		return Credentials{}, ErrMalformedHeader
	}

	token := header[len(prefix):]
	if token == "" || strings.ContainsAny(token, " \t") {
		return Credentials{}, ErrMalformedHeader
	}

	raw, err := base64.StdEncoding.Strict().DecodeString(token)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	if !utf8.Valid(raw) {
		return Credentials{}, ErrDecodeFailed
	}

	text := string(raw)
	sep := strings.IndexByte(text, ':')
	if sep <= 0 || sep == len(text)-1 {
		return Credentials{}, ErrMalformedCredentials
	}

	return Credentials{
		Identifier: text[:sep],
		Secret:     text[sep+1:],
	}, nil
}
