package authgate

import (
	"context"
	"testing"
)

func TestFilterFields(t *testing.T) {
	cases := []struct {
		name    string
		fields  []string
		message string
		want    string
	}{
		{
			"single field",
			[]string{"password"},
			"name=bob;password=hunter2;ip=1.2.3.4;",
			"name=bob;password=***;ip=1.2.3.4;",
		},
		{
			"multiple fields",
			[]string{"email", "password"},
			"email=a@x.com;password=hunter2;last_login=yesterday;",
			"email=***;password=***;last_login=yesterday;",
		},
		{
			"no match",
			[]string{"ssn"},
			"name=bob;ip=1.2.3.4;",
			"name=bob;ip=1.2.3.4;",
		},
		{
			"empty value",
			[]string{"password"},
			"password=;name=bob;",
			"password=***;name=bob;",
		},
		{
			"no fields",
			nil,
			"password=hunter2;",
			"password=hunter2;",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterFields(tc.fields, Redaction, tc.message, ";")
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRedactingSink(t *testing.T) {
	inner := NewChannelSink(1)
	sink := NewRedactingSink(inner, []string{"email", "password"})

	meta := map[string]string{
		"email": "a@x.com",
		"stage": "verify",
	}
	sink.Emit(context.Background(), AuditEvent{EventType: "basic.reject", Metadata: meta})

	e := <-inner.Events()
	if e.Metadata["email"] != Redaction {
		t.Fatalf("email not redacted: %q", e.Metadata["email"])
	}
	if e.Metadata["stage"] != "verify" {
		t.Fatalf("non-PII field touched: %q", e.Metadata["stage"])
	}
	if meta["email"] != "a@x.com" {
		t.Fatal("caller's metadata map was mutated")
	}
}

func TestRedactingSinkPassThrough(t *testing.T) {
	inner := NewChannelSink(1)
	sink := NewRedactingSink(inner, []string{"email"})

	sink.Emit(context.Background(), AuditEvent{
		EventType: "auth.success",
		Metadata:  map[string]string{"stage": "verify"},
	})

	e := <-inner.Events()
	if e.Metadata["stage"] != "verify" {
		t.Fatalf("metadata altered without redactable fields: %+v", e.Metadata)
	}
}
