package authgate

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Redaction is the replacement text written over redacted field values.
const Redaction = "***"

// FilterFields obfuscates the values of the named fields inside a
// "key=value<separator>" formatted message. It is a pure string transform:
// no logger state, no handler registration.
func FilterFields(fields []string, redaction, message, separator string) string {
	if len(fields) == 0 {
		return message
	}

	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = regexp.QuoteMeta(f)
	}

	pattern := fmt.Sprintf("(%s)=[^%s]*", strings.Join(quoted, "|"), regexp.QuoteMeta(separator))
	return regexp.MustCompile(pattern).ReplaceAllString(message, "${1}="+redaction)
}

// RedactingSink decorates another sink, replacing the values of configured
// PII metadata fields before events leave the process. The wrapped event is
// copied; the caller's metadata map is never mutated.
type RedactingSink struct {
	sink   AuditSink
	fields map[string]struct{}
}

// NewRedactingSink wraps sink with redaction of the given metadata fields.
func NewRedactingSink(sink AuditSink, fields []string) *RedactingSink {
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return &RedactingSink{
		sink:   sink,
		fields: set,
	}
}

func (s *RedactingSink) Emit(ctx context.Context, event AuditEvent) {
	if s == nil || s.sink == nil {
		return
	}

	if len(event.Metadata) > 0 {
		var redacted map[string]string
		for k := range event.Metadata {
			if _, ok := s.fields[k]; !ok {
				continue
			}
			if redacted == nil {
				redacted = make(map[string]string, len(event.Metadata))
				for mk, mv := range event.Metadata {
					redacted[mk] = mv
				}
			}
			redacted[k] = Redaction
		}
		if redacted != nil {
			event.Metadata = redacted
		}
	}

	s.sink.Emit(ctx, event)
}
