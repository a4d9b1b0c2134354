package quotes

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrSubmissionNotFound is returned when a submission lookup has no match
	ErrSubmissionNotFound = errors.New("quote submission not found")

	// ErrDuplicateID is returned when a create would overwrite an existing id
	ErrDuplicateID = errors.New("submission id already exists")
)

// ValidationError reports schema violations keyed by the offending field.
// The HTTP layer responds with a generic message; the field detail is for
// logs and tests.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) ok() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	var b strings.Builder
	b.WriteString("invalid submission")
	for i, f := range fields {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", f, e.Fields[f])
	}
	return b.String()
}

// Field returns the message recorded for a field, or "" if the field passed.
func (e *ValidationError) Field(name string) string {
	return e.Fields[name]
}
