package extraction

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedOutput = errors.New("malformed backend output")
	ErrSchemaViolation = errors.New("schema violation")
)

// MalformedOutputError means no parseable JSON could be located.
type MalformedOutputError struct {
	Reason string
	Err    error
}

func (e *MalformedOutputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed backend output: %s: %v", e.Reason, e.Err)
	}
	return "malformed backend output: " + e.Reason
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

func (e *MalformedOutputError) Is(target error) bool { return target == ErrMalformedOutput }

// SchemaViolationError names the fields that did not fit the content kind.
type SchemaViolationError struct {
	Kind   Kind
	Fields []string
}

func (e *SchemaViolationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s does not match schema", e.Kind)
	}
	return fmt.Sprintf("%s does not match schema: %s", e.Kind, strings.Join(e.Fields, ", "))
}

func (e *SchemaViolationError) Is(target error) bool { return target == ErrSchemaViolation }
