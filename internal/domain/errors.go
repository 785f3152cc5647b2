package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEntityNotFound    = errors.New("entity not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrScopeViolation    = errors.New("scope violation")
	ErrToolNotFound      = errors.New("tool not found")
	ErrInvalidTransition = errors.New("invalid pending action transition")
	ErrSecretNotFound    = errors.New("secret not found")
)

// AmbiguousEntityError means several records matched a reference equally well.
type AmbiguousEntityError struct {
	Reference  string
	Type       EntityType
	Candidates []ResolvedEntity
}

func (e *AmbiguousEntityError) Error() string {
	names := make([]string, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		names = append(names, c.Label())
	}
	return fmt.Sprintf("ambiguous %s reference %q: %s", e.Type.Label(), e.Reference, strings.Join(names, ", "))
}

type NoMatchError struct {
	Reference string
	Type      EntityType
}

func (e *NoMatchError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("no entity matches %q", e.Reference)
	}
	return fmt.Sprintf("no %s matches %q", e.Type.Label(), e.Reference)
}

type DateParseError struct {
	Expression string
	Reason     string
}

func (e *DateParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("cannot parse date %q", e.Expression)
	}
	return fmt.Sprintf("cannot parse date %q: %s", e.Expression, e.Reason)
}

type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

func (e *UnknownToolError) Unwrap() error {
	return ErrToolNotFound
}

type SchemaValidationError struct {
	Tool   string
	Field  string
	Reason string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("%s: invalid argument %q: %s", e.Tool, e.Field, e.Reason)
}

// Missing reports whether the field was required but absent.
func (e *SchemaValidationError) Missing() bool {
	return e.Reason == ReasonRequired
}

const ReasonRequired = "required"

// ExecutionError reports a failed store operation together with every record
// that had already been written before the failure.
type ExecutionError struct {
	Tool      string
	Completed []CascadeRecord
	Err       error
}

func (e *ExecutionError) Error() string {
	if len(e.Completed) == 0 {
		return fmt.Sprintf("execute %s: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("execute %s: %v (after %d completed step(s))", e.Tool, e.Err, len(e.Completed))
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

type ExpiredActionError struct {
	ToolName string
}

func (e *ExpiredActionError) Error() string {
	return fmt.Sprintf("pending %s action expired", e.ToolName)
}
