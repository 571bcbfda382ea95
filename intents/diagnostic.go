package intents

import (
	"errors"
	"fmt"
)

type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warn"
	}
	return "error"
}

var (
	ErrUnsupportedByte = errors.New("unsupported operator")
	ErrComment         = errors.New("comments are not supported")
	ErrNotOpened       = errors.New("source has not been opened")
	ErrPointerRange    = errors.New("data pointer out of range")
	ErrNoClosing       = errors.New("no closing bracket")
	ErrNoOpening       = errors.New("no opening bracket")
)

// Diagnostic is an error carrying its source location. Kind is one of the
// Err* sentinels and matches with errors.Is.
type Diagnostic struct {
	Severity Severity
	Kind     error
	Location Location
	Message  string
}

var _ error = new(Diagnostic)

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s L%d C%d: %s", d.Severity, d.Location.Line, d.Location.Column, d.Message)
}

func (d *Diagnostic) Unwrap() error {
	return d.Kind
}

func (d *Diagnostic) Fatal() bool {
	return errors.Is(d.Kind, ErrNoClosing)
}
