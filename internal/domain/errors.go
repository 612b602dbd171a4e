package domain

import (
	"fmt"
	"strings"
)

// SubmissionError is returned when the service rejects an operation
// outright (error status at submission or at a non-retryable step).
// The message keeps the service summary on the first line and the
// itemized per-item reasons on the following lines so operators can see
// both at once.
type SubmissionError struct {
	Message string
	Reasons []string
}

func (e *SubmissionError) Error() string {
	if len(e.Reasons) == 0 {
		return e.Message
	}
	return e.Message + "\n" + strings.Join(e.Reasons, "\n")
}

// TransportError is a network or HTTP level failure. It is never
// retried by this layer and aborts the whole flow it occurs in.
type TransportError struct {
	Op       string
	HTTPCode int
	Err      error
}

func (e *TransportError) Error() string {
	if e.HTTPCode != 0 {
		return fmt.Sprintf("%s: unexpected HTTP %d", e.Op, e.HTTPCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// PrintError is returned when a print job never materialized an
// artifact within the attempt budget. It carries the last status
// message the service reported plus any per-item failure reasons.
type PrintError struct {
	Message string
	Reasons []string
}

func (e *PrintError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "print job did not produce an artifact"
	}
	if len(e.Reasons) == 0 {
		return msg
	}
	return msg + "\n" + strings.Join(e.Reasons, "\n")
}
