package service

import "fmt"

// ProcessingError is the only failure SuggestReply reports to callers. The
// message embeds the underlying cause.
type ProcessingError struct {
	Cause error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing failed: %v", e.Cause)
}

func (e *ProcessingError) Unwrap() error {
	return e.Cause
}
