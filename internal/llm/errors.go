package llm

import (
	"errors"
	"fmt"
)

// Extraction failure taxonomy. All are retryable under the orchestrator's
// uniform retry policy and never reach its caller.
var (
	// ErrEmptyOutput means the model returned no usable text.
	ErrEmptyOutput = errors.New("llm: empty output")
	// ErrMalformedOutput means text was present but no parseable JSON object
	// could be found in it.
	ErrMalformedOutput = errors.New("llm: malformed output")
	// ErrSoftBlocked means the service declined to answer for policy reasons.
	ErrSoftBlocked = errors.New("llm: prompt blocked")
)

const snippetLen = 200

// MalformedOutputError carries a truncated snippet of the offending text for
// diagnostics. Unwraps to ErrMalformedOutput.
type MalformedOutputError struct {
	Snippet string
	Cause   error
}

func (e *MalformedOutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm: malformed output: %v (snippet: %q)", e.Cause, e.Snippet)
	}
	return fmt.Sprintf("llm: malformed output (snippet: %q)", e.Snippet)
}

func (e *MalformedOutputError) Unwrap() error { return ErrMalformedOutput }

// BlockedError carries the service's block reason. Unwraps to ErrSoftBlocked.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("llm: prompt blocked: %s", e.Reason)
}

func (e *BlockedError) Unwrap() error { return ErrSoftBlocked }

func snippet(s string) string {
	if len(s) > snippetLen {
		return s[:snippetLen] + "..."
	}
	return s
}
