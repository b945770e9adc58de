// Package toolerr provides structured error types for the agent loop,
// distinguishing failures a tool call can recover from (fed back to the
// model as tool-result content) from failures that terminate the stream.
package toolerr

import (
	"errors"
	"fmt"
)

// ToolError represents a failure local to one tool invocation. It never
// aborts the agent loop: the caller reports it as a tool-output-error event
// and continues the turn.
type ToolError struct {
	Message string
	Cause   *ToolError
}

// New constructs a ToolError with the given message.
func New(message string) *ToolError {
	if message == "" {
		message = "tool error"
	}
	return &ToolError{Message: message}
}

// Errorf formats a ToolError.
func Errorf(format string, args ...any) *ToolError {
	return New(fmt.Sprintf(format, args...))
}

// FromError wraps an arbitrary error as a ToolError chain, preserving an
// existing chain via errors.As.
func FromError(err error) *ToolError {
	if err == nil {
		return nil
	}
	var te *ToolError
	if errors.As(err, &te) {
		return te
	}
	return &ToolError{Message: err.Error(), Cause: FromError(errors.Unwrap(err))}
}

func (e *ToolError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *ToolError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// AgentError represents a failure that terminates the agent loop entirely:
// an upstream provider failure, a context cancellation surfaced as an error,
// or an unrecovered panic. The agent loop emits exactly one terminal `error`
// stream event for this kind and releases all resources.
type AgentError struct {
	Message string
	Cause   error
}

// NewAgent wraps err as a fatal AgentError.
func NewAgent(err error) *AgentError {
	if err == nil {
		return nil
	}
	return &AgentError{Message: err.Error(), Cause: err}
}

func (e *AgentError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *AgentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
