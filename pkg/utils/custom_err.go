package utils

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrAPIKeyMissing = errors.New("api key not configured")
	ErrRateLimited   = errors.New("rate limit exceeded")
	ErrTimeout       = errors.New("request timed out")
	ErrNotFound      = errors.New("resource not found")
	ErrNoCandidates  = errors.New("no candidate places found")
	ErrDatabaseError = errors.New("database error")
	ErrUnexpectedLLM = errors.New("unexpected model output")
	ErrInvalidInput  = errors.New("invalid input")
)

// ExternalSourceError reports an unreachable or misbehaving collaborator.
// The supplier retries these with backoff; an escalated one tells the planner
// to fall back to graph mode.
type ExternalSourceError struct {
	Source string
	Cause  error
}

func (e *ExternalSourceError) Error() string {
	return fmt.Sprintf("external source %s: %v", e.Source, e.Cause)
}

func (e *ExternalSourceError) Unwrap() error { return e.Cause }

func NewExternalSourceError(source string, cause error) *ExternalSourceError {
	return &ExternalSourceError{Source: source, Cause: cause}
}

// AgentStageError reports a failed crew-pipeline stage. Never retried within
// crew mode; it immediately triggers the graph fallback.
type AgentStageError struct {
	Stage string
	Cause error
}

func (e *AgentStageError) Error() string {
	return fmt.Sprintf("agent stage %s: %v", e.Stage, e.Cause)
}

func (e *AgentStageError) Unwrap() error { return e.Cause }

func NewAgentStageError(stage string, cause error) *AgentStageError {
	return &AgentStageError{Stage: stage, Cause: cause}
}

// IsFallbackTrigger reports whether err should flip the planner from crew
// mode into the graph fallback instead of surfacing to the caller.
func IsFallbackTrigger(err error) bool {
	if err == nil {
		return false
	}
	var stageErr *AgentStageError
	var sourceErr *ExternalSourceError
	return errors.As(err, &stageErr) ||
		errors.As(err, &sourceErr) ||
		errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrNoCandidates)
}
