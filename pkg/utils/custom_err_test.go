package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalSourceErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewExternalSourceError("weather", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "weather")

	var srcErr *ExternalSourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "weather", srcErr.Source)
}

func TestAgentStageErrorUnwraps(t *testing.T) {
	err := NewAgentStageError("selection", ErrNoCandidates)

	assert.ErrorIs(t, err, ErrNoCandidates)

	var stageErr *AgentStageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, "selection", stageErr.Stage)
}

func TestIsFallbackTrigger(t *testing.T) {
	triggers := []error{
		ErrRateLimited,
		ErrTimeout,
		ErrNoCandidates,
		NewExternalSourceError("places", errors.New("boom")),
		NewAgentStageError("research", errors.New("boom")),
		fmt.Errorf("wrapped: %w", ErrTimeout),
	}
	for _, err := range triggers {
		assert.True(t, IsFallbackTrigger(err), "expected trigger: %v", err)
	}

	nonTriggers := []error{
		nil,
		ErrValidation,
		ErrInvalidInput,
		errors.New("plain"),
	}
	for _, err := range nonTriggers {
		assert.False(t, IsFallbackTrigger(err), "unexpected trigger: %v", err)
	}
}
