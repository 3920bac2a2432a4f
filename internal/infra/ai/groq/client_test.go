package groq

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/resume-insight/internal/domain/analysis"
)

func TestCompleteWithoutKey(t *testing.T) {
	c := NewClient("", "llama-3.3-70b-versatile", nil, 0.2, 0.9, 3)

	_, err := c.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, analysis.ErrNotConfigured)
}

func TestCandidatesDeduplicatesPrimary(t *testing.T) {
	c := NewClient("key", "m1", []string{"m2", "m1", "m3"}, 0.2, 0.9, 3)
	assert.Equal(t, []string{"m1", "m2", "m3"}, c.candidates())
}

func TestCandidatesPrimaryOnly(t *testing.T) {
	c := NewClient("key", "m1", nil, 0.2, 0.9, 3)
	assert.Equal(t, []string{"m1"}, c.candidates())
}

func TestIsModelBlocked(t *testing.T) {
	blocked := []error{
		errors.New("error, status code: 403, message: model_permission_blocked_project"),
		errors.New("the model is blocked at the project level"),
		errors.New("error, status code: 404, message: model_not_found"),
	}
	for _, err := range blocked {
		assert.True(t, isModelBlocked(err), err.Error())
	}

	assert.False(t, isModelBlocked(errors.New("error, status code: 429, message: rate limit reached")))
	assert.False(t, isModelBlocked(errors.New("context deadline exceeded")))
}

func TestNewClientRetryFloor(t *testing.T) {
	c := NewClient("key", "m1", nil, 0.2, 0.9, 0)
	assert.Equal(t, 3, c.maxRetries)
}
