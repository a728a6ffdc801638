package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes/pkg/errors"
)

func TestLimiter_AllowExhaustsBurst(t *testing.T) {
	l := NewLimiter(ProviderNameOpenAI, 60, 2)

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow(), "burst of 2 must reject the third immediate request")
}

func TestLimiter_Defaults(t *testing.T) {
	// Non-positive inputs fall back to 60/min with a 10% burst.
	l := NewLimiter(ProviderNameGemini, 0, 0)
	assert.True(t, l.Allow())
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	l := NewLimiter(ProviderNameOpenAI, 60, 1)
	require.True(t, l.Allow(), "drain the burst token")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrRateLimitExceeded))
}
