package llm

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsRateLimitError(t *testing.T) {
	assert.False(t, IsRateLimitError(nil))
	assert.False(t, IsRateLimitError(errors.New("connection refused")))

	assert.True(t, IsRateLimitError(errors.New("googleapi: Error 429: Resource has been exhausted")))
	assert.True(t, IsRateLimitError(errors.New("rpc error: code = ResourceExhausted desc = RESOURCE_EXHAUSTED")))
	assert.True(t, IsRateLimitError(errors.New("you have exceeded your quota")))
}

func TestExtractRetryDelay(t *testing.T) {
	assert.Equal(t, time.Duration(0), ExtractRetryDelay(nil))
	assert.Equal(t, time.Duration(0), ExtractRetryDelay(errors.New("some other error")))

	err := errors.New("Error 429: Please retry in 17s")
	assert.Equal(t, 17*time.Second, ExtractRetryDelay(err))

	err = errors.New(`RESOURCE_EXHAUSTED: retryDelay: 42s`)
	assert.Equal(t, 42*time.Second, ExtractRetryDelay(err))

	err = errors.New("Please retry in 2.5s")
	assert.Equal(t, 2500*time.Millisecond, ExtractRetryDelay(err))
}

func TestCalculateBackoff(t *testing.T) {
	config := NewDefaultRetryConfig()

	// No API hint: initial backoff grows by the multiplier per attempt
	assert.Equal(t, 30*time.Second, config.CalculateBackoff(0, 0))
	assert.Equal(t, 45*time.Second, config.CalculateBackoff(1, 0))

	// Capped at MaxBackoff
	assert.Equal(t, 90*time.Second, config.CalculateBackoff(5, 0))

	// API-suggested delay is used as the base with a safety margin
	assert.Equal(t, 15*time.Second, config.CalculateBackoff(0, 10*time.Second))
}
