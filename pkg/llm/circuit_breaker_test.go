package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// funcClient delegates Chat to a closure; useful for scripting behavior.
type funcClient struct {
	fn func(ctx context.Context, messages []Message, tools []Tool) (*Response, error)
}

func (f *funcClient) Chat(ctx context.Context, messages []Message, tools []Tool) (*Response, error) {
	return f.fn(ctx, messages, tools)
}

func (f *funcClient) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCircuitBreakerClientPassesThrough(t *testing.T) {
	inner := &funcClient{fn: func(context.Context, []Message, []Tool) (*Response, error) {
		return &Response{Content: "hello"}, nil
	}}
	client := NewCircuitBreakerClient(inner, nil, discardLogger(), "llm")

	resp, err := client.Chat(context.Background(), []Message{NewUserMessage("hi")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Content)
}

func TestCircuitBreakerClientOpensAfterConsecutiveFailures(t *testing.T) {
	calls := 0
	inner := &funcClient{fn: func(context.Context, []Message, []Tool) (*Response, error) {
		calls++
		return nil, errors.New("provider down")
	}}
	config := &BreakerConfig{
		ConsecutiveFailures: 3,
		Timeout:             time.Minute,
		MaxRequests:         1,
	}
	client := NewCircuitBreakerClient(inner, config, discardLogger(), "llm")

	for i := 0; i < 3; i++ {
		_, err := client.Chat(context.Background(), nil, nil)
		require.Error(t, err)
		assert.False(t, IsCircuitOpen(err), "call %d should reach the provider", i+1)
	}

	_, err := client.Chat(context.Background(), nil, nil)
	require.Error(t, err)
	assert.True(t, IsCircuitOpen(err))
	assert.Contains(t, err.Error(), "circuit breaker 'llm' is open")
	assert.Equal(t, 3, calls, "open breaker must not reach the provider")
}

func TestCircuitBreakerClientSuccessResetsFailureCount(t *testing.T) {
	calls := 0
	inner := &funcClient{fn: func(context.Context, []Message, []Tool) (*Response, error) {
		calls++
		if calls%3 == 0 {
			return &Response{Content: "ok"}, nil
		}
		return nil, errors.New("flaky")
	}}
	config := &BreakerConfig{
		ConsecutiveFailures: 3,
		Timeout:             time.Minute,
		MaxRequests:         1,
	}
	client := NewCircuitBreakerClient(inner, config, discardLogger(), "llm")

	// Two failures, one success, repeated: the consecutive failure count
	// never reaches three, so the breaker stays closed.
	for i := 0; i < 9; i++ {
		_, err := client.Chat(context.Background(), nil, nil)
		assert.False(t, IsCircuitOpen(err))
	}
	assert.Equal(t, 9, calls)
}

func TestCircuitBreakerClientDefaults(t *testing.T) {
	client := NewCircuitBreakerClient(&funcClient{}, &BreakerConfig{}, nil, "llm")
	require.NotNil(t, client)
	assert.Equal(t, "llm", client.name)
}
