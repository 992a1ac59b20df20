package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	resp ReviewResponse
	err  error
}

func (s *stubProvider) Review(context.Context, ReviewRequest) (ReviewResponse, error) {
	return s.resp, s.err
}

func (s *stubProvider) GenerateTests(context.Context, TestRequest) (ReviewResponse, error) {
	return s.resp, s.err
}

func TestFallback_UsesSecondaryOnPrimaryError(t *testing.T) {
	primary := &stubProvider{err: errors.New("down")}
	secondary := &stubProvider{resp: ReviewResponse{Content: "ok", Provider: "ollama"}}

	f := NewFallback(primary, secondary)

	resp, err := f.Review(context.Background(), ReviewRequest{File: "a.go"})
	require.NoError(t, err)
	require.Equal(t, "ollama", resp.Provider)
}

func TestFallback_PrefersPrimary(t *testing.T) {
	primary := &stubProvider{resp: ReviewResponse{Provider: "openai"}}
	secondary := &stubProvider{resp: ReviewResponse{Provider: "ollama"}}

	f := NewFallback(primary, secondary)

	resp, err := f.GenerateTests(context.Background(), TestRequest{File: "a.go"})
	require.NoError(t, err)
	require.Equal(t, "openai", resp.Provider)
}

func TestCircuitBreaker_PassesThroughResponses(t *testing.T) {
	p := &stubProvider{resp: ReviewResponse{Content: "fine"}}
	cb := NewCircuitBreaker(p)

	resp, err := cb.Review(context.Background(), ReviewRequest{})
	require.NoError(t, err)
	require.Equal(t, "fine", resp.Content)
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	p := &stubProvider{err: errors.New("boom")}
	cb := NewCircuitBreaker(p)

	// gobreaker's default readiness trips after >5 consecutive failures.
	var err error
	for i := 0; i < 10; i++ {
		_, err = cb.Review(context.Background(), ReviewRequest{})
		require.Error(t, err)
	}

	require.ErrorIs(t, err, gobreaker.ErrOpenState)
}
