package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// CircuitBreakerProvider stops hammering a failing provider: after repeated
// errors the breaker opens and calls fail fast until the timeout elapses.
type CircuitBreakerProvider struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker
}

func NewCircuitBreaker(p Provider) *CircuitBreakerProvider {
	settings := gobreaker.Settings{
		Name:        "ai-provider",
		MaxRequests: 3,
		Interval:    0,
		Timeout:     30 * time.Second,
	}

	return &CircuitBreakerProvider{
		provider: p,
		cb:       gobreaker.NewCircuitBreaker(settings),
	}
}

func (c *CircuitBreakerProvider) Review(ctx context.Context, r ReviewRequest) (ReviewResponse, error) {
	return c.execute(func() (ReviewResponse, error) {
		return c.provider.Review(ctx, r)
	})
}

func (c *CircuitBreakerProvider) GenerateTests(ctx context.Context, r TestRequest) (ReviewResponse, error) {
	return c.execute(func() (ReviewResponse, error) {
		return c.provider.GenerateTests(ctx, r)
	})
}

func (c *CircuitBreakerProvider) execute(fn func() (ReviewResponse, error)) (ReviewResponse, error) {
	out, err := c.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return ReviewResponse{}, err
	}

	resp, ok := out.(ReviewResponse)
	if !ok {
		return ReviewResponse{}, fmt.Errorf("unexpected circuit breaker response type")
	}

	return resp, nil
}
