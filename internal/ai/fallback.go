package ai

import "context"

// Fallback tries the primary provider and falls through to the secondary on
// any error.
type Fallback struct {
	primary   Provider
	secondary Provider
}

func NewFallback(p1, p2 Provider) *Fallback {
	return &Fallback{
		primary:   p1,
		secondary: p2,
	}
}

func (f *Fallback) Review(ctx context.Context, r ReviewRequest) (ReviewResponse, error) {
	resp, err := f.primary.Review(ctx, r)
	if err == nil {
		return resp, nil
	}
	return f.secondary.Review(ctx, r)
}

func (f *Fallback) GenerateTests(ctx context.Context, r TestRequest) (ReviewResponse, error) {
	resp, err := f.primary.GenerateTests(ctx, r)
	if err == nil {
		return resp, nil
	}
	return f.secondary.GenerateTests(ctx, r)
}
