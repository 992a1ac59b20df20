package budget

import (
	"context"
	"fmt"
	"time"
)

type Store interface {
	AddSpend(ctx context.Context, repo string, pr int, usd float64, at time.Time) error
	GetPRSpend(ctx context.Context, repo string, pr int) (float64, error)
	GetDailySpend(ctx context.Context, day time.Time) (float64, error)
}

// Guard caps AI spend per PR and per day. A nil or disabled guard allows
// everything.
type Guard struct {
	enabled    bool
	dailyLimit float64
	prLimit    float64
	store      Store
}

func NewGuard(enabled bool, dailyLimit, prLimit float64, store Store) *Guard {
	return &Guard{
		enabled:    enabled,
		dailyLimit: dailyLimit,
		prLimit:    prLimit,
		store:      store,
	}
}

func (g *Guard) Enabled() bool {
	return g != nil && g.enabled
}

// Allow reports whether a call with the projected cost fits under both
// limits; when blocked, reason explains which limit tripped.
func (g *Guard) Allow(ctx context.Context, repo string, pr int, projectedCostUSD float64, now time.Time) (bool, string, error) {
	if g == nil || !g.enabled || g.store == nil {
		return true, "", nil
	}

	prSpend, err := g.store.GetPRSpend(ctx, repo, pr)
	if err != nil {
		return false, "", err
	}
	if g.prLimit > 0 && prSpend+projectedCostUSD > g.prLimit {
		return false, fmt.Sprintf("PR budget exceeded (limit=%.4f USD)", g.prLimit), nil
	}

	daySpend, err := g.store.GetDailySpend(ctx, now)
	if err != nil {
		return false, "", err
	}
	if g.dailyLimit > 0 && daySpend+projectedCostUSD > g.dailyLimit {
		return false, fmt.Sprintf("Daily budget exceeded (limit=%.4f USD)", g.dailyLimit), nil
	}

	return true, "", nil
}

func (g *Guard) Record(ctx context.Context, repo string, pr int, usd float64, now time.Time) error {
	if g == nil || !g.enabled || g.store == nil || usd <= 0 {
		return nil
	}
	return g.store.AddSpend(ctx, repo, pr, usd, now)
}
