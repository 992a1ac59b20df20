package dedup

import "context"

// Store remembers which review comments were already posted so a PR
// re-synchronize doesn't repeat them.
type Store interface {
	Seen(ctx context.Context, key string) bool
	Mark(ctx context.Context, key string) error
}
