package github

import "context"

// Client fetches PR data; the raw unified diff is the only input the review
// pipeline needs.
type Client interface {
	GetPRDiff(ctx context.Context, repo string, pr int) (string, error)
}

//go:generate mockery --name CommentClient --output ../mocks --with-expecter
type CommentClient interface {
	CreateComment(ctx context.Context, repo string, pr int, body string) error
	CreateLineComment(ctx context.Context, repo string, pr int, comment LineComment) error
}

// JobQueue is all the webhook handler knows about the worker side.
type JobQueue interface {
	Enqueue(ctx context.Context, repo string, pr int) error
}
