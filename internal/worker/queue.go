package worker

import "context"

type Job struct {
	Repo string `json:"repo"`
	PR   int    `json:"pr"`
}

type Queue interface {
	Push(ctx context.Context, j Job) error
	Pop(ctx context.Context) (Job, error)
}
