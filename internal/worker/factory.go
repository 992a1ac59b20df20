package worker

import "prsentinel/internal/config"

func NewQueue(cfg *config.Config) Queue {
	if cfg.QueueType == "redis" {
		return NewRedisQueue(
			cfg.RedisAddr,
			"prsentinel_jobs",
		)
	}

	return NewMemoryQueue(100)
}
