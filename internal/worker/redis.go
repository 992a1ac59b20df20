package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisQueue struct {
	rdb *redis.Client
	key string
}

func NewRedisQueue(addr, key string) *RedisQueue {
	return &RedisQueue{
		key: key,
		rdb: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

func (r *RedisQueue) Push(ctx context.Context, j Job) error {
	b, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	return r.rdb.LPush(ctx, r.key, b).Err()
}

func (r *RedisQueue) Pop(ctx context.Context) (Job, error) {
	res, err := r.rdb.BRPop(ctx, 5*time.Second, r.key).Result()
	if err != nil {
		return Job{}, err
	}

	var j Job
	if err := json.Unmarshal([]byte(res[1]), &j); err != nil {
		return Job{}, fmt.Errorf("unmarshal job: %w", err)
	}

	return j, nil
}
