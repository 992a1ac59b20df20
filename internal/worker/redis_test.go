package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"prsentinel/internal/worker"
)

type RedisSuite struct {
	suite.Suite
	q *worker.RedisQueue
}

func (s *RedisSuite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	probe := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer probe.Close()

	if err := probe.Ping(ctx).Err(); err != nil {
		s.T().Skip("redis not available:", err)
	}

	s.q = worker.NewRedisQueue("localhost:6379", "prsentinel_test")
}

func (s *RedisSuite) TestPushPop() {
	ctx := context.Background()

	job := worker.Job{Repo: "a/b", PR: 1}

	err := s.q.Push(ctx, job)
	s.NoError(err)

	out, err := s.q.Pop(ctx)
	s.NoError(err)
	s.Equal(job.Repo, out.Repo)
}

func TestRedis(t *testing.T) {
	suite.Run(t, new(RedisSuite))
}
