package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"prsentinel/internal/retry"

	"github.com/stretchr/testify/suite"
)

type RetrySuite struct {
	suite.Suite
}

func (s *RetrySuite) Test_Eventual_Success() {
	calls := 0

	err := retry.Do(
		context.Background(),
		3,
		1*time.Millisecond,
		func() error {
			calls++
			if calls < 2 {
				return errors.New("fail")
			}
			return nil
		},
	)

	s.NoError(err)
	s.Equal(2, calls)
}

func (s *RetrySuite) Test_Exhausted_ReturnsLastError() {
	wantErr := errors.New("still broken")

	err := retry.Do(
		context.Background(),
		3,
		1*time.Millisecond,
		func() error { return wantErr },
	)

	s.ErrorIs(err, wantErr)
}

func (s *RetrySuite) Test_CanceledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retry.Do(ctx, 3, time.Millisecond, func() error {
		s.Fail("fn must not run after cancellation")
		return nil
	})

	s.ErrorIs(err, context.Canceled)
}

func TestRetrySuite(t *testing.T) {
	suite.Run(t, new(RetrySuite))
}
