package gitsource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateRef(t *testing.T) {
	require.NoError(t, validateRef("main"))
	require.NoError(t, validateRef("release/1.2"))
	require.Error(t, validateRef(""))
	require.Error(t, validateRef("--exec=evil"))
}

func TestDiff_RejectsFlagLikeRef(t *testing.T) {
	s := New("")

	_, err := s.Diff(context.Background(), "-main")
	require.Error(t, err)
}
