package cost

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEstimateUSD(t *testing.T) {
	require.InDelta(t, 0.02, EstimateUSD("gpt-4o", 1000, 1000), 1e-9)
	require.Zero(t, EstimateUSD("llama3", 1000, 1000))
}
