package pv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimate_FallbackYear(t *testing.T) {
	s := Estimate(FallbackRadiation(), 0.35)
	assert.InDelta(t, 1111.31, s.AnnualYieldKWh, 0.01)
	assert.Equal(t, [4]int{389, 1945, 3890, 7779}, s.ByHorizon)
}

func TestEstimate_Empty(t *testing.T) {
	assert.Equal(t, Savings{}, Estimate(nil, 0.35))
}

func TestEstimate_ScalesWithPrice(t *testing.T) {
	cheap := Estimate(FallbackRadiation(), 0.30)
	dear := Estimate(FallbackRadiation(), 0.60)
	require.Equal(t, cheap.AnnualYieldKWh, dear.AnnualYieldKWh)
	assert.InDelta(t, 2*cheap.ByHorizon[3], dear.ByHorizon[3], 1)
}

func TestFallbackRadiation(t *testing.T) {
	days := FallbackRadiation()
	require.Len(t, days, 365)
	assert.Equal(t, 2.74, days[200])
}
