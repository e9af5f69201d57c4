// Package pv estimates what a small rooftop photovoltaic plant saves over time.
package pv

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	mjToKWh          = 0.2778
	PeakPowerKWp     = 5.0
	PerformanceRatio = 0.8

	// about 1000 kWh/m² per year spread evenly over the days
	fallbackDailyRadiationMJ = 2.74
)

// Horizons are the savings horizons in years.
var Horizons = [4]int{1, 5, 10, 20}

type Savings struct {
	AnnualYieldKWh float64 `json:"annual_yield_kwh"`
	ByHorizon      [4]int  `json:"by_horizon_eur"`
}

// FallbackRadiation is a flat year of daily shortwave radiation sums in MJ/m².
func FallbackRadiation() []float64 {
	days := make([]float64, 365)
	for i := range days {
		days[i] = fallbackDailyRadiationMJ
	}
	return days
}

// Estimate converts daily radiation sums (MJ/m²) into yearly yield and undiscounted
// savings at the given price. No degradation or inflation is modelled.
func Estimate(dailyRadiationMJ []float64, priceEurPerKWh float64) Savings {
	if len(dailyRadiationMJ) == 0 {
		return Savings{}
	}

	kwh := make([]float64, len(dailyRadiationMJ))
	floats.ScaleTo(kwh, mjToKWh, dailyRadiationMJ)
	yield := floats.Sum(kwh) * PeakPowerKWp * PerformanceRatio
	annual := yield * priceEurPerKWh

	var s Savings
	s.AnnualYieldKWh = yield
	for i, years := range Horizons {
		s.ByHorizon[i] = int(math.Round(annual * float64(years)))
	}
	return s
}
