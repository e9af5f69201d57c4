package heatpump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepOutsideTemperature(t *testing.T) {
	p := newTestParameters()
	got := SweepOutsideTemperature(p)
	require.Len(t, got, 12)

	want := []float64{2.15, 2.33, 2.54, 2.79, 3.1, 3.49, 3.99, 4.65, 5.58, 6.98, 7.0, 7.0}
	for i, pt := range got {
		assert.Equal(t, -20+5*float64(i), pt.TemperatureC)
		assert.Equal(t, want[i], pt.COP, "at %v °C", pt.TemperatureC)
	}

	// the sweep point matching the current outdoor temperature equals COP itself
	assert.Equal(t, COP(p), got[5].COP)
}

func TestSweepFlowTemperature(t *testing.T) {
	p := newTestParameters(func(p *Parameters) { p.OperatingMode = ModeCooling })
	got := SweepFlowTemperature(p)
	require.Len(t, got, 9)

	want := []float64{4.5, 3.92, 3.49, 3.15, 2.88, 2.66, 2.47, 2.32, 2.18}
	for i, pt := range got {
		assert.Equal(t, 25+5*float64(i), pt.FlowTemperatureC)
		assert.Equal(t, want[i], pt.COP, "at flow %v °C", pt.FlowTemperatureC)
	}
}

func TestSweepFlowTemperature_NonIncreasing(t *testing.T) {
	got := SweepFlowTemperature(newTestParameters(func(p *Parameters) { p.Model = ModelGeoTherm }))
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i].COP, got[i-1].COP)
	}
}

func TestMonthlyCostProfile_ScenarioC(t *testing.T) {
	p := newTestParameters()
	got := MonthlyCostProfile(p)
	require.Len(t, got, 12)

	jan := p
	jan.OutsideTemperatureC = -1
	want := round(electricalPower(jan)*24*31*p.EffectivePrice(), 2)
	assert.Equal(t, 1, got[0].Month)
	assert.Equal(t, want, got[0].CostEur)
	assert.InDelta(t, 71.4, got[0].CostEur, 0.011)

	for i, m := range got {
		assert.Equal(t, i+1, m.Month)
		assert.GreaterOrEqual(t, m.CostEur, 0.0)
	}
}

func TestMonthlyCostProfile_HeatingSummerIsFree(t *testing.T) {
	p := newTestParameters(func(p *Parameters) { p.InsideTemperatureC = 18 })
	got := MonthlyCostProfile(p)
	// June to August are at or above the 18 °C setpoint
	for _, month := range []int{6, 7, 8} {
		assert.Equal(t, 0.0, got[month-1].CostEur, "month %d", month)
	}
	assert.Greater(t, got[0].CostEur, got[3].CostEur)
}

func TestMonthlyCostProfile_CoolingWinterIsFree(t *testing.T) {
	p := newTestParameters(func(p *Parameters) {
		p.OperatingMode = ModeCooling
		p.InsideTemperatureC = 18
	})
	got := MonthlyCostProfile(p)
	for _, m := range got {
		if monthlyOutsideTemperatures[m.Month-1] <= 18 {
			assert.Equal(t, 0.0, m.CostEur, "month %d", m.Month)
		} else {
			assert.Greater(t, m.CostEur, 0.0, "month %d", m.Month)
		}
	}
}

func TestMonthlyCostProfile_UsesMonthLength(t *testing.T) {
	// hot water demand does not depend on temperature, so months with equal
	// temperatures only differ by their day count
	p := newTestParameters(func(p *Parameters) { p.OperatingMode = ModeDomesticHotWater })
	got := MonthlyCostProfile(p)
	// March and November are both 5 °C, with 31 and 30 days
	assert.InDelta(t, got[2].CostEur/31, got[10].CostEur/30, 0.001)
}

func TestHourlyLoadProfile_Heating(t *testing.T) {
	got := HourlyLoadProfile(newTestParameters(), 1.0)
	require.Len(t, got, 24)
	for _, h := range got {
		var want float64
		switch {
		case h.Hour < 6:
			want = 0.7
		case h.Hour < 18:
			want = 1.0
		default:
			want = 1.2
		}
		assert.Equal(t, want, h.ElectricalPowerKw, "hour %d", h.Hour)
	}
}

func TestHourlyLoadProfile_Cooling(t *testing.T) {
	p := newTestParameters(func(p *Parameters) { p.OperatingMode = ModeCooling })
	got := HourlyLoadProfile(p, 1.0)

	cases := map[int]float64{
		0:  0.63, // 0.7 * 0.9
		6:  0.9,
		11: 0.9,
		12: 1.2,
		17: 1.2,
		18: 1.44, // evening shape and afternoon peak overlap
		19: 1.08,
		23: 1.08,
	}
	for hour, want := range cases {
		assert.Equal(t, want, got[hour].ElectricalPowerKw, "hour %d", hour)
	}
}

func TestEvaluate(t *testing.T) {
	p := newTestParameters()
	r := Evaluate(p)

	assert.Equal(t, p, r.Parameters)
	assert.Equal(t, Performance(p), r.Performance)
	assert.Len(t, r.COPByOutside, 12)
	assert.Len(t, r.COPByFlow, 9)
	assert.Len(t, r.MonthlyCosts, 12)
	assert.Len(t, r.HourlyLoad, 24)
	assert.Equal(t, HourlyLoadProfile(p, r.Performance.ElectricalPowerKw), r.HourlyLoad)
	assert.InDelta(t, 0.105, r.EffectivePriceEurKWh, 1e-9)
}
