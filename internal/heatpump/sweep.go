package heatpump

import "gonum.org/v1/gonum/floats"

type TemperaturePoint struct {
	TemperatureC float64 `json:"temperature_c"`
	COP          float64 `json:"cop"`
}

type FlowPoint struct {
	FlowTemperatureC float64 `json:"flow_temperature_c"`
	COP              float64 `json:"cop"`
}

type MonthlyCost struct {
	Month   int     `json:"month"` // 1..12
	CostEur float64 `json:"cost_eur"`
}

type HourlyLoad struct {
	Hour              int     `json:"hour"` // 0..23
	ElectricalPowerKw float64 `json:"electrical_power_kw"`
}

var (
	// average outdoor temperature per month, January first
	monthlyOutsideTemperatures = [12]float64{-1, 1, 5, 9, 14, 18, 20, 19, 15, 10, 5, 1}
	daysInMonth                = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
)

// grid returns n evenly spaced values from lo to hi inclusive.
func grid(lo, hi float64, n int) []float64 {
	return floats.Span(make([]float64, n), lo, hi)
}

// SweepOutsideTemperature varies the outdoor temperature from -20 to 35 °C in 5 K steps.
func SweepOutsideTemperature(p Parameters) []TemperaturePoint {
	temps := grid(-20, 35, 12)
	out := make([]TemperaturePoint, len(temps))
	for i, t := range temps {
		q := p
		q.OutsideTemperatureC = t
		out[i] = TemperaturePoint{TemperatureC: t, COP: COP(q)}
	}
	return out
}

// SweepFlowTemperature varies the flow temperature from 25 to 65 °C in 5 K steps,
// always in heating mode.
func SweepFlowTemperature(p Parameters) []FlowPoint {
	temps := grid(25, 65, 9)
	out := make([]FlowPoint, len(temps))
	for i, t := range temps {
		q := p
		q.OperatingMode = ModeHeating
		q.FlowTemperatureC = t
		out[i] = FlowPoint{FlowTemperatureC: t, COP: COP(q)}
	}
	return out
}

// MonthlyCostProfile prices one year month by month against a fixed temperature table.
// Each month keeps the primary operating mode: heating costs vanish in months warmer
// than the setpoint and cooling costs in months colder than it.
func MonthlyCostProfile(p Parameters) []MonthlyCost {
	price := p.EffectivePrice()
	out := make([]MonthlyCost, len(monthlyOutsideTemperatures))
	for i, t := range monthlyOutsideTemperatures {
		q := p
		q.OutsideTemperatureC = t
		e := electricalPower(q)
		out[i] = MonthlyCost{
			Month:   i + 1,
			CostEur: round(e*24*float64(daysInMonth[i])*price, 2),
		}
	}
	return out
}

// HourlyLoadProfile shapes electricalKw over a day: night 0.7, day 1.0, evening 1.2.
// Cooling additionally peaks in the afternoon (12 to 18 h) and eases off otherwise.
func HourlyLoadProfile(p Parameters, electricalKw float64) []HourlyLoad {
	out := make([]HourlyLoad, 24)
	for h := range out {
		out[h] = HourlyLoad{
			Hour:              h,
			ElectricalPowerKw: round(electricalKw*hourShape(h)*hourModeFactor(p.OperatingMode, h), 2),
		}
	}
	return out
}

func hourShape(h int) float64 {
	switch {
	case h < 6:
		return 0.7
	case h < 18:
		return 1.0
	default:
		return 1.2
	}
}

func hourModeFactor(m OperatingMode, h int) float64 {
	if m != ModeCooling {
		return 1
	}
	if h >= 12 && h <= 18 {
		return 1.2
	}
	return 0.9
}
