package heatpump

import "math"

// Calibration constants of the quasi-Carnot model. They are not derived from a cited
// physical model and are reproduced as-is.
const (
	kelvinOffset       = 273.15
	approachHotK       = 5.0 // condenser approach temperature
	approachColdK      = 5.0 // evaporator approach temperature
	minTemperatureLift = 1.0

	humidityReference = 50.0
	humiditySlope     = 0.0005
	windSlope         = 0.01
	minWindFactor     = 0.9

	MinCOP = 1.2
	MaxCOP = 7.0

	coolingLoadFactor       = 0.7
	dhwKWhPerOccupantPerDay = 3.0
)

func round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// COP estimates the coefficient of performance (heating, hot water) or the energy
// efficiency ratio (cooling). The result is always within [MinCOP, MaxCOP], rounded to
// two decimals.
func COP(p Parameters) float64 {
	return round(cop(p), 2)
}

func cop(p Parameters) float64 {
	var hotK, coldK float64
	switch p.OperatingMode {
	case ModeCooling:
		// indoor air is the cold side, outdoor the warm side
		hotK = p.OutsideTemperatureC + approachHotK + kelvinOffset
		coldK = p.InsideTemperatureC - approachColdK + kelvinOffset
	case ModeDomesticHotWater:
		hotK = p.DomesticHotWaterTemperatureC + approachHotK + kelvinOffset
		coldK = p.OutsideTemperatureC - approachColdK + kelvinOffset
	default:
		hotK = p.FlowTemperatureC + approachHotK + kelvinOffset
		coldK = p.OutsideTemperatureC - approachColdK + kelvinOffset
	}

	delta := math.Max(minTemperatureLift, hotK-coldK)
	carnot := hotK / delta
	if p.OperatingMode == ModeCooling {
		carnot = coldK / delta
	}

	humidity := 1 + (p.RelativeHumidityPct-humidityReference)*humiditySlope
	wind := 1.0
	if p.Model.AirSource() {
		wind = math.Max(minWindFactor, 1-p.WindSpeedMs*windSlope)
	}

	raw := carnot * p.Model.ProductEfficiency() * humidity * wind
	// NaN inputs would otherwise escape the clamp
	if math.IsNaN(raw) {
		return MinCOP
	}
	return clamp(raw, MinCOP, MaxCOP)
}

// ThermalPower estimates the building's current thermal demand in kW, rounded to two
// decimals.
func ThermalPower(p Parameters) float64 {
	return round(thermalPower(p), 2)
}

func thermalPower(p Parameters) float64 {
	q := p.BuildingQuality
	ua := q.HeatLossCoefficient() * p.HouseSizeM2 * q.Infiltration() / 1000 // kW/K

	switch p.OperatingMode {
	case ModeCooling:
		// internal thermal mass buffers part of the cooling load
		return ua * math.Max(0, p.OutsideTemperatureC-p.InsideTemperatureC) * coolingLoadFactor
	case ModeDomesticHotWater:
		return float64(p.Occupants) * dhwKWhPerOccupantPerDay / 24
	default:
		return ua * math.Max(0, p.InsideTemperatureC-p.OutsideTemperatureC)
	}
}

// electricalPower never divides by zero: cop is clamped to at least MinCOP.
func electricalPower(p Parameters) float64 {
	return thermalPower(p) / cop(p)
}
