package heatpump

import "math"

const (
	pvPriceShare = 0.3 // share of the draw still bought from the grid with photovoltaic

	co2GridKgPerKWh = 0.40
	co2PVKgPerKWh   = 0.05

	daysPerMonth = 30
	daysPerYear  = 365
)

// Metrics are the electrical, cost and emission figures derived from COP and demand.
type Metrics struct {
	ElectricalPowerKw float64 `json:"electrical_power_kw" yaml:"electrical_power_kw"`
	DailyCostEur      float64 `json:"daily_cost_eur" yaml:"daily_cost_eur"`
	MonthlyCostEur    float64 `json:"monthly_cost_eur" yaml:"monthly_cost_eur"`
	YearlyCostEur     float64 `json:"yearly_cost_eur" yaml:"yearly_cost_eur"`
	DailyCo2Kg        float64 `json:"daily_co2_kg" yaml:"daily_co2_kg"`
}

// PerformanceResult is the full KPI set for one parameter snapshot.
type PerformanceResult struct {
	COP            float64 `json:"cop" yaml:"cop"`
	ThermalPowerKw float64 `json:"thermal_power_kw" yaml:"thermal_power_kw"`
	Metrics        `yaml:",inline"`
}

// EnergyMix splits delivered heat into the electrical input and the share drawn
// from the environment, in percent.
type EnergyMix struct {
	ElectricalPct    float64 `json:"electrical_pct" yaml:"electrical_pct"`
	EnvironmentalPct float64 `json:"environmental_pct" yaml:"environmental_pct"`
}

// DerivedMetrics composes COP and thermal power into electrical draw, cost and CO2.
// Monthly and yearly costs are flat 30 and 365 day multiples of the rounded daily cost.
func DerivedMetrics(p Parameters) Metrics {
	e := electricalPower(p)

	daily := round(e*24*p.EffectivePrice(), 2)
	factor := co2GridKgPerKWh
	if p.HasPhotovoltaic {
		factor = co2PVKgPerKWh
	}

	return Metrics{
		ElectricalPowerKw: round(e, 2),
		DailyCostEur:      daily,
		MonthlyCostEur:    round(daily*daysPerMonth, 2),
		YearlyCostEur:     round(daily*daysPerYear, 2),
		DailyCo2Kg:        round(factor*e*24, 2),
	}
}

func Performance(p Parameters) PerformanceResult {
	return PerformanceResult{
		COP:            COP(p),
		ThermalPowerKw: ThermalPower(p),
		Metrics:        DerivedMetrics(p),
	}
}

// MixOf returns the electrical and environmental shares of thermalKw.
func MixOf(thermalKw, electricalKw float64) EnergyMix {
	environmental := math.Max(0, round(thermalKw-electricalKw, 2))
	electrical := math.Max(0, electricalKw)
	total := environmental + electrical
	if total <= 0 {
		return EnergyMix{}
	}
	return EnergyMix{
		ElectricalPct:    round(electrical/total*100, 1),
		EnvironmentalPct: round(environmental/total*100, 1),
	}
}

func EnergyMixFor(p Parameters) EnergyMix {
	return MixOf(ThermalPower(p), round(electricalPower(p), 2))
}

// Report bundles everything the dashboard shows for one snapshot.
type Report struct {
	Parameters           Parameters         `json:"parameters"`
	Performance          PerformanceResult  `json:"performance"`
	EnergyMix            EnergyMix          `json:"energy_mix"`
	COPByOutside         []TemperaturePoint `json:"cop_by_outside_temperature"`
	COPByFlow            []FlowPoint        `json:"cop_by_flow_temperature"`
	MonthlyCosts         []MonthlyCost      `json:"monthly_costs"`
	HourlyLoad           []HourlyLoad       `json:"hourly_load"`
	EffectivePriceEurKWh float64            `json:"effective_price_eur_per_kwh"`
}

func Evaluate(p Parameters) Report {
	perf := Performance(p)
	return Report{
		Parameters:           p,
		Performance:          perf,
		EnergyMix:            EnergyMixFor(p),
		COPByOutside:         SweepOutsideTemperature(p),
		COPByFlow:            SweepFlowTemperature(p),
		MonthlyCosts:         MonthlyCostProfile(p),
		HourlyLoad:           HourlyLoadProfile(p, perf.ElectricalPowerKw),
		EffectivePriceEurKWh: round(p.EffectivePrice(), 4),
	}
}
