package httpctrl

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Agrid-Dev/energydash/internal/ports"
)

// reportCollector evaluates the store on every scrape.
type reportCollector struct {
	svc   ports.DashboardService
	descs []gauge
}

type gauge struct {
	desc  *prometheus.Desc
	value func(r reportView) float64
}

type reportView struct {
	cop, thermal, electrical, daily, monthly, yearly, co2, outside float64
}

func newReportCollector(svc ports.DashboardService, deviceID string) *reportCollector {
	labels := prometheus.Labels{"device_id": deviceID}
	d := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("energydash_"+name, help, nil, labels)
	}
	return &reportCollector{
		svc: svc,
		descs: []gauge{
			{d("cop", "Coefficient of performance."), func(r reportView) float64 { return r.cop }},
			{d("thermal_power_kw", "Thermal output in kW."), func(r reportView) float64 { return r.thermal }},
			{d("electrical_power_kw", "Electrical input in kW."), func(r reportView) float64 { return r.electrical }},
			{d("daily_cost_eur", "Daily running cost."), func(r reportView) float64 { return r.daily }},
			{d("monthly_cost_eur", "Monthly running cost."), func(r reportView) float64 { return r.monthly }},
			{d("yearly_cost_eur", "Yearly running cost."), func(r reportView) float64 { return r.yearly }},
			{d("daily_co2_kg", "Daily CO2 emissions in kg."), func(r reportView) float64 { return r.co2 }},
			{d("outside_temperature_celsius", "Configured outdoor temperature."), func(r reportView) float64 { return r.outside }},
		},
	}
}

func (c *reportCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, g := range c.descs {
		ch <- g.desc
	}
}

func (c *reportCollector) Collect(ch chan<- prometheus.Metric) {
	r := c.svc.Report()
	perf := r.Performance
	v := reportView{
		cop:        perf.COP,
		thermal:    perf.ThermalPowerKw,
		electrical: perf.ElectricalPowerKw,
		daily:      perf.DailyCostEur,
		monthly:    perf.MonthlyCostEur,
		yearly:     perf.YearlyCostEur,
		co2:        perf.DailyCo2Kg,
		outside:    r.Parameters.OutsideTemperatureC,
	}
	for _, g := range c.descs {
		ch <- prometheus.MustNewConstMetric(g.desc, prometheus.GaugeValue, g.value(v))
	}
}
