package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Agrid-Dev/energydash/internal/dashboard"
	"github.com/Agrid-Dev/energydash/internal/heatpump"
)

var models = []heatpump.Model{heatpump.ModelAroTherm, heatpump.ModelGeoTherm, heatpump.ModelFlexoTherm}

type modelSummary struct {
	Model       string                     `yaml:"model"`
	Performance heatpump.PerformanceResult `yaml:"performance"`
	EnergyMix   heatpump.EnergyMix         `yaml:"energy_mix"`
}

type summary struct {
	Parameters struct {
		OperatingMode      string  `yaml:"operating_mode"`
		OutsideTemperature float64 `yaml:"outside_temperature_c"`
		FlowTemperature    float64 `yaml:"flow_temperature_c"`
		HouseSize          float64 `yaml:"house_size_m2"`
		EffectivePrice     float64 `yaml:"effective_price_eur_per_kwh"`
	} `yaml:"parameters"`
	Models []modelSummary `yaml:"models"`
}

// WriteReport evaluates every model on the same parameters and writes one CSV per
// chart plus a YAML summary, all named after prefix.
func WriteReport(p heatpump.Parameters, prefix string) error {
	d, err := dashboard.New(p)
	if err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}

	outside := [][]string{{"OutsideTemperature"}}
	flow := [][]string{{"FlowTemperature"}}
	monthly := [][]string{{"Month"}}
	hourly := [][]string{{"Hour"}}

	var sum summary
	sum.Parameters.OperatingMode = p.OperatingMode.String()
	sum.Parameters.OutsideTemperature = p.OutsideTemperatureC
	sum.Parameters.FlowTemperature = p.FlowTemperatureC
	sum.Parameters.HouseSize = p.HouseSizeM2
	sum.Parameters.EffectivePrice = p.EffectivePrice()

	for _, m := range models {
		if err := d.SetModel(m); err != nil {
			return err
		}
		r := d.Report()

		outside[0] = append(outside[0], m.String())
		for i, pt := range r.COPByOutside {
			outside = appendCell(outside, i+1, num(pt.TemperatureC), num(pt.COP))
		}
		flow[0] = append(flow[0], m.String())
		for i, pt := range r.COPByFlow {
			flow = appendCell(flow, i+1, num(pt.FlowTemperatureC), num(pt.COP))
		}
		monthly[0] = append(monthly[0], m.String())
		for i, mc := range r.MonthlyCosts {
			monthly = appendCell(monthly, i+1, strconv.Itoa(mc.Month), num(mc.CostEur))
		}
		hourly[0] = append(hourly[0], m.String())
		for i, h := range r.HourlyLoad {
			hourly = appendCell(hourly, i+1, strconv.Itoa(h.Hour), num(h.ElectricalPowerKw))
		}

		sum.Models = append(sum.Models, modelSummary{
			Model:       m.String(),
			Performance: r.Performance,
			EnergyMix:   r.EnergyMix,
		})
	}

	for name, rows := range map[string][][]string{
		"outside": outside,
		"flow":    flow,
		"monthly": monthly,
		"hourly":  hourly,
	} {
		if err := writeCSV(fmt.Sprintf("%s_%s.csv", prefix, name), rows); err != nil {
			return err
		}
	}

	b, err := yaml.Marshal(sum)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %v", err)
	}
	if err := os.WriteFile(prefix+"_summary.yaml", b, 0o644); err != nil {
		return fmt.Errorf("failed to write summary: %v", err)
	}
	return nil
}

// appendCell adds value to row i, creating the row with its key column first.
func appendCell(rows [][]string, i int, key, value string) [][]string {
	if i == len(rows) {
		rows = append(rows, []string{key})
	}
	rows[i] = append(rows[i], value)
	return rows
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func writeCSV(filename string, rows [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %v", filename, err)
	}
	return nil
}

func main() {
	prefix := flag.String("out", "energydash", "output file prefix")
	mode := flag.String("mode", "heating", "operating mode")
	outside := flag.Float64("outside", 5, "outside temperature in °C")
	flag.Parse()

	p := heatpump.DefaultParameters()
	m, err := heatpump.ParseOperatingMode(*mode)
	if err != nil {
		log.Fatal(err)
	}
	p.OperatingMode = m
	p.OutsideTemperatureC = *outside

	if err := WriteReport(p, *prefix); err != nil {
		log.Fatal(err)
	}
}
