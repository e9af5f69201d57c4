package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Agrid-Dev/energydash/internal/heatpump"
)

func TestWriteReport(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "run")
	if err := WriteReport(heatpump.DefaultParameters(), prefix); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	f, err := os.Open(prefix + "_outside.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 13 || len(rows[0]) != 4 {
		t.Fatalf("expected 13x4 outside table, got %dx%d", len(rows), len(rows[0]))
	}
	if rows[0][1] != "aroTHERM" || rows[1][0] != "-20" {
		t.Fatalf("unexpected header/first row: %v %v", rows[0], rows[1])
	}

	b, err := os.ReadFile(prefix + "_summary.yaml")
	if err != nil {
		t.Fatal(err)
	}
	var got summary
	if err := yaml.Unmarshal(b, &got); err != nil {
		t.Fatalf("summary yaml: %v", err)
	}
	if len(got.Models) != 3 || got.Models[1].Model != "geoTHERM" {
		t.Fatalf("unexpected models: %+v", got.Models)
	}
	if got.Models[1].Performance.COP <= got.Models[0].Performance.COP {
		t.Fatalf("expected geoTHERM to outperform aroTHERM, got %v vs %v",
			got.Models[1].Performance.COP, got.Models[0].Performance.COP)
	}

	for _, name := range []string{"flow", "monthly", "hourly"} {
		if _, err := os.Stat(prefix + "_" + name + ".csv"); err != nil {
			t.Fatalf("missing %s csv: %v", name, err)
		}
	}
}

func TestWriteReport_Invalid(t *testing.T) {
	p := heatpump.DefaultParameters()
	p.HouseSizeM2 = 0
	if err := WriteReport(p, filepath.Join(t.TempDir(), "x")); err == nil {
		t.Fatal("expected error for invalid parameters")
	}
}
