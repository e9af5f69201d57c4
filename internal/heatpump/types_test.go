package heatpump

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestModelValid(t *testing.T) {
	cases := []struct {
		m    Model
		want bool
	}{
		{ModelUnknown, false},
		{ModelAroTherm, true},
		{ModelGeoTherm, true},
		{ModelFlexoTherm, true},
		{Model(999), false},
	}

	for _, tc := range cases {
		if got := tc.m.Valid(); got != tc.want {
			t.Fatalf("Model(%d).Valid()=%v want %v", tc.m, got, tc.want)
		}
	}
}

func TestParseModel_Table(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    Model
		wantErr bool
	}{
		{"aroTHERM", "aroTHERM", ModelAroTherm, false},
		{"lower case", "geotherm", ModelGeoTherm, false},
		{"padded", " flexoTHERM ", ModelFlexoTherm, false},
		{"invalid", "nope", ModelUnknown, true},
		{"empty", "", ModelUnknown, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseModel(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidModel) {
					t.Fatalf("ParseModel(%q) expected ErrInvalidModel, got %v", tc.in, err)
				}
			} else if err != nil {
				t.Fatalf("ParseModel(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseModel(%q)=%v want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestOperatingModeString_Table(t *testing.T) {
	cases := []struct {
		name string
		in   OperatingMode
		want string
	}{
		{"unknown (zero)", ModeUnknown, "unknown"},
		{"heating", ModeHeating, "heating"},
		{"cooling", ModeCooling, "cooling"},
		{"dhw", ModeDomesticHotWater, "domestic_hot_water"},
		{"unknown (out of range)", OperatingMode(999), "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.String(); got != tc.want {
				t.Fatalf("OperatingMode(%d).String()=%q want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseOperatingMode_Table(t *testing.T) {
	cases := []struct {
		in      string
		want    OperatingMode
		wantErr bool
	}{
		{"heating", ModeHeating, false},
		{"cooling", ModeCooling, false},
		{"domestic_hot_water", ModeDomesticHotWater, false},
		{"dhw", ModeDomesticHotWater, false},
		{"heat", ModeUnknown, true},
	}

	for _, tc := range cases {
		got, err := ParseOperatingMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseOperatingMode(%q) err=%v wantErr=%v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseOperatingMode(%q)=%v want %v", tc.in, got, tc.want)
		}
	}
}

func TestBuildingQualityCoefficients(t *testing.T) {
	cases := []struct {
		q            BuildingQuality
		loss, infilt float64
	}{
		{QualityOld, 1.2, 1.10},
		{QualityStandard, 0.8, 1.05},
		{QualityEfficient, 0.5, 1.00},
	}

	for _, tc := range cases {
		if got := tc.q.HeatLossCoefficient(); got != tc.loss {
			t.Fatalf("%v.HeatLossCoefficient()=%v want %v", tc.q, got, tc.loss)
		}
		if got := tc.q.Infiltration(); got != tc.infilt {
			t.Fatalf("%v.Infiltration()=%v want %v", tc.q, got, tc.infilt)
		}
	}
}

func TestSeasonOutsideTemperature(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"winter", -2},
		{"spring", 10},
		{"summer", 24},
		{"autumn", 10},
	}

	for _, tc := range cases {
		s, err := ParseSeason(tc.in)
		if err != nil {
			t.Fatalf("ParseSeason(%q) unexpected error: %v", tc.in, err)
		}
		if got := s.OutsideTemperature(); got != tc.want {
			t.Fatalf("%s.OutsideTemperature()=%v want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseSeason("monsoon"); !errors.Is(err, ErrInvalidSeason) {
		t.Fatalf("expected ErrInvalidSeason, got %v", err)
	}
}

func TestEnumTextRoundTrip(t *testing.T) {
	b, err := ModelFlexoTherm.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var m Model
	if err := m.UnmarshalText(b); err != nil {
		t.Fatal(err)
	}
	if m != ModelFlexoTherm {
		t.Fatalf("got %v want %v", m, ModelFlexoTherm)
	}

	if b, err := ModeUnknown.MarshalText(); err != nil || string(b) != "unknown" {
		t.Fatalf("ModeUnknown.MarshalText()=%q, %v want \"unknown\"", b, err)
	}
	if err := new(OperatingMode).UnmarshalText([]byte("unknown")); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}

	var s Season
	if err := s.UnmarshalText([]byte("Fall")); err != nil {
		t.Fatal(err)
	}
	if b, _ := s.MarshalText(); string(b) != "autumn" {
		t.Fatalf("got %q want autumn", b)
	}
	if err := s.UnmarshalText([]byte("unknown")); !errors.Is(err, ErrInvalidSeason) {
		t.Fatalf("expected ErrInvalidSeason, got %v", err)
	}
}

func TestEvaluate_ZeroParametersSerialise(t *testing.T) {
	b, err := json.Marshal(Evaluate(Parameters{}))
	if err != nil {
		t.Fatalf("json.Marshal(Evaluate(Parameters{})): %v", err)
	}
	var got struct {
		Parameters struct {
			Model           string `json:"model"`
			OperatingMode   string `json:"operating_mode"`
			BuildingQuality string `json:"building_quality"`
		} `json:"parameters"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	if got.Parameters.Model != "unknown" || got.Parameters.OperatingMode != "unknown" || got.Parameters.BuildingQuality != "unknown" {
		t.Fatalf("expected unknown enums, got %+v", got.Parameters)
	}
}
