package httpctrl

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/Agrid-Dev/energydash/internal/comparison"
	"github.com/Agrid-Dev/energydash/internal/dashboard"
	"github.com/Agrid-Dev/energydash/internal/heatpump"
	"github.com/Agrid-Dev/energydash/internal/household"
	"github.com/Agrid-Dev/energydash/internal/pv"
	"github.com/Agrid-Dev/energydash/internal/renewable"
)

// ---- DTOs ----

type reportDTO struct {
	DeviceID string `json:"device_id"`
	heatpump.Report
}

type fieldDTO struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type comparisonResponse struct {
	Unit              comparison.Unit          `json:"unit"`
	Entities          []comparison.Converted   `json:"entities"`
	EnergyMix         []comparison.SourceShare `json:"energy_mix"`
	RenewableSharePct float64                  `json:"renewable_share_pct"`
}

type householdRequest struct {
	Devices        []household.Device `json:"devices"`
	PriceEurPerKWh *float64           `json:"price_eur_per_kwh"`
}

type pvRequest struct {
	DailyRadiationMJ []float64 `json:"daily_radiation_mj"`
	PriceEurPerKWh   *float64  `json:"price_eur_per_kwh"`
}

type pvResponse struct {
	AnnualYieldKWh float64      `json:"annual_yield_kwh"`
	PriceEurPerKWh float64      `json:"price_eur_per_kwh"`
	Horizons       []horizonDTO `json:"horizons"`
}

type horizonDTO struct {
	Years      int `json:"years"`
	SavingsEur int `json:"savings_eur"`
}

// ---- Read handlers ----

func (s *Server) handleGet(w http.ResponseWriter, _ *http.Request) {
	s.respondReport(w)
}

func (s *Server) handleSweepOutside(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, heatpump.SweepOutsideTemperature(s.svc.Get()))
}

func (s *Server) handleSweepFlow(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, heatpump.SweepFlowTemperature(s.svc.Get()))
}

func (s *Server) handleMonthly(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, heatpump.MonthlyCostProfile(s.svc.Get()))
}

func (s *Server) handleHourly(w http.ResponseWriter, _ *http.Request) {
	p := s.svc.Get()
	writeJSON(w, http.StatusOK, heatpump.HourlyLoadProfile(p, heatpump.DerivedMetrics(p).ElectricalPowerKw))
}

// handleFields lists the numeric parameters writable at POST /v1/{field}.
func (s *Server) handleFields(w http.ResponseWriter, _ *http.Request) {
	p := s.svc.Get()
	fields := dashboard.Fields()
	out := make([]fieldDTO, len(fields))
	for i, f := range fields {
		out[i] = fieldDTO{Name: f.String(), Value: f.Value(p)}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetHousehold(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, household.Summarize(household.DefaultDevices(), household.DefaultPriceEurPerKWh))
}

// handleRenewable defaults to sunny weather.
func (s *Server) handleRenewable(w http.ResponseWriter, r *http.Request) {
	weather := renewable.WeatherSunny
	if q := r.URL.Query().Get("weather"); q != "" {
		var err error
		if weather, err = renewable.ParseWeather(q); err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, renewable.Summarize(weather))
}

// handleComparison defaults to kWh.
func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	unit := comparison.UnitKWh
	if q := r.URL.Query().Get("unit"); q != "" {
		var err error
		if unit, err = comparison.ParseUnit(q); err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	entities, err := comparison.InUnit(comparison.Entities(), unit)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	mix := comparison.GermanMix()
	writeJSON(w, http.StatusOK, comparisonResponse{
		Unit:              unit,
		Entities:          entities,
		EnergyMix:         mix,
		RenewableSharePct: comparison.RenewableShare(mix),
	})
}

// ---- Calculators ----

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	p := heatpump.DefaultParameters()
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if err := p.Validate(); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reportDTO{DeviceID: s.deviceID, Report: heatpump.Evaluate(p)})
}

func (s *Server) handlePostHousehold(w http.ResponseWriter, r *http.Request) {
	var req householdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	price := household.DefaultPriceEurPerKWh
	if req.PriceEurPerKWh != nil {
		price = *req.PriceEurPerKWh
	}
	if !(price > 0) || math.IsInf(price, 0) {
		writeErr(w, http.StatusBadRequest, "price_eur_per_kwh must be positive")
		return
	}
	for i, d := range req.Devices {
		if err := d.Validate(); err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Sprintf("devices[%d]: %v", i, err))
			return
		}
	}
	writeJSON(w, http.StatusOK, household.Summarize(req.Devices, price))
}

func (s *Server) handlePVSavings(w http.ResponseWriter, r *http.Request) {
	var req pvRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	price := s.svc.Get().ElectricityPriceEurPerKWh
	if req.PriceEurPerKWh != nil {
		price = *req.PriceEurPerKWh
	}
	if !(price > 0) || math.IsInf(price, 0) {
		writeErr(w, http.StatusBadRequest, "price_eur_per_kwh must be positive")
		return
	}
	days := req.DailyRadiationMJ
	for i, v := range days {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			writeErr(w, http.StatusBadRequest, fmt.Sprintf("daily_radiation_mj[%d] must be a non-negative number", i))
			return
		}
	}
	if len(days) == 0 {
		days = pv.FallbackRadiation()
	}

	est := pv.Estimate(days, price)
	resp := pvResponse{AnnualYieldKWh: est.AnnualYieldKWh, PriceEurPerKWh: price}
	for i, years := range pv.Horizons {
		resp.Horizons = append(resp.Horizons, horizonDTO{Years: years, SavingsEur: est.ByHorizon[i]})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- Write handlers ----

func (s *Server) handlePostModel(w http.ResponseWriter, r *http.Request) {
	// body: {"value": "geoTHERM"}
	postValue(s, w, r, func(v string) error {
		m, err := heatpump.ParseModel(v)
		if err != nil {
			return err
		}
		return s.svc.SetModel(m)
	})
}

func (s *Server) handlePostMode(w http.ResponseWriter, r *http.Request) {
	postValue(s, w, r, func(v string) error {
		m, err := heatpump.ParseOperatingMode(v)
		if err != nil {
			return err
		}
		return s.svc.SetOperatingMode(m)
	})
}

func (s *Server) handlePostQuality(w http.ResponseWriter, r *http.Request) {
	postValue(s, w, r, func(v string) error {
		q, err := heatpump.ParseBuildingQuality(v)
		if err != nil {
			return err
		}
		return s.svc.SetBuildingQuality(q)
	})
}

func (s *Server) handlePostSeason(w http.ResponseWriter, r *http.Request) {
	postValue(s, w, r, func(v string) error {
		season, err := heatpump.ParseSeason(v)
		if err != nil {
			return err
		}
		return s.svc.SetSeason(season)
	})
}

func (s *Server) handlePostPhotovoltaic(w http.ResponseWriter, r *http.Request) {
	postValue(s, w, r, s.svc.SetPhotovoltaic)
}

func (s *Server) handlePostTimeOfUse(w http.ResponseWriter, r *http.Request) {
	postValue(s, w, r, s.svc.SetTimeOfUse)
}

func (s *Server) handlePostOccupants(w http.ResponseWriter, r *http.Request) {
	postValue(s, w, r, s.svc.SetOccupants)
}

func (s *Server) handlePostField(w http.ResponseWriter, r *http.Request) {
	f, err := dashboard.ParseField(r.PathValue("field"))
	if err != nil {
		writeErr(w, http.StatusNotFound, err.Error())
		return
	}
	postValue(s, w, r, func(v float64) error {
		return s.svc.SetNumber(f, v)
	})
}

// ---- generic helpers ----

func (s *Server) respondReport(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, reportDTO{DeviceID: s.deviceID, Report: s.svc.Report()})
}

func postValue[T any](s *Server, w http.ResponseWriter, r *http.Request, apply func(T) error) {
	dec := json.NewDecoder(r.Body)
	var req struct {
		Value *T `json:"value"`
	}
	if err := dec.Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Value == nil {
		writeErr(w, http.StatusBadRequest, "missing field 'value'")
		return
	}

	if err := apply(*req.Value); err != nil {
		s.log.WithError(err).WithField("path", r.URL.Path).Debug("write rejected")
		writeErr(w, statusFor(err), err.Error())
		return
	}

	s.respondReport(w)
}

func statusFor(err error) int {
	if errors.Is(err, dashboard.ErrInvalidField) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
