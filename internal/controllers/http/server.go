package httpctrl

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Agrid-Dev/energydash/internal/ports"
)

type Server struct {
	svc      ports.DashboardService
	srv      *http.Server
	deviceID string

	log      logrus.FieldLogger
	registry *prometheus.Registry
	limiter  *rate.Limiter
	liveFeed http.Handler
}

type Option func(*Server)

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Server) { s.log = l }
}

// WithRateLimit caps write requests at r per second with the given burst.
// A non-positive r disables limiting.
func WithRateLimit(r float64, burst int) Option {
	return func(s *Server) {
		if r <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

// WithLiveFeed mounts h at GET /v1/ws.
func WithLiveFeed(h http.Handler) Option {
	return func(s *Server) { s.liveFeed = h }
}

// New returns a runnable server.
func New(svc ports.DashboardService, addr string, deviceID string, opts ...Option) *Server {
	s := &Server{
		svc:      svc,
		deviceID: deviceID,
		log:      logrus.StandardLogger(),
		limiter:  rate.NewLimiter(5, 10),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registry = prometheus.NewRegistry()

	m := newHTTPMetrics()
	s.registry.MustRegister(
		m.requests, m.latency,
		newReportCollector(svc, deviceID),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mux := http.NewServeMux()

	// Read
	mux.HandleFunc("GET /v1", s.handleGet)
	mux.HandleFunc("GET /v1/sweeps/outside_temperature", s.handleSweepOutside)
	mux.HandleFunc("GET /v1/sweeps/flow_temperature", s.handleSweepFlow)
	mux.HandleFunc("GET /v1/profiles/monthly", s.handleMonthly)
	mux.HandleFunc("GET /v1/profiles/hourly", s.handleHourly)
	mux.HandleFunc("GET /v1/fields", s.handleFields)
	mux.HandleFunc("GET /v1/household", s.handleGetHousehold)
	mux.HandleFunc("GET /v1/renewable", s.handleRenewable)
	mux.HandleFunc("GET /v1/comparison", s.handleComparison)

	// Stateless calculators
	mux.HandleFunc("POST /v1/evaluate", s.handleEvaluate)
	mux.HandleFunc("POST /v1/household", s.handlePostHousehold)
	mux.HandleFunc("POST /v1/pv/savings", s.handlePVSavings)

	// Write: one endpoint per variable
	write := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, s.rateLimit(h))
	}
	write("POST /v1/model", s.handlePostModel)
	write("POST /v1/operating_mode", s.handlePostMode)
	write("POST /v1/building_quality", s.handlePostQuality)
	write("POST /v1/season", s.handlePostSeason)
	write("POST /v1/photovoltaic", s.handlePostPhotovoltaic)
	write("POST /v1/time_of_use", s.handlePostTimeOfUse)
	write("POST /v1/occupants", s.handlePostOccupants)
	write("POST /v1/{field}", s.handlePostField)

	if s.liveFeed != nil {
		mux.Handle("GET /v1/ws", s.liveFeed)
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           requestID(s.accessLog(m.instrument(mux))),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the routed handler with its middleware chain.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.WithField("addr", s.srv.Addr).Info("http listening")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
