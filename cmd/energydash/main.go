package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Agrid-Dev/energydash/cmd/app"
	httpctrl "github.com/Agrid-Dev/energydash/internal/controllers/http"
	modbusctrl "github.com/Agrid-Dev/energydash/internal/controllers/modbus"
	mqttctrl "github.com/Agrid-Dev/energydash/internal/controllers/mqtt"
	"github.com/Agrid-Dev/energydash/internal/controllers/ws"
	"github.com/Agrid-Dev/energydash/internal/dashboard"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "path to config file (.yaml/.yml/.json)")
	flag.Parse()

	if err := run(configPath); err != nil {
		fmt.Fprintln(os.Stderr, "energydash:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return err
	}
	app.ApplyEnvOverrides(&cfg)

	log, err := app.NewLogger(cfg.Logging, os.Stderr)
	if err != nil {
		return err
	}

	params, err := cfg.Params()
	if err != nil {
		return err
	}
	dash, err := dashboard.New(params)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	entry := log.WithField("device_id", cfg.DeviceID)

	if c := cfg.Controllers.HTTP; c.Enabled {
		opts := []httpctrl.Option{
			httpctrl.WithLogger(entry.WithField("controller", "http")),
			httpctrl.WithRateLimit(c.RateLimit, c.RateBurst),
		}
		if c.LiveFeed {
			hub := ws.NewHub(entry.WithField("controller", "ws"))
			opts = append(opts, httpctrl.WithLiveFeed(ws.NewHandler(hub, dash, cfg.DeviceID)))
			b := ws.NewBroadcaster(hub, dash, cfg.DeviceID, c.LiveInterval)
			g.Go(func() error { return b.Run(ctx) })
		}
		srv := httpctrl.New(dash, c.Addr, cfg.DeviceID, opts...)
		g.Go(func() error { return srv.Run(ctx) })
	}

	if c := cfg.Controllers.MQTT; c.Enabled {
		ctrl, err := mqttctrl.New(dash, mqttctrl.Config{
			DeviceID:        cfg.DeviceID,
			BrokerURL:       c.BrokerURL,
			ClientID:        c.ClientID,
			BaseTopic:       c.BaseTopic,
			QoS:             c.QoS,
			RetainReport:    c.RetainReport,
			PublishInterval: c.PublishInterval,
			Username:        c.Username,
			Password:        c.Password,
			Logger:          entry,
		})
		if err != nil {
			return err
		}
		g.Go(func() error { return ctrl.Run(ctx) })
	}

	if c := cfg.Controllers.Modbus; c.Enabled {
		ctrl, err := modbusctrl.New(dash, modbusctrl.Config{
			DeviceID: cfg.DeviceID,
			Addr:     c.Addr,
			UnitID:   c.UnitID,
			Logger:   entry,
		})
		if err != nil {
			return err
		}
		g.Go(func() error { return ctrl.Run(ctx) })
	}

	entry.WithFields(logrus.Fields{
		"http":   cfg.Controllers.HTTP.Enabled,
		"mqtt":   cfg.Controllers.MQTT.Enabled,
		"modbus": cfg.Controllers.Modbus.Enabled,
	}).Info("energydash started")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	entry.Info("energydash stopped")
	return nil
}
