package mqttctrl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"github.com/Agrid-Dev/energydash/internal/dashboard"
	"github.com/Agrid-Dev/energydash/internal/heatpump"
	"github.com/Agrid-Dev/energydash/internal/ports"
)

type Config struct {
	// Identity
	DeviceID string

	// MQTT connection
	BrokerURL string
	ClientID  string

	// Topics
	BaseTopic string

	// Behavior
	QoS             byte
	RetainReport    bool
	PublishInterval time.Duration

	Username string
	Password string

	Logger logrus.FieldLogger
}

type Controller struct {
	svc ports.DashboardService
	cfg Config
	log logrus.FieldLogger

	client mqtt.Client
}

func New(svc ports.DashboardService, cfg Config) (*Controller, error) {
	// ---- defaults ----

	if cfg.BrokerURL == "" {
		cfg.BrokerURL = "tcp://localhost:1883"
	}

	if cfg.DeviceID == "" {
		return nil, errors.New("mqtt: DeviceID is required")
	}
	if cfg.BaseTopic == "" {
		cfg.BaseTopic = "energydash/" + cfg.DeviceID
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "energydash-" + cfg.DeviceID
	}
	if cfg.PublishInterval <= 0 {
		cfg.PublishInterval = 1 * time.Second
	}
	if cfg.QoS > 1 {
		return nil, errors.New("mqtt: QoS must be 0 or 1")
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{
		svc: svc,
		cfg: cfg,
		log: log.WithField("controller", "mqtt"),
	}, nil
}

func (c *Controller) Run(ctx context.Context) error {
	opts := mqtt.NewClientOptions().
		AddBroker(c.cfg.BrokerURL).
		SetClientID(c.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(2 * time.Second)

	if c.cfg.Username != "" {
		opts.SetUsername(c.cfg.Username)
		opts.SetPassword(c.cfg.Password)
	}

	// Subscribe when connected/reconnected.
	opts.OnConnect = func(cl mqtt.Client) {
		topic := c.topic("set/+")
		token := cl.Subscribe(topic, c.cfg.QoS, c.onMessage)
		token.Wait()
		if err := token.Error(); err != nil {
			c.log.WithError(err).WithField("topic", topic).Error("mqtt subscribe failed")
			return
		}
		c.log.WithField("topic", topic).Info("mqtt subscribed")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		c.log.WithError(err).Warn("mqtt connection lost")
	}

	c.client = mqtt.NewClient(opts)
	tok := c.client.Connect()
	tok.Wait()
	if err := tok.Error(); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}

	// Publish loop: publish report on interval, and only when parameters changed.
	ticker := time.NewTicker(c.cfg.PublishInterval)
	defer ticker.Stop()

	// publish immediately once
	last := c.svc.Get()
	c.publishReport()

	for {
		select {
		case <-ctx.Done():
			c.client.Disconnect(250)
			return ctx.Err()

		case <-ticker.C:
			if cur := c.svc.Get(); cur != last {
				c.publishReport()
				last = cur
			}
		}
	}
}

type reportDTO struct {
	DeviceID string `json:"device_id"`
	heatpump.Report
}

func (c *Controller) publishReport() {
	b, err := json.Marshal(reportDTO{DeviceID: c.cfg.DeviceID, Report: c.svc.Report()})
	if err != nil {
		c.log.WithError(err).Error("mqtt report encode failed")
		return
	}
	c.client.Publish(c.topic("report"), c.cfg.QoS, c.cfg.RetainReport, b)
}

// Command payload format: {"value": ...}
type valueReq[T any] struct {
	Value *T `json:"value"`
}

func (c *Controller) onMessage(_ mqtt.Client, msg mqtt.Message) {
	// topic format: <base>/set/<param>
	t := msg.Topic()
	prefix := strings.TrimRight(c.cfg.BaseTopic, "/") + "/set/"
	if !strings.HasPrefix(t, prefix) {
		return
	}
	param := strings.TrimPrefix(t, prefix)

	if err := c.apply(param, msg.Payload()); err != nil {
		c.log.WithError(err).WithField("param", param).Warn("mqtt command rejected")
	}
}

func (c *Controller) apply(param string, payload []byte) error {
	switch param {
	case "model":
		return withEnum(payload, heatpump.ParseModel, c.svc.SetModel)
	case "operating_mode":
		return withEnum(payload, heatpump.ParseOperatingMode, c.svc.SetOperatingMode)
	case "building_quality":
		return withEnum(payload, heatpump.ParseBuildingQuality, c.svc.SetBuildingQuality)
	case "season":
		return withEnum(payload, heatpump.ParseSeason, c.svc.SetSeason)

	case "photovoltaic":
		v, err := decodeValueStrict[bool](payload)
		if err != nil {
			return err
		}
		return c.svc.SetPhotovoltaic(v)

	case "time_of_use":
		v, err := decodeValueStrict[bool](payload)
		if err != nil {
			return err
		}
		return c.svc.SetTimeOfUse(v)

	case "occupants":
		v, err := decodeValueStrict[int](payload)
		if err != nil {
			return err
		}
		return c.svc.SetOccupants(v)
	}

	f, err := dashboard.ParseField(param)
	if err != nil {
		return err
	}
	v, err := decodeValueStrict[float64](payload)
	if err != nil {
		return err
	}
	return c.svc.SetNumber(f, v)
}

func withEnum[E any](payload []byte, parse func(string) (E, error), set func(E) error) error {
	s, err := decodeValueStrict[string](payload)
	if err != nil {
		return err
	}
	e, err := parse(s)
	if err != nil {
		return err
	}
	return set(e)
}

func (c *Controller) topic(suffix string) string {
	return strings.TrimRight(c.cfg.BaseTopic, "/") + "/" + suffix
}

func decodeValueStrict[T any](b []byte) (T, error) {
	var zero T
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var req valueReq[T]
	if err := dec.Decode(&req); err != nil {
		return zero, err
	}
	if req.Value == nil {
		return zero, errors.New("missing field 'value'")
	}
	return *req.Value, nil
}
