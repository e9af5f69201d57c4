package mqttctrl

import (
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"github.com/Agrid-Dev/energydash/internal/dashboard"
	"github.com/Agrid-Dev/energydash/internal/heatpump"
	"github.com/Agrid-Dev/energydash/internal/testutil"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 0 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 0 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

type fakeToken struct {
	err  error
	done chan struct{}
}

func (t fakeToken) Done() <-chan struct{} {
	if t.done == nil {
		t.done = make(chan struct{})
		close(t.done)
	}
	return t.done
}

func (t fakeToken) Wait() bool                       { return true }
func (t fakeToken) WaitTimeout(_ time.Duration) bool { return true }
func (t fakeToken) Error() error                     { return t.err }

type publishCall struct {
	topic   string
	qos     byte
	retain  bool
	payload []byte
}

type fakeClient struct {
	publishes []publishCall
}

func (c *fakeClient) IsConnected() bool      { return true }
func (c *fakeClient) IsConnectionOpen() bool { return true }
func (c *fakeClient) Connect() mqtt.Token    { return fakeToken{} }
func (c *fakeClient) Disconnect(_ uint)      {}
func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	var b []byte
	switch v := payload.(type) {
	case []byte:
		b = append([]byte(nil), v...)
	case string:
		b = []byte(v)
	default:
		// shouldn't happen in our controller, but keep it safe
		tmp, _ := json.Marshal(v)
		b = tmp
	}
	c.publishes = append(c.publishes, publishCall{
		topic: topic, qos: qos, retain: retained, payload: b,
	})
	return fakeToken{}
}
func (c *fakeClient) Subscribe(_ string, _ byte, _ mqtt.MessageHandler) mqtt.Token {
	return fakeToken{}
}
func (c *fakeClient) SubscribeMultiple(_ map[string]byte, _ mqtt.MessageHandler) mqtt.Token {
	return fakeToken{}
}
func (c *fakeClient) Unsubscribe(_ ...string) mqtt.Token       { return fakeToken{} }
func (c *fakeClient) AddRoute(_ string, _ mqtt.MessageHandler) {}
func (c *fakeClient) OptionsReader() mqtt.ClientOptionsReader  { return mqtt.ClientOptionsReader{} }

// ---- tests ----
func newDefaultSvc() *testutil.FakeDashboardService {
	return testutil.NewFakeDashboardService()
}

func newTestController(t *testing.T, svc *testutil.FakeDashboardService, cfg Config) (*Controller, *fakeClient) {
	t.Helper()
	if cfg.DeviceID == "" {
		cfg.DeviceID = "house1"
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	cfg.Logger = l

	c, err := New(svc, cfg)
	if err != nil {
		t.Fatal(err)
	}
	fc := &fakeClient{}
	c.client = fc
	return c, fc
}

func send(c *Controller, param, payload string) {
	c.onMessage(nil, fakeMessage{
		topic:   "energydash/house1/set/" + param,
		payload: []byte(payload),
	})
}

func TestNewDefaults(t *testing.T) {
	svc := newDefaultSvc()
	c, err := New(svc, Config{DeviceID: "house1"})
	if err != nil {
		t.Fatal(err)
	}

	if c.cfg.BrokerURL != "tcp://localhost:1883" {
		t.Fatalf("expected default BrokerURL, got %q", c.cfg.BrokerURL)
	}
	if c.cfg.BaseTopic != "energydash/house1" {
		t.Fatalf("expected default BaseTopic, got %q", c.cfg.BaseTopic)
	}
	if c.cfg.ClientID != "energydash-house1" {
		t.Fatalf("expected default ClientID, got %q", c.cfg.ClientID)
	}
	if c.cfg.PublishInterval != 1*time.Second {
		t.Fatalf("expected default PublishInterval, got %v", c.cfg.PublishInterval)
	}
}

func TestNewValidation(t *testing.T) {
	svc := newDefaultSvc()

	if _, err := New(svc, Config{}); err == nil {
		t.Fatal("expected error when DeviceID missing")
	}

	if _, err := New(svc, Config{DeviceID: "x", QoS: 2}); err == nil {
		t.Fatal("expected error when QoS > 1")
	}
}

func TestTopicJoin(t *testing.T) {
	svc := newDefaultSvc()
	c, _ := newTestController(t, svc, Config{BaseTopic: "energydash/house1/"})
	if got := c.topic("report"); got != "energydash/house1/report" {
		t.Fatalf("expected topic without double slashes, got %q", got)
	}

	// trailing slash on the base must not break command routing
	send(c, "photovoltaic", `{"value":false}`)
	if !svc.SetPhotovoltaicCalled {
		t.Fatal("expected SetPhotovoltaic called")
	}
}

func TestDecodeValueStrict(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		v, err := decodeValueStrict[float64]([]byte(`{"value": 12.5}`))
		if err != nil {
			t.Fatal(err)
		}
		if v != 12.5 {
			t.Fatalf("expected 12.5, got %v", v)
		}
	})

	t.Run("missing value", func(t *testing.T) {
		_, err := decodeValueStrict[bool]([]byte(`{}`))
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		_, err := decodeValueStrict[string]([]byte(`{"value":"heating","extra":1}`))
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := decodeValueStrict[string]([]byte(`{"value":`))
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestOnMessage_IgnoresWrongPrefix(t *testing.T) {
	svc := newDefaultSvc()
	c, _ := newTestController(t, svc, Config{})

	c.onMessage(nil, fakeMessage{
		topic:   "otherprefix/set/photovoltaic",
		payload: []byte(`{"value":false}`),
	})

	if svc.SetPhotovoltaicCalled {
		t.Fatal("expected SetPhotovoltaic not called")
	}
}

func TestOnMessage_Enums(t *testing.T) {
	svc := newDefaultSvc()
	c, _ := newTestController(t, svc, Config{})

	send(c, "model", `{"value":"flexoTHERM"}`)
	send(c, "operating_mode", `{"value":"cooling"}`)
	send(c, "building_quality", `{"value":"old"}`)
	send(c, "season", `{"value":"summer"}`)

	if svc.SetModelArg != heatpump.ModelFlexoTherm {
		t.Fatalf("expected flexoTHERM, got %v", svc.SetModelArg)
	}
	if svc.SetModeArg != heatpump.ModeCooling {
		t.Fatalf("expected cooling, got %v", svc.SetModeArg)
	}
	if svc.SetQualityArg != heatpump.QualityOld {
		t.Fatalf("expected old, got %v", svc.SetQualityArg)
	}
	if svc.SetSeasonArg != heatpump.SeasonSummer || svc.P.OutsideTemperatureC != 24 {
		t.Fatalf("expected summer at 24°C, got %v at %v", svc.SetSeasonArg, svc.P.OutsideTemperatureC)
	}
}

func TestOnMessage_EnumInvalid_DoesNotCallService(t *testing.T) {
	svc := newDefaultSvc()
	c, _ := newTestController(t, svc, Config{})

	send(c, "operating_mode", `{"value":"defrost"}`)
	send(c, "model", `{"value":3}`)

	if svc.SetModeCalled || svc.SetModelCalled {
		t.Fatal("expected no service call")
	}
}

func TestOnMessage_Toggles(t *testing.T) {
	svc := newDefaultSvc()
	c, _ := newTestController(t, svc, Config{})

	send(c, "photovoltaic", `{"value":false}`)
	send(c, "time_of_use", `{"value":true}`)

	if !svc.SetPhotovoltaicCalled || svc.SetPhotovoltaicArg != false {
		t.Fatalf("expected SetPhotovoltaic(false), got called=%v arg=%v", svc.SetPhotovoltaicCalled, svc.SetPhotovoltaicArg)
	}
	if !svc.SetTimeOfUseCalled || svc.SetTimeOfUseArg != true {
		t.Fatalf("expected SetTimeOfUse(true), got called=%v arg=%v", svc.SetTimeOfUseCalled, svc.SetTimeOfUseArg)
	}
}

func TestOnMessage_Occupants(t *testing.T) {
	svc := newDefaultSvc()
	c, _ := newTestController(t, svc, Config{})

	send(c, "occupants", `{"value":1.5}`)
	if svc.SetOccupantsCalled {
		t.Fatal("expected fractional occupants rejected before the service")
	}

	send(c, "occupants", `{"value":5}`)
	if !svc.SetOccupantsCalled || svc.SetOccupantsArg != 5 {
		t.Fatalf("expected SetOccupants(5), got called=%v arg=%v", svc.SetOccupantsCalled, svc.SetOccupantsArg)
	}
}

func TestOnMessage_NumericField(t *testing.T) {
	svc := newDefaultSvc()
	c, _ := newTestController(t, svc, Config{})

	send(c, "flow_temperature", `{"value":45}`)

	if !svc.SetNumberCalled || svc.SetNumberField != dashboard.FieldFlowTemperature || svc.SetNumberArg != 45 {
		t.Fatalf("expected SetNumber(flow, 45), got called=%v field=%v arg=%v",
			svc.SetNumberCalled, svc.SetNumberField, svc.SetNumberArg)
	}
}

func TestOnMessage_UnknownParam(t *testing.T) {
	svc := newDefaultSvc()
	c, _ := newTestController(t, svc, Config{})

	if err := c.apply("voltage", []byte(`{"value":230}`)); !errors.Is(err, dashboard.ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}
	if svc.SetNumberCalled {
		t.Fatal("expected SetNumber not called")
	}
}

func TestPublishReport_PublishesJSON(t *testing.T) {
	svc := newDefaultSvc()
	c, fc := newTestController(t, svc, Config{QoS: 1, RetainReport: true})

	c.publishReport()

	if len(fc.publishes) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(fc.publishes))
	}

	p := fc.publishes[0]
	if p.topic != "energydash/house1/report" {
		t.Fatalf("expected report topic, got %q", p.topic)
	}
	if p.qos != 1 || p.retain != true {
		t.Fatalf("expected qos=1 retain=true, got qos=%d retain=%v", p.qos, p.retain)
	}

	var got map[string]any
	if err := json.Unmarshal(p.payload, &got); err != nil {
		t.Fatalf("invalid published json: %v payload=%s", err, string(p.payload))
	}
	if got["device_id"] != "house1" {
		t.Fatalf("expected device_id=house1, got %v", got["device_id"])
	}
	perf := got["performance"].(map[string]any)
	if perf["cop"] != heatpump.COP(svc.P) {
		t.Fatalf("expected cop=%v, got %v", heatpump.COP(svc.P), perf["cop"])
	}
}

func TestApply_PhotovoltaicReturnsServiceError(t *testing.T) {
	svc := newDefaultSvc()
	svc.SetPhotovoltaicErr = heatpump.ErrOutOfDomain
	c, _ := newTestController(t, svc, Config{})

	if err := c.apply("photovoltaic", []byte(`{"value":false}`)); !errors.Is(err, heatpump.ErrOutOfDomain) {
		t.Fatalf("expected ErrOutOfDomain, got %v", err)
	}
	if !svc.P.HasPhotovoltaic {
		t.Fatal("expected photovoltaic untouched after service error")
	}
}

// The controller logs service errors and carries on.
func TestOnMessage_ServiceError_IsIgnored(t *testing.T) {
	svc := newDefaultSvc()
	svc.SetTimeOfUseErr = errors.New("boom")
	c, _ := newTestController(t, svc, Config{})

	send(c, "time_of_use", `{"value":true}`)

	if !svc.SetTimeOfUseCalled {
		t.Fatal("expected SetTimeOfUse called")
	}
	if svc.P.Tariff.TimeOfUse {
		t.Fatal("expected tariff untouched after service error")
	}
}
