package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/Agrid-Dev/energydash/internal/heatpump"
)

const envPrefix = "ENERGYDASH_"

type Config struct {
	DeviceID    string            `koanf:"device_id"`
	Logging     LoggingConfig     `koanf:"logging"`
	Controllers ControllersConfig `koanf:"controllers"`
	HeatPump    HeatPumpConfig    `koanf:"heatpump"`
}

type ControllersConfig struct {
	HTTP   HTTPConfig   `koanf:"http"`
	MQTT   MQTTConfig   `koanf:"mqtt"`
	Modbus ModbusConfig `koanf:"modbus"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`  // logrus level name
	Format string `koanf:"format"` // "text" | "json"
}

// HeatPumpConfig seeds the dashboard at startup.
type HeatPumpConfig struct {
	Model           string `koanf:"model"`            // "aroTHERM" | "geoTHERM" | "flexoTHERM"
	OperatingMode   string `koanf:"operating_mode"`   // "heating" | "cooling" | "domestic_hot_water"
	BuildingQuality string `koanf:"building_quality"` // "old" | "standard" | "efficient"
	// Season, when set, replaces OutsideTemperature with the season's typical value.
	Season string `koanf:"season"`

	OutsideTemperature float64 `koanf:"outside_temperature"`
	InsideTemperature  float64 `koanf:"inside_temperature"`
	FlowTemperature    float64 `koanf:"flow_temperature"`
	DHWTemperature     float64 `koanf:"dhw_temperature"`
	Humidity           float64 `koanf:"humidity"`
	WindSpeed          float64 `koanf:"wind_speed"`

	HouseSize float64 `koanf:"house_size"`
	Occupants int     `koanf:"occupants"`

	ElectricityPrice float64 `koanf:"electricity_price"`
	Photovoltaic     bool    `koanf:"photovoltaic"`
	TimeOfUse        bool    `koanf:"time_of_use"`
	DayPrice         float64 `koanf:"day_price"`
	NightPrice       float64 `koanf:"night_price"`
}

type HTTPConfig struct {
	Enabled      bool          `koanf:"enabled"`
	Addr         string        `koanf:"addr"`
	RateLimit    float64       `koanf:"rate_limit"` // write requests per second, 0 disables
	RateBurst    int           `koanf:"rate_burst"`
	LiveFeed     bool          `koanf:"live_feed"`
	LiveInterval time.Duration `koanf:"live_interval"`
}

type MQTTConfig struct {
	Enabled         bool          `koanf:"enabled"`
	BrokerURL       string        `koanf:"broker_url"`
	ClientID        string        `koanf:"client_id"`
	BaseTopic       string        `koanf:"base_topic"`
	QoS             byte          `koanf:"qos"`
	RetainReport    bool          `koanf:"retain_report"`
	PublishInterval time.Duration `koanf:"publish_interval"`
	Username        string        `koanf:"username"`
	Password        string        `koanf:"password"`
}

type ModbusConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
	UnitID  byte   `koanf:"unit_id"`
}

// DefaultConfig is the lowest configuration layer.
func DefaultConfig() Config {
	p := heatpump.DefaultParameters()
	return Config{
		DeviceID: "default",
		Logging:  LoggingConfig{Level: "info", Format: "text"},
		Controllers: ControllersConfig{
			HTTP: HTTPConfig{
				Enabled:      true,
				Addr:         ":8080",
				RateLimit:    5,
				RateBurst:    10,
				LiveFeed:     true,
				LiveInterval: 1 * time.Second,
			},
			MQTT: MQTTConfig{
				BrokerURL:       "tcp://localhost:1883",
				PublishInterval: 1 * time.Second,
			},
			Modbus: ModbusConfig{
				Addr:   "127.0.0.1:1502",
				UnitID: 1,
			},
		},
		HeatPump: HeatPumpConfig{
			Model:              p.Model.String(),
			OperatingMode:      p.OperatingMode.String(),
			BuildingQuality:    p.BuildingQuality.String(),
			OutsideTemperature: p.OutsideTemperatureC,
			InsideTemperature:  p.InsideTemperatureC,
			FlowTemperature:    p.FlowTemperatureC,
			DHWTemperature:     p.DomesticHotWaterTemperatureC,
			Humidity:           p.RelativeHumidityPct,
			WindSpeed:          p.WindSpeedMs,
			HouseSize:          p.HouseSizeM2,
			Occupants:          p.Occupants,
			ElectricityPrice:   p.ElectricityPriceEurPerKWh,
			Photovoltaic:       p.HasPhotovoltaic,
			TimeOfUse:          p.Tariff.TimeOfUse,
			DayPrice:           p.Tariff.DayPriceEurPerKWh,
			NightPrice:         p.Tariff.NightPriceEurPerKWh,
		},
	}
}

// LoadConfig layers defaults, the config file (if present) and ENERGYDASH_* env vars.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := loadFile(k, path); err != nil {
			return Config{}, err
		}
	}

	envProvider := env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return envKeyTransform(strings.TrimPrefix(key, envPrefix)), value
		},
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Config file missing → use defaults
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config extension %q", ext)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("parse %s: %w", strings.TrimPrefix(ext, "."), err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.DeviceID == "" {
		cfg.DeviceID = "default"
	}
	if cfg.Controllers.HTTP.Addr == "" {
		cfg.Controllers.HTTP.Addr = ":8080"
	}
	c := cfg.Controllers
	if !c.HTTP.Enabled && !c.MQTT.Enabled && !c.Modbus.Enabled {
		cfg.Controllers.HTTP.Enabled = true
	}
	if cfg.Controllers.MQTT.PublishInterval <= 0 {
		cfg.Controllers.MQTT.PublishInterval = 1 * time.Second
	}
	if cfg.Controllers.HTTP.LiveInterval <= 0 {
		cfg.Controllers.HTTP.LiveInterval = 1 * time.Second
	}
	if cfg.Controllers.Modbus.UnitID == 0 {
		cfg.Controllers.Modbus.UnitID = 1
	}
}

// envSections are the top-level keys whose env vars split once after the section name.
var envSections = []string{"heatpump", "logging"}

// envKeyTransform maps an env var name (prefix stripped) to a koanf key:
// CONTROLLERS_HTTP_ADDR → controllers.http.addr, HEATPUMP_FLOW_TEMPERATURE →
// heatpump.flow_temperature, DEVICE_ID → device_id.
func envKeyTransform(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	if k == "" {
		return ""
	}

	if strings.HasPrefix(k, "controllers_") {
		parts := strings.SplitN(k, "_", 3)
		if len(parts) < 3 {
			return k
		}
		return "controllers." + parts[1] + "." + parts[2]
	}

	for _, s := range envSections {
		if rest, ok := strings.CutPrefix(k, s+"_"); ok && rest != "" {
			return s + "." + rest
		}
	}
	return k
}

// Params turns the heatpump section into validated model parameters.
func (c Config) Params() (heatpump.Parameters, error) {
	h := c.HeatPump

	model, err := heatpump.ParseModel(h.Model)
	if err != nil {
		return heatpump.Parameters{}, err
	}
	mode, err := heatpump.ParseOperatingMode(h.OperatingMode)
	if err != nil {
		return heatpump.Parameters{}, err
	}
	quality, err := heatpump.ParseBuildingQuality(h.BuildingQuality)
	if err != nil {
		return heatpump.Parameters{}, err
	}

	outside := h.OutsideTemperature
	if h.Season != "" {
		s, err := heatpump.ParseSeason(h.Season)
		if err != nil {
			return heatpump.Parameters{}, err
		}
		outside = s.OutsideTemperature()
	}

	p := heatpump.Parameters{
		Model:                        model,
		OperatingMode:                mode,
		OutsideTemperatureC:          outside,
		InsideTemperatureC:           h.InsideTemperature,
		FlowTemperatureC:             h.FlowTemperature,
		DomesticHotWaterTemperatureC: h.DHWTemperature,
		RelativeHumidityPct:          h.Humidity,
		WindSpeedMs:                  h.WindSpeed,
		HouseSizeM2:                  h.HouseSize,
		BuildingQuality:              quality,
		Occupants:                    h.Occupants,
		ElectricityPriceEurPerKWh:    h.ElectricityPrice,
		HasPhotovoltaic:              h.Photovoltaic,
		Tariff: heatpump.Tariff{
			TimeOfUse:           h.TimeOfUse,
			DayPriceEurPerKWh:   h.DayPrice,
			NightPriceEurPerKWh: h.NightPrice,
		},
	}
	if err := p.Validate(); err != nil {
		return heatpump.Parameters{}, fmt.Errorf("heatpump config: %w", err)
	}
	return p, nil
}

func ApplyEnvOverrides(cfg *Config) {
	// Explicit addr prefered, else support PORT (common in containers).
	if v := os.Getenv("ENERGYDASH_HTTP_ADDR"); v != "" {
		cfg.Controllers.HTTP.Addr = v
		return
	}
	if v := os.Getenv("PORT"); v != "" {
		// listen on all interfaces on that port
		cfg.Controllers.HTTP.Addr = ":" + v
	}
}
