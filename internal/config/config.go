package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ConfigFileName is the JSON configuration file read from the config dir.
const ConfigFileName = "waypointd.cfg.json"

// MarkersConfig holds waypoint marker rendering settings.
type MarkersConfig struct {
	Namespace string    `json:"namespace" mapstructure:"namespace"`
	Material  string    `json:"material" mapstructure:"material"`
	Scaling   []float64 `json:"scaling" mapstructure:"scaling"`
	Height    float64   `json:"height" mapstructure:"height"`
	InitialID int       `json:"initialId" mapstructure:"initialId"`
}

// SimConfig holds simulator bus connection settings.
type SimConfig struct {
	URL    string `json:"url" mapstructure:"url"`
	Secret string `json:"secret" mapstructure:"secret"`
	Topic  string `json:"topic" mapstructure:"topic"`
}

// OTelConfig holds OpenTelemetry settings.
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// InfluxConfig holds InfluxDB telemetry settings.
type InfluxConfig struct {
	Enabled  bool
	Protocol string
	Host     string
	Port     string
	Token    string
	Org      string
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./vrxlogs")

	viper.SetDefault("markers.namespace", "waypoints")
	viper.SetDefault("markers.material", "Gazebo/Green")
	viper.SetDefault("markers.scaling", []float64{0.2, 0.2, 1.5})
	viper.SetDefault("markers.height", 0.0)
	viper.SetDefault("markers.initialId", 0)

	viper.SetDefault("sim.url", "ws://localhost:9002/marker")
	viper.SetDefault("sim.secret", "")
	viper.SetDefault("sim.topic", "/marker")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "vrx-metrics")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "waypointd")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetConfigName(ConfigFileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// MarkersTree returns the marker configuration sub-tree, or nil when the
// config has no markers section.
func MarkersTree() *viper.Viper {
	return viper.Sub("markers")
}

// GetMarkersConfig returns the marker settings with defaults applied.
func GetMarkersConfig() MarkersConfig {
	return MarkersConfig{
		Namespace: viper.GetString("markers.namespace"),
		Material:  viper.GetString("markers.material"),
		Scaling:   floats("markers.scaling"),
		Height:    viper.GetFloat64("markers.height"),
		InitialID: viper.GetInt("markers.initialId"),
	}
}

// GetSimConfig returns the simulator bus settings.
func GetSimConfig() SimConfig {
	return SimConfig{
		URL:    viper.GetString("sim.url"),
		Secret: viper.GetString("sim.secret"),
		Topic:  viper.GetString("sim.topic"),
	}
}

// GetOTelConfig returns the OpenTelemetry settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetInfluxConfig returns the InfluxDB telemetry settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:  viper.GetBool("influx.enabled"),
		Protocol: viper.GetString("influx.protocol"),
		Host:     viper.GetString("influx.host"),
		Port:     viper.GetString("influx.port"),
		Token:    viper.GetString("influx.token"),
		Org:      viper.GetString("influx.org"),
	}
}

// floats reads a key as a float slice. viper stores JSON arrays as
// []any, so GetFloat64Slice alone does not cover file-sourced values.
func floats(key string) []float64 {
	raw := viper.Get(key)
	switch v := raw.(type) {
	case []float64:
		return v
	case []any:
		out := make([]float64, 0, len(v))
		for _, e := range v {
			f, ok := e.(float64)
			if !ok {
				return nil
			}
			out = append(out, f)
		}
		return out
	default:
		return nil
	}
}
