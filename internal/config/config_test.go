package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"markers": { "material": "Gazebo/Red", "height": 0.5 },
		"sim": { "url": "ws://10.0.0.1:9002/marker" }
	}`
	writeConfig(t, dir, cfg)

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, "Gazebo/Red", viper.GetString("markers.material"))
	assert.Equal(t, 0.5, viper.GetFloat64("markers.height"))
	assert.Equal(t, "ws://10.0.0.1:9002/marker", viper.GetString("sim.url"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{}`)

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./vrxlogs", viper.GetString("logsDir"))
	assert.Equal(t, "waypoints", viper.GetString("markers.namespace"))
	assert.Equal(t, "Gazebo/Green", viper.GetString("markers.material"))
	assert.Equal(t, 0.0, viper.GetFloat64("markers.height"))
	assert.Equal(t, 0, viper.GetInt("markers.initialId"))
	assert.Equal(t, "ws://localhost:9002/marker", viper.GetString("sim.url"))
	assert.Equal(t, "", viper.GetString("sim.secret"))
	assert.Equal(t, "/marker", viper.GetString("sim.topic"))
	assert.Equal(t, false, viper.GetBool("graylog.enabled"))
	assert.Equal(t, "localhost:12201", viper.GetString("graylog.address"))
	assert.Equal(t, false, viper.GetBool("influx.enabled"))
	assert.Equal(t, "http", viper.GetString("influx.protocol"))
	assert.Equal(t, "localhost", viper.GetString("influx.host"))
	assert.Equal(t, "8086", viper.GetString("influx.port"))
	assert.Equal(t, "vrx-metrics", viper.GetString("influx.org"))
	assert.Equal(t, false, viper.GetBool("otel.enabled"))
	assert.Equal(t, "waypointd", viper.GetString("otel.serviceName"))
	assert.Equal(t, "5s", viper.GetString("otel.batchTimeout"))
	assert.Equal(t, "", viper.GetString("otel.endpoint"))
	assert.Equal(t, true, viper.GetBool("otel.insecure"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGetMarkersConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{}`)
	require.NoError(t, Load(dir))

	mc := GetMarkersConfig()
	assert.Equal(t, "waypoints", mc.Namespace)
	assert.Equal(t, "Gazebo/Green", mc.Material)
	assert.Equal(t, []float64{0.2, 0.2, 1.5}, mc.Scaling)
	assert.Equal(t, 0.0, mc.Height)
	assert.Equal(t, 0, mc.InitialID)
}

func TestGetMarkersConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"markers": {
			"namespace": "course_a",
			"material": "Gazebo/Orange",
			"scaling": [0.2, 0.2, 2.0],
			"height": 0.5,
			"initialId": 100
		}
	}`
	writeConfig(t, dir, cfg)
	require.NoError(t, Load(dir))

	mc := GetMarkersConfig()
	assert.Equal(t, "course_a", mc.Namespace)
	assert.Equal(t, "Gazebo/Orange", mc.Material)
	assert.Equal(t, []float64{0.2, 0.2, 2.0}, mc.Scaling)
	assert.Equal(t, 0.5, mc.Height)
	assert.Equal(t, 100, mc.InitialID)
}

func TestGetSimConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"sim": { "url": "ws://sim:9002/marker", "secret": "hunter2", "topic": "/viz/marker" }
	}`
	writeConfig(t, dir, cfg)
	require.NoError(t, Load(dir))

	sc := GetSimConfig()
	assert.Equal(t, "ws://sim:9002/marker", sc.URL)
	assert.Equal(t, "hunter2", sc.Secret)
	assert.Equal(t, "/viz/marker", sc.Topic)
}

func TestGetOTelConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"otel": {
			"enabled": true,
			"serviceName": "my-service",
			"batchTimeout": "30s",
			"endpoint": "localhost:4317",
			"insecure": false
		}
	}`
	writeConfig(t, dir, cfg)
	require.NoError(t, Load(dir))

	oc := GetOTelConfig()
	assert.Equal(t, true, oc.Enabled)
	assert.Equal(t, "my-service", oc.ServiceName)
	assert.Equal(t, 30*time.Second, oc.BatchTimeout)
	assert.Equal(t, "localhost:4317", oc.Endpoint)
	assert.Equal(t, false, oc.Insecure)
}

func TestGetInfluxConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"influx": {
			"enabled": true,
			"protocol": "https",
			"host": "influx.local",
			"port": "8087",
			"token": "tok",
			"org": "ops"
		}
	}`
	writeConfig(t, dir, cfg)
	require.NoError(t, Load(dir))

	ic := GetInfluxConfig()
	assert.Equal(t, true, ic.Enabled)
	assert.Equal(t, "https", ic.Protocol)
	assert.Equal(t, "influx.local", ic.Host)
	assert.Equal(t, "8087", ic.Port)
	assert.Equal(t, "tok", ic.Token)
	assert.Equal(t, "ops", ic.Org)
}

func TestMarkersTree_AbsentSection(t *testing.T) {
	t.Cleanup(viper.Reset)

	// No config loaded at all: no markers section in the tree.
	assert.Nil(t, viper.Sub("nothing.here"))
}
