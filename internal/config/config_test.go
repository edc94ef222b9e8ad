package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 50051, cfg.Server.GRPCPort)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 502, cfg.AXS.Port)
	assert.Equal(t, 1, cfg.AXS.UnitID)
	assert.Equal(t, 10*time.Second, cfg.AXS.Timeout)
	assert.Equal(t, "native", cfg.AXS.Driver)
	assert.Equal(t, 40001, cfg.AXS.BaseAddress)
	assert.True(t, cfg.AXS.ReleaseControl)
	assert.Equal(t, 5*time.Second, cfg.Poll.ShortInterval)
	assert.Equal(t, 30*time.Second, cfg.Poll.LongInterval)
	assert.False(t, cfg.MQTT.Enabled)
	assert.Equal(t, "sunspec", cfg.MQTT.TopicPrefix)
	assert.Equal(t, 60*time.Minute, cfg.Auth.AccessTokenTTL)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
axs:
  host: 192.168.1.50
  driver: goburrow
  timeout: 3s
poll:
  short_interval: 2s
  registers:
    - FX_Inverter_Output_Current
    - OutBack_Temp_Batt
mqtt:
  enabled: true
  broker: tcp://broker:1883
auth:
  users:
    - username: installer
      role: technician
      password_hash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "192.168.1.50", cfg.AXS.Host)
	assert.Equal(t, "goburrow", cfg.AXS.Driver)
	assert.Equal(t, 3*time.Second, cfg.AXS.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Poll.ShortInterval)
	assert.Equal(t, []string{"FX_Inverter_Output_Current", "OutBack_Temp_Batt"}, cfg.Poll.Registers)
	assert.True(t, cfg.MQTT.Enabled)
	require.Len(t, cfg.Auth.Users, 1)
	assert.Equal(t, "technician", cfg.Auth.Users[0].Role)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SBR_AXS_HOST", "axs.example")
	t.Setenv("SBR_AXS_PORT", "1502")

	cfg, err := Load(writeConfig(t, "axs:\n  host: ignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "axs.example", cfg.AXS.Host)
	assert.Equal(t, 1502, cfg.AXS.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), "axs.host")

	cfg.AXS.Host = "axs"
	require.NoError(t, cfg.Validate())

	cfg.MQTT.Enabled = true
	assert.ErrorContains(t, cfg.Validate(), "mqtt.broker")
	cfg.MQTT.Broker = "tcp://b:1883"
	cfg.MQTT.QoS = 3
	assert.ErrorContains(t, cfg.Validate(), "mqtt.qos")
	cfg.MQTT.QoS = 1

	cfg.AXS.UnitID = 300
	assert.ErrorContains(t, cfg.Validate(), "unit_id")
}

func TestJWTSecret(t *testing.T) {
	a := AuthConfig{JWTSecretEnv: "SBR_TEST_SECRET"}
	assert.Equal(t, devJWTSecret, a.GetJWTSecret())
	assert.False(t, a.IsProductionReady())

	t.Setenv("SBR_TEST_SECRET", "0123456789abcdef0123456789abcdef")
	assert.Equal(t, "0123456789abcdef0123456789abcdef", a.GetJWTSecret())
	assert.True(t, a.IsProductionReady())
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Database: "sunspec", User: "u", Password: "p"}
	assert.Equal(t, "postgres://u:p@db:5432/sunspec?sslmode=disable", d.DSN())
}
