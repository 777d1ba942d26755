package commons

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.Order.TxTimeout)
	assert.Equal(t, 3, cfg.Order.MaxRetryAttempts)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoadConfig_FileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
  writeTimeout: 30s
order:
  txTimeout: 2s
  maxRetryAttempts: 5
kafka:
  enabled: true
  brokers: ["k1:9092", "k2:9092"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 2*time.Second, cfg.Order.TxTimeout)
	assert.Equal(t, 5, cfg.Order.MaxRetryAttempts)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  host: file-db
  name: vetstore_file
order:
  txTimeout: 2s
kafka:
  brokers: ["file:9092"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("DB_HOST", "env-db")
	t.Setenv("ORDER_TX_TIMEOUT", "750ms")
	t.Setenv("KAFKA_BROKERS", "e1:9092, e2:9092")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-db", cfg.Database.Host)
	assert.Equal(t, "vetstore_file", cfg.Database.Name)
	assert.Equal(t, 750*time.Millisecond, cfg.Order.TxTimeout)
	assert.Equal(t, []string{"e1:9092", "e2:9092"}, cfg.Kafka.Brokers)
}

func TestLoadConfig_InvalidEnvironmentDuration(t *testing.T) {
	t.Setenv("ORDER_TX_TIMEOUT", "soon")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
