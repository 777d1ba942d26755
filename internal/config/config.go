package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Order    OrderConfig    `yaml:"order"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
	AutoMigrate     bool          `yaml:"autoMigrate"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type OrderConfig struct {
	TxTimeout        time.Duration `yaml:"txTimeout"`
	MaxRetryAttempts int           `yaml:"maxRetryAttempts"`
	MaxItems         int           `yaml:"maxItems"`
}

type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	OrderTTL time.Duration `yaml:"orderTtl"`
}

type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	Retries int      `yaml:"retries"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            3306,
			User:            "vetstore",
			Password:        "secret",
			Name:            "vetstore",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Log: LogConfig{Level: "info"},
		Order: OrderConfig{
			TxTimeout:        5 * time.Second,
			MaxRetryAttempts: 3,
			MaxItems:         100,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			OrderTTL: 10 * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers: []string{"localhost:9092"},
			Topic:   "orders.created",
			Retries: 3,
		},
	}
}

// Load resolves every key from the environment, falling back to base (or
// Defaults when base is nil).
func Load(base *Config) (*Config, error) {
	if base == nil {
		base = Defaults()
	}

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", base.Server.Port)
	viper.SetDefault("SERVER_READ_TIMEOUT", base.Server.ReadTimeout.String())
	viper.SetDefault("SERVER_WRITE_TIMEOUT", base.Server.WriteTimeout.String())
	viper.SetDefault("SERVER_SHUTDOWN_TIMEOUT", base.Server.ShutdownTimeout.String())
	viper.SetDefault("DB_HOST", base.Database.Host)
	viper.SetDefault("DB_PORT", base.Database.Port)
	viper.SetDefault("DB_USER", base.Database.User)
	viper.SetDefault("DB_PASSWORD", base.Database.Password)
	viper.SetDefault("DB_NAME", base.Database.Name)
	viper.SetDefault("DB_MAX_OPEN_CONNS", base.Database.MaxOpenConns)
	viper.SetDefault("DB_MAX_IDLE_CONNS", base.Database.MaxIdleConns)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", base.Database.ConnMaxLifetime.String())
	viper.SetDefault("DB_AUTO_MIGRATE", base.Database.AutoMigrate)
	viper.SetDefault("LOG_LEVEL", base.Log.Level)
	viper.SetDefault("ORDER_TX_TIMEOUT", base.Order.TxTimeout.String())
	viper.SetDefault("ORDER_MAX_RETRY_ATTEMPTS", base.Order.MaxRetryAttempts)
	viper.SetDefault("ORDER_MAX_ITEMS", base.Order.MaxItems)
	viper.SetDefault("REDIS_ENABLED", base.Redis.Enabled)
	viper.SetDefault("REDIS_ADDR", base.Redis.Addr)
	viper.SetDefault("REDIS_PASSWORD", base.Redis.Password)
	viper.SetDefault("REDIS_DB", base.Redis.DB)
	viper.SetDefault("REDIS_ORDER_TTL", base.Redis.OrderTTL.String())
	viper.SetDefault("KAFKA_ENABLED", base.Kafka.Enabled)
	viper.SetDefault("KAFKA_BROKERS", strings.Join(base.Kafka.Brokers, ","))
	viper.SetDefault("KAFKA_TOPIC", base.Kafka.Topic)
	viper.SetDefault("KAFKA_RETRIES", base.Kafka.Retries)

	readTimeout, err := time.ParseDuration(viper.GetString("SERVER_READ_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	writeTimeout, err := time.ParseDuration(viper.GetString("SERVER_WRITE_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := time.ParseDuration(viper.GetString("SERVER_SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	txTimeout, err := time.ParseDuration(viper.GetString("ORDER_TX_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	orderTTL, err := time.ParseDuration(viper.GetString("REDIS_ORDER_TTL"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            viper.GetInt("SERVER_PORT"),
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
			AutoMigrate:     viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Order: OrderConfig{
			TxTimeout:        txTimeout,
			MaxRetryAttempts: viper.GetInt("ORDER_MAX_RETRY_ATTEMPTS"),
			MaxItems:         viper.GetInt("ORDER_MAX_ITEMS"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			OrderTTL: orderTTL,
		},
		Kafka: KafkaConfig{
			Enabled: viper.GetBool("KAFKA_ENABLED"),
			Brokers: splitList(viper.GetString("KAFKA_BROKERS")),
			Topic:   viper.GetString("KAFKA_TOPIC"),
			Retries: viper.GetInt("KAFKA_RETRIES"),
		},
	}

	return cfg, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
