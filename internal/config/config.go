package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override, e.g. HOSPITAL_DB_HOST.
const EnvPrefix = "hospital"

type Config struct {
	Server     ServerConfig     `mapstructure:"server" envconfig:"SERVER"`
	Database   DatabaseConfig   `mapstructure:"database" envconfig:"DB"`
	Booking    BookingConfig    `mapstructure:"booking" envconfig:"BOOKING"`
	Web        WebConfig        `mapstructure:"web" envconfig:"WEB"`
	Legacy     LegacyConfig     `mapstructure:"legacy" envconfig:"LEGACY"`
	Log        LogConfig        `mapstructure:"log" envconfig:"LOG"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit" envconfig:"RATELIMIT"`
	CORS       CORSConfig       `mapstructure:"cors" envconfig:"CORS"`
	Monitoring MonitoringConfig `mapstructure:"monitoring" envconfig:"MONITORING"`
	Redis      RedisConfig      `mapstructure:"redis" envconfig:"REDIS"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" split_words:"true"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" split_words:"true"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" split_words:"true"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" split_words:"true"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" split_words:"true"`
}

type BookingConfig struct {
	// SlotCapacity is the number of appointments a (date, time) slot accepts.
	SlotCapacity int `mapstructure:"slot_capacity" split_words:"true"`
	// SerializeSlots runs the capacity check and insert in one serializable
	// transaction instead of two independent statements.
	SerializeSlots bool `mapstructure:"serialize_slots" split_words:"true"`
}

type WebConfig struct {
	Root string `mapstructure:"root"`
}

type LegacyConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Prefix  string `mapstructure:"prefix"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" split_words:"true"`
	Burst             int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" split_words:"true"`
}

type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path" split_words:"true"`
}

type RedisConfig struct {
	URL            string        `mapstructure:"url"`
	ChannelPrefix  string        `mapstructure:"channel_prefix" split_words:"true"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout" split_words:"true"`
	PoolSize       int           `mapstructure:"pool_size" split_words:"true"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "5s")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "root")
	v.SetDefault("database.name", "hospital_db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("booking.slot_capacity", 3)
	v.SetDefault("booking.serialize_slots", false)

	v.SetDefault("web.root", "./public")
	v.SetDefault("legacy.enabled", true)
	v.SetDefault("legacy.prefix", "/legacy")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.requests_per_second", 20)
	v.SetDefault("ratelimit.burst", 40)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("monitoring.enabled", true)
	v.SetDefault("monitoring.metrics_path", "/metrics")

	v.SetDefault("redis.channel_prefix", "hospital")
	v.SetDefault("redis.publish_timeout", "500ms")
	v.SetDefault("redis.pool_size", 10)
}

// Load reads defaults, then the yaml file (explicit path, or config.yaml in
// . ./config /app/config when path is empty), then environment overrides.
// A missing config file is not an error when no explicit path is given.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/app/config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values the process cannot start without.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Booking.SlotCapacity <= 0 {
		return fmt.Errorf("booking.slot_capacity must be positive, got %d", c.Booking.SlotCapacity)
	}
	if c.Legacy.Enabled && !strings.HasPrefix(c.Legacy.Prefix, "/") {
		return fmt.Errorf("legacy.prefix must start with '/', got %q", c.Legacy.Prefix)
	}
	if c.Legacy.Enabled && (c.Legacy.Prefix == "/" || c.Legacy.Prefix == "/api") {
		return fmt.Errorf("legacy.prefix %q collides with other routes", c.Legacy.Prefix)
	}
	return nil
}
