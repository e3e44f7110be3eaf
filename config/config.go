package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultHTTPAddress      = ":8080"
	defaultListLimit        = 5
	defaultFlightsCacheTTL  = 60
	defaultLogLevel         = "info"
	defaultBookingTopic     = "bookings"
	defaultNotificationsTop = "booking-notifications"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Booking  BookingConfig  `yaml:"booking"`
	Session  SessionConfig  `yaml:"session"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	Migrate  bool   `yaml:"migrate"`
}

// DSN prefers an explicit connection URL (as handed out by hosted Postgres providers)
// over the discrete fields.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type BookingConfig struct {
	FlightsCacheTTL  int   `yaml:"flights_cache_ttl_seconds"`
	DefaultListLimit int   `yaml:"default_list_limit"`
	TaxesAndFees     int64 `yaml:"taxes_and_fees"`
}

type SessionConfig struct {
	JWTSecret   string `yaml:"jwt_secret"`
	CookieName  string `yaml:"cookie_name"`
	TokenIssuer string `yaml:"token_issuer"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if cfg.Session.JWTSecret == "" {
		return nil, fmt.Errorf("session.jwt_secret (or PINGO_JWT_SECRET) is required")
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PINGO_JWT_SECRET"); v != "" {
		c.Session.JWTSecret = v
	}
	if v := os.Getenv("PINGO_DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = defaultHTTPAddress
	}
	if c.Booking.DefaultListLimit <= 0 {
		c.Booking.DefaultListLimit = defaultListLimit
	}
	if c.Booking.FlightsCacheTTL <= 0 {
		c.Booking.FlightsCacheTTL = defaultFlightsCacheTTL
	}
	if c.Kafka.BookingTopic == "" {
		c.Kafka.BookingTopic = defaultBookingTopic
	}
	if c.Kafka.NotificationsTopic == "" {
		c.Kafka.NotificationsTopic = defaultNotificationsTop
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "pingo_token"
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
}
