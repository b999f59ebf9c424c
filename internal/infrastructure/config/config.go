package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bibbank/bib/pkg/postgres"
)

// Config holds all accountingd configuration.
type Config struct {
	ServiceName string
	HTTPPort    int
	GRPCPort    int
	LogLevel    string
	LogFormat   string

	DB     DBConfig
	Kafka  KafkaConfig
	Retry  RetryConfig
	Outbox OutboxConfig
	Auth   AuthConfig
	TLS    TLSConfig

	MappingCacheTTL time.Duration
}

// DBConfig holds PostgreSQL connection parameters.
type DBConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int32
	MinConns    int32
	LockTimeout time.Duration
}

// Postgres converts the settings for pkg/postgres.
func (c DBConfig) Postgres(applicationName string) postgres.Config {
	return postgres.Config{
		Host:            c.Host,
		Port:            c.Port,
		User:            c.User,
		Password:        c.Password,
		Database:        c.Name,
		SSLMode:         c.SSLMode,
		ApplicationName: applicationName,
		MaxConns:        c.MaxConns,
		MinConns:        c.MinConns,
		LockTimeout:     c.LockTimeout,
	}
}

// KafkaConfig holds broker addresses and topics.
type KafkaConfig struct {
	Brokers       []string
	Topic         string
	CommandTopic  string
	ConsumerGroup string
}

// RetryConfig bounds retries of transient storage failures.
type RetryConfig struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Policy converts the settings for pkg/postgres.
func (c RetryConfig) Policy() postgres.RetryPolicy {
	return postgres.RetryPolicy{
		MaxAttempts:     c.MaxAttempts,
		InitialInterval: c.InitialInterval,
		MaxInterval:     c.MaxInterval,
	}
}

// OutboxConfig controls the outbox relay.
type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// AuthConfig selects how bearer tokens are validated. A public key wins
// over the HMAC secret.
type AuthConfig struct {
	JWTSecret        string
	JWTPublicKey     string
	JWTPublicKeyFile string
	JWTIssuer        string
}

// TLSConfig enables TLS on the gRPC listener when both files are set.
type TLSConfig struct {
	CertFile     string
	KeyFile      string
	ClientCAFile string
}

func (c TLSConfig) Enabled() bool { return c.CertFile != "" && c.KeyFile != "" }

var defaults = map[string]any{
	"SERVICE_NAME":           "accountingd",
	"HTTP_PORT":              8090,
	"GRPC_PORT":              9090,
	"LOG_LEVEL":              "info",
	"LOG_FORMAT":             "json",
	"DB_HOST":                "localhost",
	"DB_PORT":                5432,
	"DB_USER":                "bib",
	"DB_PASSWORD":            "",
	"DB_NAME":                "bib_accounting",
	"DB_SSLMODE":             "disable",
	"DB_MAX_CONNS":           20,
	"DB_MIN_CONNS":           2,
	"DB_LOCK_TIMEOUT":        "5s",
	"KAFKA_BROKERS":          "localhost:9092",
	"KAFKA_TOPIC":            "bib.accounting.events",
	"KAFKA_COMMAND_TOPIC":    "",
	"KAFKA_CONSUMER_GROUP":   "accountingd",
	"RETRY_MAX_ATTEMPTS":     5,
	"RETRY_INITIAL_INTERVAL": "50ms",
	"RETRY_MAX_INTERVAL":     "2s",
	"MAPPING_CACHE_TTL":      "5m",
	"OUTBOX_POLL_INTERVAL":   "1s",
	"OUTBOX_BATCH_SIZE":      100,
	"JWT_SECRET":             "",
	"JWT_PUBLIC_KEY":         "",
	"JWT_PUBLIC_KEY_FILE":    "",
	"JWT_ISSUER":             "bib-gateway",
	"TLS_CERT_FILE":          "",
	"TLS_KEY_FILE":           "",
	"TLS_CLIENT_CA_FILE":     "",
}

// Load reads configuration from the environment. Variables from a .env file
// in the working directory fill in anything the environment leaves unset.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		ServiceName: v.GetString("SERVICE_NAME"),
		HTTPPort:    v.GetInt("HTTP_PORT"),
		GRPCPort:    v.GetInt("GRPC_PORT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		LogFormat:   v.GetString("LOG_FORMAT"),
		DB: DBConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			Name:        v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			MaxConns:    v.GetInt32("DB_MAX_CONNS"),
			MinConns:    v.GetInt32("DB_MIN_CONNS"),
			LockTimeout: v.GetDuration("DB_LOCK_TIMEOUT"),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(v.GetString("KAFKA_BROKERS")),
			Topic:         v.GetString("KAFKA_TOPIC"),
			CommandTopic:  v.GetString("KAFKA_COMMAND_TOPIC"),
			ConsumerGroup: v.GetString("KAFKA_CONSUMER_GROUP"),
		},
		Retry: RetryConfig{
			MaxAttempts:     v.GetInt("RETRY_MAX_ATTEMPTS"),
			InitialInterval: v.GetDuration("RETRY_INITIAL_INTERVAL"),
			MaxInterval:     v.GetDuration("RETRY_MAX_INTERVAL"),
		},
		Outbox: OutboxConfig{
			PollInterval: v.GetDuration("OUTBOX_POLL_INTERVAL"),
			BatchSize:    v.GetInt("OUTBOX_BATCH_SIZE"),
		},
		Auth: AuthConfig{
			JWTSecret:        v.GetString("JWT_SECRET"),
			JWTPublicKey:     v.GetString("JWT_PUBLIC_KEY"),
			JWTPublicKeyFile: v.GetString("JWT_PUBLIC_KEY_FILE"),
			JWTIssuer:        v.GetString("JWT_ISSUER"),
		},
		TLS: TLSConfig{
			CertFile:     v.GetString("TLS_CERT_FILE"),
			KeyFile:      v.GetString("TLS_KEY_FILE"),
			ClientCAFile: v.GetString("TLS_CLIENT_CA_FILE"),
		},
		MappingCacheTTL: v.GetDuration("MAPPING_CACHE_TTL"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every setting that cannot work.
func (c Config) Validate() error {
	var errs []error
	if c.DB.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.DB.Name == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}
	if c.DB.User == "" {
		errs = append(errs, errors.New("DB_USER is required"))
	}
	if c.DB.Port <= 0 {
		errs = append(errs, fmt.Errorf("DB_PORT must be positive, got %d", c.DB.Port))
	}
	if c.DB.MinConns > c.DB.MaxConns {
		errs = append(errs, fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DB.MinConns, c.DB.MaxConns))
	}
	if c.Retry.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("RETRY_MAX_ATTEMPTS must be positive, got %d", c.Retry.MaxAttempts))
	}
	if c.Retry.InitialInterval <= 0 || c.Retry.MaxInterval <= 0 {
		errs = append(errs, errors.New("RETRY_INITIAL_INTERVAL and RETRY_MAX_INTERVAL must be positive"))
	}
	if c.Outbox.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("OUTBOX_BATCH_SIZE must be positive, got %d", c.Outbox.BatchSize))
	}
	if c.Outbox.PollInterval <= 0 {
		errs = append(errs, errors.New("OUTBOX_POLL_INTERVAL must be positive"))
	}
	if c.MappingCacheTTL < 0 {
		errs = append(errs, errors.New("MAPPING_CACHE_TTL must not be negative"))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
