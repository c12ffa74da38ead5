package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/draftea/checkout-system/shared/logging"
)

const (
	CheckpointBackendPostgres = "postgres"
	CheckpointBackendRedis    = "redis"
)

type Config struct {
	ServiceName string         `mapstructure:"service_name"`
	Env         string         `mapstructure:"env"`
	Port        string         `mapstructure:"port"`
	Logging     logging.Config `mapstructure:"logging"`
	Database    Database       `mapstructure:"database"`
	Redis       Redis          `mapstructure:"redis"`
	Checkpoint  Checkpoint     `mapstructure:"checkpoint"`
	AWS         AWS            `mapstructure:"aws"`
	Gateway     Gateway        `mapstructure:"gateway"`
	Checkout    Checkout       `mapstructure:"checkout"`
	Telemetry   Telemetry      `mapstructure:"telemetry"`
}

type Database struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
	URL      string `mapstructure:"url"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Checkpoint selects where checkout sessions are persisted
type Checkpoint struct {
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type AWS struct {
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Region          string `mapstructure:"region"`
	EndpointSNS     string `mapstructure:"endpoint_sns"`
	EndpointSQS     string `mapstructure:"endpoint_sqs"`
	SNSTopicArn     string `mapstructure:"sns_topic_arn"`
	SQSQueueURL     string `mapstructure:"sqs_queue_url"`
	SQSWorkers      int32  `mapstructure:"sqs_workers"`
}

// Gateway is the order and payment backend
type Gateway struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	Timeout             time.Duration `mapstructure:"timeout"`
	BreakerFailures     uint32        `mapstructure:"breaker_failures"`
	BreakerOpenDuration time.Duration `mapstructure:"breaker_open_duration"`
}

// Checkout holds the orchestration timings
type Checkout struct {
	PollInterval          time.Duration `mapstructure:"poll_interval"`
	AbandonAfter          time.Duration `mapstructure:"abandon_after"`
	CreditObserveInterval time.Duration `mapstructure:"credit_observe_interval"`
	NotifyTimeout         time.Duration `mapstructure:"notify_timeout"`
}

type Telemetry struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

func ReadConfig() (*Config, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("unable to get current file")
	}

	return readConfig(viper.New(), filepath.Dir(filename), getConfigName())
}

func readConfig(v *viper.Viper, configDir, name string) (*Config, error) {
	v.SetConfigName(name)
	v.SetConfigType("json")
	v.AddConfigPath(configDir)

	// Allow environment variables to override config
	v.SetEnvPrefix("CHECKOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaultsFromEnv(v)

	err := v.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	err = v.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func getConfigName() string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		return "local"
	}
	return env
}

// setDefaultsFromEnv sets a default for every key so AutomaticEnv can override
// keys the config file leaves out
func setDefaultsFromEnv(v *viper.Viper) {
	// Service defaults
	v.SetDefault("service_name", "checkout-service")
	v.SetDefault("env", getEnv("ENV", "local"))
	v.SetDefault("port", getEnv("PORT", "8080"))

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5433)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "checkout")
	v.SetDefault("database.ssl_mode", "disable")

	// Override with DATABASE_URL if provided
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
	}

	v.SetDefault("redis.addr", getEnv("REDIS_ADDR", "localhost:6379"))
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("checkpoint.backend", CheckpointBackendPostgres)
	v.SetDefault("checkpoint.ttl", "24h")

	// AWS defaults
	v.SetDefault("aws.access_key_id", getEnv("AWS_ACCESS_KEY_ID", "test"))
	v.SetDefault("aws.secret_access_key", getEnv("AWS_SECRET_ACCESS_KEY", "test"))
	v.SetDefault("aws.region", getEnv("AWS_DEFAULT_REGION", "us-east-1"))
	v.SetDefault("aws.endpoint_sns", getEnv("AWS_ENDPOINT_URL_SNS", "http://localhost:4566"))
	v.SetDefault("aws.endpoint_sqs", getEnv("AWS_ENDPOINT_URL_SQS", "http://localhost:4566"))
	v.SetDefault("aws.sns_topic_arn", getEnv("SNS_TOPIC_ARN", "arn:aws:sns:us-east-1:000000000000:checkout-events"))
	v.SetDefault("aws.sqs_queue_url", getEnv("SQS_QUEUE_URL", "http://localhost:4566/000000000000/checkout-commands"))
	v.SetDefault("aws.sqs_workers", 4)

	v.SetDefault("gateway.base_url", getEnv("GATEWAY_BASE_URL", "http://localhost:9090"))
	v.SetDefault("gateway.api_key", getEnv("GATEWAY_API_KEY", ""))
	v.SetDefault("gateway.timeout", "10s")
	v.SetDefault("gateway.breaker_failures", 5)
	v.SetDefault("gateway.breaker_open_duration", "30s")

	v.SetDefault("checkout.poll_interval", "3s")
	v.SetDefault("checkout.abandon_after", "85s")
	v.SetDefault("checkout.credit_observe_interval", "8s")
	v.SetDefault("checkout.notify_timeout", "5s")

	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.otlp_endpoint", getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Validate rejects settings the service cannot start with
func (c *Config) Validate() error {
	switch c.Checkpoint.Backend {
	case CheckpointBackendPostgres, CheckpointBackendRedis:
	default:
		return fmt.Errorf("unknown checkpoint backend %q", c.Checkpoint.Backend)
	}
	if c.Gateway.BaseURL == "" {
		return fmt.Errorf("gateway base url is required")
	}
	if c.Checkout.PollInterval <= 0 || c.Checkout.AbandonAfter <= 0 {
		return fmt.Errorf("checkout timings must be positive")
	}
	return nil
}

// GetDatabaseURL constructs database URL from config
func (c *Config) GetDatabaseURL() string {
	// Check if full URL is provided via DATABASE_URL
	if c.Database.URL != "" {
		return c.Database.URL
	}

	// Construct URL from individual components
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}
