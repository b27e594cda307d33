package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	MpesaEnvSandbox    = "sandbox"
	MpesaEnvProduction = "production"

	sandboxBaseURL    = "https://sandbox.safaricom.co.ke"
	productionBaseURL = "https://api.safaricom.co.ke"
)

type PaymentConfig struct {
	Env          string `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	GRPCServer   `yaml:"grpc_server"`
	PaymentDB    `yaml:"payment_db"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka-service"`
	RedisService `yaml:"redis-service"`
	Mpesa        `yaml:"mpesa"`
}

type HTTPServer struct {
	Host         string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"60s"`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"9090"`
}

type PaymentDB struct {
	Dsn            string `yaml:"dsn" env:"PAYMENT_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path" env:"PAYMENT_DB_MIGRATIONS" env-default:"migrations"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	LogOutput string `yaml:"log_output" env:"LOG_OUTPUT" env-default:"stdout"`
}

type KafkaService struct {
	Enabled bool     `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env:"KAFKA_PAYMENT_TOPIC" env-default:"payment-events"`
}

type RedisService struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// Mpesa holds the Daraja credentials and the callback settings.
type Mpesa struct {
	Enabled          bool   `yaml:"enabled" env:"MPESA_ENABLED" env-default:"false"`
	Environment      string `yaml:"environment" env:"MPESA_ENV" env-default:"sandbox"`
	ConsumerKey      string `yaml:"consumer_key" env:"MPESA_CONSUMER_KEY"`
	ConsumerSecret   string `yaml:"consumer_secret" env:"MPESA_CONSUMER_SECRET"`
	Shortcode        string `yaml:"shortcode" env:"MPESA_SHORTCODE"`
	Passkey          string `yaml:"passkey" env:"MPESA_PASSKEY"`
	CallbackURL      string `yaml:"callback_url" env:"MPESA_CALLBACK_URL"`
	CallbackSecret   string `yaml:"callback_secret" env:"MPESA_CALLBACK_SECRET"`
	AccountReference string `yaml:"account_reference" env:"MPESA_ACCOUNT_REFERENCE" env-default:"Oriflame Coast"`
	TransactionDesc  string `yaml:"transaction_desc" env:"MPESA_TRANSACTION_DESC" env-default:"Order payment"`
}

func (m Mpesa) BaseURL() string {
	if m.Environment == MpesaEnvProduction {
		return productionBaseURL
	}
	return sandboxBaseURL
}

// IsConfigured reports whether an STK push can be attempted at all.
func (m Mpesa) IsConfigured() bool {
	if !m.Enabled {
		return false
	}
	return m.ConsumerKey != "" &&
		m.ConsumerSecret != "" &&
		m.Shortcode != "" &&
		m.Passkey != "" &&
		m.CallbackURL != ""
}

// UnauthenticatedCallbacks is true when production callbacks are accepted without a shared secret.
func (m Mpesa) UnauthenticatedCallbacks() bool {
	return m.Environment == MpesaEnvProduction && m.CallbackSecret == ""
}

// Load reads the YAML file named by PAYMENT_CONFIG_PATH when present,
// otherwise the process environment only.
func Load() (*PaymentConfig, error) {
	var cfg PaymentConfig

	configPath := os.Getenv("PAYMENT_CONFIG_PATH")
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("failed to find config file: %w", err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env config: %w", err)
	}
	return &cfg, nil
}
