package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"jobdispatch/internal/adapters/out/notification"
	"jobdispatch/internal/core/application/dispatch"
	"jobdispatch/internal/core/domain/services"
	"jobdispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	HTTPPort        string        `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`

	DBDriver         string `envconfig:"DB_DRIVER" default:"postgres"`
	DBHost           string `envconfig:"DB_HOST" default:"localhost"`
	DBPort           string `envconfig:"DB_PORT" default:"5432"`
	DBUser           string `envconfig:"DB_USER"`
	DBPassword       string `envconfig:"DB_PASSWORD"`
	DBName           string `envconfig:"DB_NAME"`
	DBSslMode        string `envconfig:"DB_SSLMODE" default:"disable"`
	DBPath           string `envconfig:"DB_PATH" default:"jobdispatch.db"`
	DBMigrationsPath string `envconfig:"DB_MIGRATIONS_PATH" default:"file://migrations"`

	NotificationBaseURL         string        `envconfig:"NOTIFICATION_BASE_URL"`
	NotificationAPIKey          string        `envconfig:"NOTIFICATION_API_KEY"`
	NotificationTimeout         time.Duration `envconfig:"NOTIFICATION_TIMEOUT" default:"10s"`
	NotificationBreakerFailures uint32        `envconfig:"NOTIFICATION_BREAKER_FAILURES" default:"5"`
	NotificationBreakerCooldown time.Duration `envconfig:"NOTIFICATION_BREAKER_COOLDOWN" default:"30s"`

	KafkaBrokers         []string      `envconfig:"KAFKA_BROKERS"`
	KafkaJobChangedTopic string        `envconfig:"KAFKA_JOB_CHANGED_TOPIC" default:"jobs.changed"`
	KafkaPublishTimeout  time.Duration `envconfig:"KAFKA_PUBLISH_TIMEOUT" default:"5s"`

	OfferSweepEnabled   bool   `envconfig:"OFFER_SWEEP_ENABLED" default:"true"`
	OfferSweepSchedule  string `envconfig:"OFFER_SWEEP_SCHEDULE" default:"0 * * * * *"`
	OfferSweepBatchSize int    `envconfig:"OFFER_SWEEP_BATCH_SIZE" default:"100"`

	ExpiryTierTable string `envconfig:"EXPIRY_TIER_TABLE" default:"fixture"`

	RolesAdmin      string   `envconfig:"ROLES_ADMIN" default:"admin"`
	RolesSuperadmin string   `envconfig:"ROLES_SUPERADMIN" default:"superadmin"`
	RolesCustomer   string   `envconfig:"ROLES_CUSTOMER" default:"customer"`
	RolesTranslator string   `envconfig:"ROLES_TRANSLATOR" default:"translator"`
	RolesListAll    []string `envconfig:"ROLES_LIST_ALL"`
}

// LoadConfig reads .env when present, then the process environment, and validates the result.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		// A missing file is fine; the variables may come from the environment.
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("%w: HTTP_PORT is required", ErrInvalidConfig)
	}

	switch c.DBDriver {
	case DBDriverPostgres:
		if c.DBUser == "" || c.DBName == "" {
			return fmt.Errorf("%w: DB_USER and DB_NAME are required for postgres", ErrInvalidConfig)
		}
	case DBDriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("%w: DB_PATH is required for sqlite", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: DB_DRIVER must be %q or %q, got %q",
			ErrInvalidConfig, DBDriverPostgres, DBDriverSQLite, c.DBDriver)
	}

	if len(c.KafkaBrokers) > 0 && c.KafkaJobChangedTopic == "" {
		return fmt.Errorf("%w: KAFKA_JOB_CHANGED_TOPIC is required with KAFKA_BROKERS", ErrInvalidConfig)
	}

	if _, err := services.ExpiryTiersByName(c.ExpiryTierTable); err != nil {
		return fmt.Errorf("%w: EXPIRY_TIER_TABLE: %w", ErrInvalidConfig, err)
	}

	if err := c.DispatchConfig().Validate(); err != nil {
		return fmt.Errorf("%w: roles: %w", ErrInvalidConfig, err)
	}
	return nil
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// DispatchConfig maps the role names. List-all access defaults to the admin and superadmin roles.
func (c Config) DispatchConfig() dispatch.Config {
	listAll := c.RolesListAll
	if len(listAll) == 0 {
		listAll = []string{c.RolesAdmin, c.RolesSuperadmin}
	}
	return dispatch.Config{
		Roles:        []string{c.RolesAdmin, c.RolesSuperadmin, c.RolesCustomer, c.RolesTranslator},
		ListAllRoles: listAll,
	}
}

func (c Config) JobsConfig() jobs.Config {
	return jobs.Config{
		OfferSweepEnabled:   c.OfferSweepEnabled,
		OfferSweepSchedule:  c.OfferSweepSchedule,
		OfferSweepBatchSize: c.OfferSweepBatchSize,
	}
}

func (c Config) NotificationConfig() notification.HTTPGatewayConfig {
	return notification.HTTPGatewayConfig{
		BaseURL:         c.NotificationBaseURL,
		APIKey:          c.NotificationAPIKey,
		Timeout:         c.NotificationTimeout,
		BreakerFailures: c.NotificationBreakerFailures,
		BreakerCooldown: c.NotificationBreakerCooldown,
	}
}

// SlogLevel maps LOG_LEVEL onto a slog level; unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
