package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go-hrms/internal/shared/connection"

	"github.com/shopspring/decimal"
)

type Config struct {
	Environment  string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	DB             connection.DBConfig
	ConnectRetries int
	AutoMigrate    bool
	RedisAddr      string
	KafkaBroker    string
	KafkaGroupID   string
	JWTSecret      string

	OutboxPollInterval time.Duration
	PayrollLockTTL     time.Duration
	PayslipDir         string

	DefaultProfessionalTax decimal.Decimal
	DefaultDaysInMonth     int
}

func Load() Config {
	return Config{
		Environment:  getEnv("APP_ENV", "development"),
		Port:         getEnv("PORT", "3000"),
		ReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
		WriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:  getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		DB: connection.DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "hrms"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		ConnectRetries:         getEnvInt("CONNECT_RETRIES", 5),
		AutoMigrate:            getEnvBool("DB_AUTO_MIGRATE", false),
		RedisAddr:              getEnv("REDIS_ADDR", ""),
		KafkaBroker:            getEnv("KAFKA_BROKER", ""),
		KafkaGroupID:           getEnv("KAFKA_GROUP_ID", "go-hrms-payslip"),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		OutboxPollInterval:     getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		PayrollLockTTL:         getEnvDuration("PAYROLL_LOCK_TTL", 5*time.Minute),
		PayslipDir:             getEnv("PAYSLIP_DIR", "storage/payslips"),
		DefaultProfessionalTax: getEnvDecimal("PT_DEFAULT_AMOUNT", decimal.NewFromInt(200)),
		DefaultDaysInMonth:     getEnvInt("DEFAULT_DAYS_IN_MONTH", 30),
	}
}

func (c Config) Validate() error {
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.DefaultProfessionalTax.IsNegative() {
		return fmt.Errorf("PT_DEFAULT_AMOUNT must not be negative")
	}
	if c.DefaultDaysInMonth < 28 || c.DefaultDaysInMonth > 31 {
		return fmt.Errorf("DEFAULT_DAYS_IN_MONTH must be between 28 and 31")
	}
	if c.PayrollLockTTL <= 0 {
		return fmt.Errorf("PAYROLL_LOCK_TTL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return fallback
	}
	return parsed
}
