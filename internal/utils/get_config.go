package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const DefaultConfigPath = "config.yaml"

type Config struct {
	// Server configuration
	AppPort      string `yaml:"APP_PORT"`
	RateLimitMax int    `yaml:"RATE_LIMIT_MAX"`
	LogLevel     string `yaml:"LOG_LEVEL"`
	LogFile      string `yaml:"LOG_FILE"`

	// Row store configuration
	StoreDriver  string `yaml:"STORE_DRIVER"`
	WorkbookID   string `yaml:"WORKBOOK_ID"`
	ListPageSize int    `yaml:"LIST_PAGE_SIZE"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// BudgetQuest integration
	BudgetQuestAPIURL  string `yaml:"BUDGETQUEST_API_URL"`
	SyncTimeoutSeconds int    `yaml:"SYNC_TIMEOUT_SECONDS"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`
	NotifyEmail      string `yaml:"NOTIFY_EMAIL"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

func defaultConfig() Config {
	return Config{
		AppPort:            "8080",
		RateLimitMax:       10,
		LogLevel:           "info",
		StoreDriver:        "postgres",
		ListPageSize:       20,
		DBPort:             "5432",
		SyncTimeoutSeconds: 10,
	}
}

// LoadConfig reads the YAML file at path, then .env, then the process
// environment. Later sources win. A missing YAML or .env file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := defaultConfig()

	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(file, &config); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Environment keys are the yaml keys.
	if err := env.ParseWithOptions(&config, env.Options{TagName: "yaml"}); err != nil {
		return nil, fmt.Errorf("apply environment overrides: %w", err)
	}
	return &config, nil
}

func (c *Config) SyncTimeout() time.Duration {
	return time.Duration(c.SyncTimeoutSeconds) * time.Second
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func (c *Config) HasBudgetQuest() bool { return c.BudgetQuestAPIURL != "" }

func (c *Config) HasMailer() bool { return c.SMTPHost != "" && c.NotifyEmail != "" }

func (c *Config) HasReceiptStorage() bool { return c.AWSS3Bucket != "" }
