package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// RecurringExclusion declares a repeating unavailability rule for a
// member (alternating custody, a weekly evening commitment). Each rrule
// occurrence opens an exclusion of DurationDays days.
type RecurringExclusion struct {
	UserID       string `yaml:"userId" validate:"required"`
	RRule        string `yaml:"rrule" validate:"required"`
	DurationDays int    `yaml:"durationDays" validate:"required,min=1"`
	Reason       string `yaml:"reason,omitempty"`
}

// Config represents the application configuration
type Config struct {
	HouseholdID         string               `yaml:"householdID" validate:"required"`
	DatabaseURL         string               `yaml:"databaseURL" validate:"required"`
	WarningThreshold    float64              `yaml:"warningThreshold,omitempty" validate:"omitempty,gt=0,lte=100"`
	CriticalThreshold   float64              `yaml:"criticalThreshold,omitempty" validate:"omitempty,gt=0,lte=100"`
	TrendDelta          float64              `yaml:"trendDelta,omitempty" validate:"omitempty,gt=0"`
	GmailUserID         string               `yaml:"gmailUserID,omitempty"`
	GmailSender         string               `yaml:"gmailSender,omitempty" validate:"omitempty,email"`
	ReportRecipients    []string             `yaml:"reportRecipients,omitempty" validate:"dive,email"`
	RecurringExclusions []RecurringExclusion `yaml:"recurringExclusions,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from homebalance_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for a specific environment
// For example, env="test" looks for "homebalance_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := locateFile("homebalance_config", "yaml", env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.WarningThreshold > 0 && cfg.CriticalThreshold > 0 && cfg.CriticalThreshold < cfg.WarningThreshold {
		return fmt.Errorf("config validation failed: criticalThreshold must not be below warningThreshold")
	}

	for i, exclusion := range cfg.RecurringExclusions {
		if _, err := rrule.StrToRRule(exclusion.RRule); err != nil {
			return fmt.Errorf("invalid rrule in recurringExclusions[%d]: %w", i, err)
		}
	}

	return nil
}

// locateFile searches for <base>.<ext> (or <base>.<env>.<ext> when env
// is set) in the current directory, then the user's home directory
func locateFile(base, ext, env string) (string, error) {
	fileName := base + "." + ext
	if env != "" {
		fileName = base + "." + env + "." + ext
	}

	if _, err := os.Stat(fileName); err == nil {
		return fileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, fileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", fileName)
}
