package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		HouseholdID:       "hh-1",
		DatabaseURL:       "postgres://localhost:5432/homebalance",
		WarningThreshold:  55,
		CriticalThreshold: 60,
		TrendDelta:        5,
		GmailUserID:       "user@example.com",
		GmailSender:       "sender@example.com",
		ReportRecipients:  []string{"eve@example.com"},
		RecurringExclusions: []RecurringExclusion{
			{
				UserID:       "b",
				RRule:        "FREQ=WEEKLY;BYDAY=MO",
				DurationDays: 7,
				Reason:       "custody",
			},
		},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{
		HouseholdID: "hh-1",
		DatabaseURL: "postgres://localhost:5432/homebalance",
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cfg := &Config{
		HouseholdID: "hh-1",
		// Missing DatabaseURL
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_CriticalBelowWarning(t *testing.T) {
	cfg := &Config{
		HouseholdID:       "hh-1",
		DatabaseURL:       "postgres://localhost:5432/homebalance",
		WarningThreshold:  60,
		CriticalThreshold: 55,
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "criticalThreshold")
}

func TestValidate_ThresholdOutOfRange(t *testing.T) {
	cfg := &Config{
		HouseholdID:      "hh-1",
		DatabaseURL:      "postgres://localhost:5432/homebalance",
		WarningThreshold: 120,
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidRecipientEmail(t *testing.T) {
	cfg := &Config{
		HouseholdID:      "hh-1",
		DatabaseURL:      "postgres://localhost:5432/homebalance",
		ReportRecipients: []string{"not-an-email"},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := &Config{
		HouseholdID: "hh-1",
		DatabaseURL: "postgres://localhost:5432/homebalance",
		RecurringExclusions: []RecurringExclusion{
			{
				UserID:       "b",
				RRule:        "INVALID_RRULE_SYNTAX",
				DurationDays: 2,
			},
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestValidate_RecurringExclusionMissingDuration(t *testing.T) {
	cfg := &Config{
		HouseholdID: "hh-1",
		DatabaseURL: "postgres://localhost:5432/homebalance",
		RecurringExclusions: []RecurringExclusion{
			{
				UserID: "b",
				RRule:  "FREQ=WEEKLY;BYDAY=MO",
			},
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validConfig := `
householdID: "hh-1"
databaseURL: "postgres://localhost:5432/homebalance"
warningThreshold: 50
criticalThreshold: 65
trendDelta: 4
gmailUserID: "user@example.com"
gmailSender: "sender@example.com"
reportRecipients:
  - "eve@example.com"
  - "sam@example.com"
recurringExclusions:
  - userId: "b"
    rrule: "FREQ=WEEKLY;BYDAY=MO"
    durationDays: 2
    reason: "custody"
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "hh-1", cfg.HouseholdID)
	assert.Equal(t, "postgres://localhost:5432/homebalance", cfg.DatabaseURL)
	assert.Equal(t, 50.0, cfg.WarningThreshold)
	assert.Equal(t, 65.0, cfg.CriticalThreshold)
	assert.Equal(t, 4.0, cfg.TrendDelta)
	assert.Equal(t, "user@example.com", cfg.GmailUserID)
	assert.Len(t, cfg.ReportRecipients, 2)

	require.Len(t, cfg.RecurringExclusions, 1)
	exclusion := cfg.RecurringExclusions[0]
	assert.Equal(t, "b", exclusion.UserID)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=MO", exclusion.RRule)
	assert.Equal(t, 2, exclusion.DurationDays)
	assert.Equal(t, "custody", exclusion.Reason)
}

func TestLoadFromPath_InvalidYaml(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	err := os.WriteFile(configPath, []byte("householdID: [unclosed"), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
