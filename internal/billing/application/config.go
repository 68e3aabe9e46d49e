package application

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// SweepConfig defines overdue sweep behavior.
type SweepConfig struct {
	// GraceDays keeps a título open for this many days past its due date
	// before the sweep marks it overdue.
	GraceDays  int           `yaml:"grace_days"`
	Interval   time.Duration `yaml:"interval"`
	WebhookURL string        `yaml:"webhook_url"`
}

// LoadSweepConfig loads sweep config from yaml or env.
func LoadSweepConfig() (SweepConfig, error) {
	cfg := SweepConfig{
		GraceDays:  getenvIntDefault("BILLING_SWEEP_GRACE_DAYS", 0),
		Interval:   getenvDurationDefault("BILLING_SWEEP_INTERVAL", time.Hour),
		WebhookURL: os.Getenv("BILLING_SWEEP_WEBHOOK_URL"),
	}

	if path := os.Getenv("BILLING_SWEEP_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.GraceDays < 0 {
		cfg.GraceDays = 0
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return cfg, nil
}

func getenvIntDefault(key string, fallback int) int {
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

func getenvDurationDefault(key string, fallback time.Duration) time.Duration {
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
