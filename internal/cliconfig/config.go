package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/sqsbatch/internal/adapters/sqs"
	"github.com/bft-labs/sqsbatch/internal/domain"
)

// StdinInput selects standard input as the record source.
const StdinInput = "-"

// Config holds CLI configuration for sqsbatch.
type Config struct {
	QueueURL string

	Region          string
	Endpoint        string
	Profile         string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	RoleARN         string
	RoleExternalID  string

	MaxBatchCount int
	MaxBatchBytes int
	MaxRetries    int
	Backoff       time.Duration
	FailOnDrop    bool

	Input     string
	Follow    bool
	IdleFlush time.Duration

	MetricsAddr string
	LogLevel    string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	b := domain.DefaultConfig()
	return Config{
		MaxBatchCount: b.MaxBatchCount,
		MaxBatchBytes: b.MaxBatchSizeBytes,
		MaxRetries:    b.MaxRetries,
		Backoff:       b.BackoffFactor,
		Input:         StdinInput,
		IdleFlush:     time.Second,
		LogLevel:      "info",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.QueueURL == "" {
		return fmt.Errorf("queue-url is required")
	}
	if c.Input == "" {
		c.Input = StdinInput
	}
	if c.Follow && c.Input == StdinInput {
		return fmt.Errorf("follow requires a file input")
	}
	if c.IdleFlush < 0 {
		return fmt.Errorf("idle flush must not be negative")
	}
	if (c.AccessKeyID == "") != (c.SecretAccessKey == "") {
		return fmt.Errorf("access-key-id and secret-access-key must be set together")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return c.Batch().Validate()
}

// Batch returns the buffer configuration.
func (c Config) Batch() domain.Config {
	return domain.Config{
		QueueURL:          c.QueueURL,
		MaxBatchCount:     c.MaxBatchCount,
		MaxBatchSizeBytes: c.MaxBatchBytes,
		MaxRetries:        c.MaxRetries,
		BackoffFactor:     c.Backoff,
		FailOnDrop:        c.FailOnDrop,
	}
}

// Client returns the AWS client configuration.
func (c Config) Client() sqs.ClientConfig {
	return sqs.ClientConfig{
		Region:          c.Region,
		Endpoint:        c.Endpoint,
		Profile:         c.Profile,
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		SessionToken:    c.SessionToken,
		RoleARN:         c.RoleARN,
		RoleExternalID:  c.RoleExternalID,
	}
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.SecretAccessKey != "" {
		c.SecretAccessKey = "*****"
	}
	if c.SessionToken != "" {
		c.SessionToken = "*****"
	}
	return c
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setIntPtr sets an int value from a pointer, so zero can be configured.
func (s *configSetter) setIntPtr(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination.
// Negative values are ignored; zero is applied when allowZero is set.
func (s *configSetter) setIntFromString(flag, value string, allowZero bool, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i < 0 || (i == 0 && !allowZero) {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
