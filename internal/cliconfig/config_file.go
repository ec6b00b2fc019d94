package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	QueueURL        string `toml:"queue_url"`
	Region          string `toml:"region"`
	Endpoint        string `toml:"endpoint"`
	Profile         string `toml:"profile"`
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
	SessionToken    string `toml:"session_token"`
	RoleARN         string `toml:"role_arn"`
	RoleExternalID  string `toml:"role_external_id"`
	MaxBatchCount   int    `toml:"max_batch_count"`
	MaxBatchBytes   int    `toml:"max_batch_bytes"`
	MaxRetries      *int   `toml:"max_retries"`
	Backoff         string `toml:"backoff"`
	FailOnDrop      *bool  `toml:"fail_on_drop"`
	Input           string `toml:"input"`
	Follow          *bool  `toml:"follow"`
	IdleFlush       string `toml:"idle_flush"`
	MetricsAddr     string `toml:"metrics_addr"`
	LogLevel        string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.sqsbatch/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".sqsbatch", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("queue-url", fc.QueueURL, &cfg.QueueURL)
	s.setString("region", fc.Region, &cfg.Region)
	s.setString("endpoint", fc.Endpoint, &cfg.Endpoint)
	s.setString("profile", fc.Profile, &cfg.Profile)
	s.setString("access-key-id", fc.AccessKeyID, &cfg.AccessKeyID)
	s.setString("secret-access-key", fc.SecretAccessKey, &cfg.SecretAccessKey)
	s.setString("session-token", fc.SessionToken, &cfg.SessionToken)
	s.setString("role-arn", fc.RoleARN, &cfg.RoleARN)
	s.setString("role-external-id", fc.RoleExternalID, &cfg.RoleExternalID)
	s.setString("input", fc.Input, &cfg.Input)
	s.setString("metrics-addr", fc.MetricsAddr, &cfg.MetricsAddr)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("backoff", fc.Backoff, &cfg.Backoff); err != nil {
		return err
	}
	if err := s.setDuration("idle-flush", fc.IdleFlush, &cfg.IdleFlush); err != nil {
		return err
	}

	s.setInt("max-batch-count", fc.MaxBatchCount, &cfg.MaxBatchCount)
	s.setInt("max-batch-bytes", fc.MaxBatchBytes, &cfg.MaxBatchBytes)
	s.setIntPtr("max-retries", fc.MaxRetries, &cfg.MaxRetries)

	s.setBool("fail-on-drop", fc.FailOnDrop, &cfg.FailOnDrop)
	s.setBool("follow", fc.Follow, &cfg.Follow)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
