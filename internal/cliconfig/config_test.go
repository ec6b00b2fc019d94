package cliconfig

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bft-labs/sqsbatch/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxBatchCount != domain.MaxBatchCount {
		t.Errorf("MaxBatchCount = %v, want %v", cfg.MaxBatchCount, domain.MaxBatchCount)
	}
	if cfg.MaxBatchBytes != domain.MaxBatchBytes {
		t.Errorf("MaxBatchBytes = %v, want %v", cfg.MaxBatchBytes, domain.MaxBatchBytes)
	}
	if cfg.MaxRetries != domain.DefaultMaxRetries {
		t.Errorf("MaxRetries = %v, want %v", cfg.MaxRetries, domain.DefaultMaxRetries)
	}
	if cfg.Backoff != 500*time.Millisecond {
		t.Errorf("Backoff = %v, want 500ms", cfg.Backoff)
	}
	if cfg.Input != StdinInput {
		t.Errorf("Input = %q, want stdin", cfg.Input)
	}
}

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.QueueURL = "https://sqs.us-east-1.amazonaws.com/123456789012/orders"
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid defaults", mutate: func(c *Config) {}},
		{name: "missing queue url", mutate: func(c *Config) { c.QueueURL = "" }, wantErr: true},
		{name: "follow stdin", mutate: func(c *Config) { c.Follow = true }, wantErr: true},
		{name: "follow file", mutate: func(c *Config) { c.Follow = true; c.Input = "/var/spool/out.jsonl" }},
		{name: "empty input means stdin", mutate: func(c *Config) { c.Input = "" }},
		{name: "negative idle flush", mutate: func(c *Config) { c.IdleFlush = -time.Second }, wantErr: true},
		{name: "access key without secret", mutate: func(c *Config) { c.AccessKeyID = "AKID" }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "batch count too large", mutate: func(c *Config) { c.MaxBatchCount = 11 }, wantErr: true},
		{name: "batch bytes zero", mutate: func(c *Config) { c.MaxBatchBytes = 0 }, wantErr: true},
		{name: "zero retries", mutate: func(c *Config) { c.MaxRetries = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateBatchBoundsAreConfigErrors(t *testing.T) {
	cfg := validConfig()
	cfg.MaxBatchCount = 0
	if err := cfg.Validate(); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
	}
}

func TestConfig_BatchAndClient(t *testing.T) {
	cfg := validConfig()
	cfg.MaxBatchCount = 5
	cfg.MaxRetries = 1
	cfg.FailOnDrop = true
	cfg.Region = "eu-west-1"
	cfg.RoleARN = "arn:aws:iam::1:role/x"

	b := cfg.Batch()
	if b.QueueURL != cfg.QueueURL || b.MaxBatchCount != 5 || b.MaxRetries != 1 || !b.FailOnDrop {
		t.Errorf("Batch() = %+v", b)
	}
	c := cfg.Client()
	if c.Region != "eu-west-1" || c.RoleARN != cfg.RoleARN {
		t.Errorf("Client() = %+v", c)
	}
}

func TestConfig_Redacted(t *testing.T) {
	cfg := validConfig()
	cfg.AccessKeyID = "AKID"
	cfg.SecretAccessKey = "secret"
	cfg.SessionToken = "token"

	r := cfg.Redacted()
	if r.SecretAccessKey != "*****" || r.SessionToken != "*****" {
		t.Errorf("Redacted() leaked credentials: %+v", r)
	}
	if r.AccessKeyID != "AKID" {
		t.Errorf("AccessKeyID = %q, want unchanged", r.AccessKeyID)
	}
	if cfg.SecretAccessKey != "secret" {
		t.Error("Redacted() modified the receiver")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := Logger(&buf, "warn")

	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %q", out)
	}
}
