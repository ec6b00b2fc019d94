package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (SQSBATCH_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("queue-url", os.Getenv("SQSBATCH_QUEUE_URL"), &cfg.QueueURL)
	s.setString("region", os.Getenv("SQSBATCH_REGION"), &cfg.Region)
	s.setString("endpoint", os.Getenv("SQSBATCH_ENDPOINT"), &cfg.Endpoint)
	s.setString("profile", os.Getenv("SQSBATCH_PROFILE"), &cfg.Profile)
	s.setString("access-key-id", os.Getenv("SQSBATCH_ACCESS_KEY_ID"), &cfg.AccessKeyID)
	s.setString("secret-access-key", os.Getenv("SQSBATCH_SECRET_ACCESS_KEY"), &cfg.SecretAccessKey)
	s.setString("session-token", os.Getenv("SQSBATCH_SESSION_TOKEN"), &cfg.SessionToken)
	s.setString("role-arn", os.Getenv("SQSBATCH_ROLE_ARN"), &cfg.RoleARN)
	s.setString("role-external-id", os.Getenv("SQSBATCH_ROLE_EXTERNAL_ID"), &cfg.RoleExternalID)
	s.setString("input", os.Getenv("SQSBATCH_INPUT"), &cfg.Input)
	s.setString("metrics-addr", os.Getenv("SQSBATCH_METRICS_ADDR"), &cfg.MetricsAddr)
	s.setString("log-level", os.Getenv("SQSBATCH_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("backoff", os.Getenv("SQSBATCH_BACKOFF"), &cfg.Backoff); err != nil {
		return err
	}
	if err := s.setDuration("idle-flush", os.Getenv("SQSBATCH_IDLE_FLUSH"), &cfg.IdleFlush); err != nil {
		return err
	}

	if err := s.setIntFromString("max-batch-count", os.Getenv("SQSBATCH_MAX_BATCH_COUNT"), false, &cfg.MaxBatchCount); err != nil {
		return err
	}
	if err := s.setIntFromString("max-batch-bytes", os.Getenv("SQSBATCH_MAX_BATCH_BYTES"), false, &cfg.MaxBatchBytes); err != nil {
		return err
	}
	if err := s.setIntFromString("max-retries", os.Getenv("SQSBATCH_MAX_RETRIES"), true, &cfg.MaxRetries); err != nil {
		return err
	}

	s.setBoolFromString("fail-on-drop", os.Getenv("SQSBATCH_FAIL_ON_DROP"), &cfg.FailOnDrop)
	s.setBoolFromString("follow", os.Getenv("SQSBATCH_FOLLOW"), &cfg.Follow)

	return nil
}
