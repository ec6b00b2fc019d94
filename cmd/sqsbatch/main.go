package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/sqsbatch/internal/cliconfig"
)

const longHelp = `Ship JSON-lines message records to an SQS queue in batches.

Each input line is one record:

  {"id":"order-1","body":"...","attributes":{"source":{"value":"web"}},"group_id":"g1"}

Records are grouped up to --max-batch-count entries or --max-batch-bytes of
estimated payload and sent with SendMessageBatch. Rejected entries are retried
with exponential backoff. With --follow the input file is tailed and a partly
filled batch is flushed after --idle-flush of inactivity.`

var exampleUsage = strings.TrimSpace(`
  sqsbatch --queue-url https://sqs.us-east-1.amazonaws.com/123456789012/orders < orders.jsonl
  sqsbatch --config $HOME/.sqsbatch/config.toml --input /var/spool/orders.jsonl --follow
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "sqsbatch",
		Short:         "Ship JSON-lines message records to an SQS queue in batches",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// SQSBATCH_* override the file; flags override both.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := cliconfig.Logger(cmd.ErrOrStderr(), cfg.LogLevel)
			logger.Info().Interface("config", cfg.Redacted()).Msg("configuration")

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, cmd.InOrStdin(), logger)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.sqsbatch/config.toml)")
	root.Flags().StringVar(&cfg.QueueURL, "queue-url", cfg.QueueURL, "destination queue URL")

	root.Flags().StringVar(&cfg.Region, "region", cfg.Region, "AWS region (defaults to the SDK chain)")
	root.Flags().StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "custom SQS endpoint, e.g. a local emulator")
	root.Flags().StringVar(&cfg.Profile, "profile", cfg.Profile, "shared config profile")
	root.Flags().StringVar(&cfg.AccessKeyID, "access-key-id", cfg.AccessKeyID, "static access key id")
	root.Flags().StringVar(&cfg.SecretAccessKey, "secret-access-key", cfg.SecretAccessKey, "static secret access key")
	root.Flags().StringVar(&cfg.SessionToken, "session-token", cfg.SessionToken, "static session token")
	root.Flags().StringVar(&cfg.RoleARN, "role-arn", cfg.RoleARN, "role to assume for sending")
	root.Flags().StringVar(&cfg.RoleExternalID, "role-external-id", cfg.RoleExternalID, "external id for the assumed role")

	root.Flags().IntVar(&cfg.MaxBatchCount, "max-batch-count", cfg.MaxBatchCount, "entries per batch (1-10)")
	root.Flags().IntVar(&cfg.MaxBatchBytes, "max-batch-bytes", cfg.MaxBatchBytes, "estimated payload bytes per batch")
	root.Flags().IntVar(&cfg.MaxRetries, "max-retries", cfg.MaxRetries, "attempts after the first for rejected entries")
	root.Flags().DurationVar(&cfg.Backoff, "backoff", cfg.Backoff, "base backoff between attempts")
	root.Flags().BoolVar(&cfg.FailOnDrop, "fail-on-drop", cfg.FailOnDrop, "exit with an error when entries are dropped")

	root.Flags().StringVar(&cfg.Input, "input", cfg.Input, `record file, or "-" for stdin`)
	root.Flags().BoolVar(&cfg.Follow, "follow", cfg.Follow, "keep reading the input file as it grows")
	root.Flags().DurationVar(&cfg.IdleFlush, "idle-flush", cfg.IdleFlush, "flush a partial batch after this much input inactivity (follow mode)")

	root.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address, e.g. :9090")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		logger := cliconfig.Logger(os.Stderr, "error")
		logger.Error().Err(err).Msg("sqsbatch")
		os.Exit(1)
	}
}
