package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/sqsbatch/internal/adapters/metrics"
	"github.com/bft-labs/sqsbatch/internal/cliconfig"
	"github.com/bft-labs/sqsbatch/internal/spool"
	"github.com/bft-labs/sqsbatch/pkg/log"
	"github.com/bft-labs/sqsbatch/pkg/sqsbatch"
)

// run ships records from stdin or cfg.Input until the input ends or, in
// follow mode, until ctx is cancelled. The metrics server, if configured,
// runs alongside and stops with it.
func run(ctx context.Context, cfg cliconfig.Config, stdin io.Reader, zl zerolog.Logger, extra ...sqsbatch.Option) error {
	logger := log.NewZerologAdapterWithLogger(zl)
	registry := metrics.NewRegistry()

	opts := []sqsbatch.Option{
		sqsbatch.WithLogger(logger),
		sqsbatch.WithClientConfig(cfg.Client()),
		sqsbatch.WithObserver(registry.Observer(cfg.QueueURL)),
	}
	opts = append(opts, extra...)

	g, gctx := errgroup.WithContext(ctx)
	shipCtx, done := context.WithCancel(gctx)

	if cfg.MetricsAddr != "" {
		srv := metrics.NewServer(cfg.MetricsAddr, registry, logger)
		g.Go(func() error { return srv.Run(shipCtx) })
	}

	g.Go(func() error {
		defer done()
		return ship(shipCtx, cfg, stdin, logger, opts)
	})

	return g.Wait()
}

func ship(ctx context.Context, cfg cliconfig.Config, stdin io.Reader, logger log.Logger, opts []sqsbatch.Option) error {
	// A shutdown signal stops reading, but flushes already started and the
	// closing flush run to completion.
	flushCtx := context.WithoutCancel(ctx)

	var acc sqsbatch.Accumulator
	opts = append(opts, sqsbatch.WithObserver(&acc))

	err := sqsbatch.Run(flushCtx, cfg.Batch(), func(b *sqsbatch.Buffer) error {
		add := func(_ context.Context, it sqsbatch.Item) error {
			return b.Add(flushCtx, it)
		}

		if cfg.Follow {
			err := spool.Follow(ctx, spool.FollowConfig{
				Path:      cfg.Input,
				IdleFlush: cfg.IdleFlush,
				OnIdle: func(context.Context) error {
					return b.Flush(flushCtx)
				},
			}, add, logger)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		in := stdin
		if cfg.Input != cliconfig.StdinInput {
			f, err := os.Open(cfg.Input)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer f.Close()
			in = f
		}

		n, err := spool.Drain(ctx, spool.NewSource(in), add, logger)
		logger.Info("input read", log.Int("records", n))
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}, opts...)

	logger.Info("shipping finished",
		log.Int("delivered", len(acc.Delivered())),
		log.Int("dropped", len(acc.Dropped())),
	)
	return err
}
