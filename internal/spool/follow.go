package spool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/sqsbatch/pkg/log"
)

// FollowConfig configures Follow.
type FollowConfig struct {
	// Path is the spool file. It must exist when Follow starts.
	Path string

	// IdleFlush is how long the file may stay quiet after new records before
	// OnIdle runs. Zero disables idle flushing.
	IdleFlush time.Duration

	// OnIdle is called after IdleFlush of inactivity, typically to flush a
	// partially filled buffer.
	OnIdle func(ctx context.Context) error
}

// Follow reads cfg.Path to its end and then keeps reading as the file grows,
// passing each item to handle. A file recreated at the same path (rotation)
// is reopened from the start. Follow returns when ctx is done or when handle
// or OnIdle fails.
func Follow(ctx context.Context, cfg FollowConfig, handle Handler, logger log.Logger) error {
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so a rotated file is noticed.
	if err := watcher.Add(filepath.Dir(cfg.Path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(cfg.Path), err)
	}

	f, err := os.Open(cfg.Path)
	if err != nil {
		return fmt.Errorf("open spool: %w", err)
	}
	defer func() { f.Close() }()
	src := newTailSource(f)

	idle := time.NewTimer(time.Hour)
	idle.Stop()
	defer idle.Stop()
	var idleC <-chan time.Time

	drain := func() error {
		n, err := Drain(ctx, src, handle, logger)
		if err != nil {
			return err
		}
		if n > 0 && cfg.IdleFlush > 0 && cfg.OnIdle != nil {
			idle.Reset(cfg.IdleFlush)
			idleC = idle.C
		}
		return nil
	}

	if err := drain(); err != nil {
		return err
	}

	target := filepath.Clean(cfg.Path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-idleC:
			idleC = nil
			logger.Debug("spool idle, flushing")
			if err := cfg.OnIdle(ctx); err != nil {
				return err
			}

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			switch {
			case event.Op&fsnotify.Create != 0:
				if err := drain(); err != nil {
					return err
				}
				logger.Info("spool file recreated, reopening", log.String("path", cfg.Path))
				nf, err := os.Open(cfg.Path)
				if err != nil {
					logger.Warn("reopen spool failed", log.Err(err))
					continue
				}
				f.Close()
				f = nf
				src = newTailSource(f)
			case event.Op&fsnotify.Write == 0:
				continue
			}
			if err := drain(); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("spool watcher error", log.Err(err))
		}
	}
}
