package cli

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/platinummonkey/xdepend/pkg/watch"
)

func newWatchCommand() *Command {
	cmd := &Command{
		Name:        "watch",
		Description: "List dependencies and re-list them whenever the files change",
		Flags:       flag.NewFlagSet("watch", flag.ContinueOnError),
		Run:         runWatch,
	}
	var f scanFlags
	f.register(cmd.Flags)
	cmd.Flags.Duration("debounce", 0, "Wait this long after the last change before re-running")

	return cmd
}

func runWatch(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runWatchContext(ctx, args)
}

func runWatchContext(ctx context.Context, args []string) error {
	var debounce time.Duration
	s, err := parseScanArgs(ctx, "watch", args, func(flags *flag.FlagSet) {
		flags.DurationVar(&debounce, "debounce", 0, "Wait this long after the last change before re-running")
	})
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if debounce <= 0 {
		debounce = s.cfg.WatchDebounce
	}

	return watch.Run(ctx, s.engine, s.target, s.mode, watch.Options{
		Debounce: debounce,
		Logger:   s.log,
	}, func(deps []string, err error) {
		if err != nil {
			s.log.WithError(err).Error("extraction failed")
			s.flushMetrics()
			return
		}
		if err := s.report(ctx, deps); err != nil {
			s.log.WithError(err).Error("export failed")
		}
	})
}
