package cli

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/sirupsen/logrus"
)

func newListCommand() *Command {
	cmd := &Command{
		Name:        "list",
		Description: "List the references or packages of a solution or project",
		Flags:       flag.NewFlagSet("list", flag.ContinueOnError),
		Run:         runList,
	}
	var f scanFlags
	f.register(cmd.Flags)

	return cmd
}

func runList(args []string) error {
	return runListContext(context.Background(), args)
}

func runListContext(ctx context.Context, args []string) error {
	s, err := parseScanArgs(ctx, "list", args, nil)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	start := time.Now()
	deps, err := s.engine.Resolve(ctx, s.target, s.mode)
	if err != nil {
		s.flushMetrics()
		return err
	}

	s.log.WithFields(logrus.Fields{
		"target":   s.target.Path,
		"kind":     s.target.Kind.String(),
		"mode":     s.mode.String(),
		"entries":  len(deps),
		"duration": time.Since(start).String(),
	}).Debug("scan complete")

	return s.report(ctx, deps)
}
