package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/xdepend/pkg/config"
	"github.com/platinummonkey/xdepend/pkg/dependencies"
	"github.com/platinummonkey/xdepend/pkg/errkind"
	"github.com/platinummonkey/xdepend/pkg/export"
	"github.com/platinummonkey/xdepend/pkg/observability"
)

// scanFlags are the flags shared by list and watch
type scanFlags struct {
	references   bool
	packages     bool
	exportFormat string
	exportPath   string
	parallel     int
	metricsFile  string
	configPath   string
	logLevel     string
}

func (f *scanFlags) register(flags *flag.FlagSet) {
	flags.BoolVar(&f.references, "references", false, "List references (assembly references for a project; project and package references for a solution)")
	flags.BoolVar(&f.packages, "packages", false, "List package references")
	flags.StringVar(&f.exportFormat, "export-format", "", "Export format: json, csv or txt (default json)")
	flags.StringVar(&f.exportPath, "export-path", "", "Write the export to a file or s3://bucket/key instead of stdout")
	flags.IntVar(&f.parallel, "parallel", 0, "Parse up to N member projects concurrently")
	flags.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after each run")
	flags.StringVar(&f.configPath, "config", "", "Path to a config file (default: .xdepend.yaml in the working directory)")
	flags.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

func (f *scanFlags) mode() (dependencies.Mode, error) {
	switch {
	case f.references && f.packages:
		return 0, errkind.NewUsage("-references and -packages are mutually exclusive")
	case f.references:
		return dependencies.ModeReferences, nil
	case f.packages:
		return dependencies.ModePackages, nil
	default:
		return 0, errkind.NewUsage("one of -references or -packages must be specified")
	}
}

// scan is everything a list or watch run needs, resolved from flags and config
type scan struct {
	cfg      *config.Config
	target   dependencies.Target
	mode     dependencies.Mode
	format   export.Format
	dest     string
	log      *logrus.Entry
	metrics  *observability.Metrics
	engine   *dependencies.Engine
	exporter *export.Exporter
}

// parseScanArgs parses "<path> [flags]" or "[flags] <path>" into a scan.
// extra registers command specific flags.
func parseScanArgs(ctx context.Context, name string, args []string, extra func(*flag.FlagSet)) (*scan, error) {
	var f scanFlags
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	f.register(flags)
	if extra != nil {
		extra(flags)
	}

	// Positionals and flags may be interleaved; flag.Parse stops at the first
	// positional, so parse again after each one.
	positionals, rest := splitLeadingPositionals(args)
	for len(rest) > 0 {
		if err := flags.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				flags.SetOutput(os.Stdout)
				fmt.Printf("Usage: xdepend %s <path> (-references | -packages) [flags]\n\n", name)
				flags.PrintDefaults()
				return nil, err
			}
			return nil, errkind.New(errkind.Usage, name, "", err)
		}

		var lead []string
		lead, rest = splitLeadingPositionals(flags.Args())
		positionals = append(positionals, lead...)
	}

	if len(positionals) == 0 {
		return nil, errkind.NewUsage("path must be specified")
	}
	if len(positionals) > 1 {
		return nil, errkind.NewUsage(fmt.Sprintf("expected a single path, got %d: %s", len(positionals), strings.Join(positionals, " ")))
	}
	path := positionals[0]

	mode, err := f.mode()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, errkind.New(errkind.Usage, name, f.configPath, err)
	}
	applyFlags(flags, &f, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, errkind.New(errkind.Usage, name, "", err)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, errkind.FromOpen(name, path, err)
	}
	target, err := dependencies.DetectTarget(path)
	if err != nil {
		return nil, err
	}

	log := observability.WithRunID(observability.NewLogger(cfg.Level(), os.Stderr)).WithField("command", name)

	var metrics *observability.Metrics
	if cfg.MetricsFile != "" {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	var putter export.ObjectPutter
	if export.IsObjectDestination(f.exportPath) {
		s3Putter, err := export.NewS3Putter(ctx, cfg.PutterConfig())
		if err != nil {
			return nil, errkind.New(errkind.ExportFailure, name, f.exportPath, err)
		}
		putter = s3Putter
	}

	engine := dependencies.NewEngine(dependencies.Options{
		Workers: cfg.Parallel,
		Logger:  log,
		Metrics: metrics,
	})
	exporter := export.NewExporter(export.Options{
		Putter: putter,
		Logger: log,
	})

	return &scan{
		cfg:      cfg,
		target:   target,
		mode:     mode,
		format:   cfg.Format(),
		dest:     f.exportPath,
		log:      log,
		metrics:  metrics,
		engine:   engine,
		exporter: exporter,
	}, nil
}

// applyFlags copies explicitly set flags over the loaded config
func applyFlags(flags *flag.FlagSet, f *scanFlags, cfg *config.Config) {
	flags.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "export-format":
			cfg.ExportFormat = f.exportFormat
		case "parallel":
			cfg.Parallel = f.parallel
		case "metrics-file":
			cfg.MetricsFile = f.metricsFile
		case "log-level":
			cfg.LogLevel = f.logLevel
		}
	})
}

// report exports deps and flushes metrics
func (s *scan) report(ctx context.Context, deps []string) error {
	if err := s.exporter.Export(ctx, s.format, deps, s.dest); err != nil {
		return err
	}
	s.flushMetrics()
	return nil
}

func (s *scan) flushMetrics() {
	if err := s.metrics.WriteTextfile(s.cfg.MetricsFile); err != nil {
		s.log.WithError(err).Warn("failed to write metrics file")
	}
}

// splitLeadingPositionals splits args at the first flag token
func splitLeadingPositionals(args []string) (positionals []string, flagArgs []string) {
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positionals = append(positionals, args[i+1:]...)
			return positionals, nil
		}
		if isFlagToken(args[i]) {
			return positionals, args[i:]
		}
		positionals = append(positionals, args[i])
	}
	return positionals, nil
}

func isFlagToken(s string) bool {
	return len(s) > 1 && strings.HasPrefix(s, "-")
}
