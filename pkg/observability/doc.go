// Package observability provides structured logging, Prometheus metrics and
// panic recovery for xdepend.
//
// # Structured Logging
//
// Loggers are logrus loggers writing plain text to stderr, so stdout stays
// free for exported output:
//
//	log := observability.NewLogger(observability.InfoLevel, os.Stderr)
//	entry := observability.WithRunID(log)
//	entry.WithField("target", path).Debug("scanning")
//
// # Prometheus Metrics
//
// Metrics live on a private registry and are written out in the text
// exposition format, for a node-exporter textfile collector:
//
//	metrics := observability.NewMetrics(prometheus.NewRegistry())
//	metrics.ObserveParse("project", elapsed, err)
//	err := metrics.WriteTextfile("/var/lib/node_exporter/xdepend.prom")
//
// Available metrics:
//   - xdepend_files_parsed_total{kind}
//   - xdepend_parse_errors_total{kind,error_kind}
//   - xdepend_parse_duration_seconds{kind}
//   - xdepend_dependencies_reported_total{mode}
//
// A nil *Metrics is valid and records nothing.
//
// # Panic Recovery
//
// RecoverError turns a panic in a worker goroutine into an ordinary error:
//
//	eg.Go(func() (err error) {
//		defer func() { err = observability.RecoverError(log, "worker", recover(), err) }()
//		// ...
//	})
package observability
