// Package config loads xdepend settings from a YAML file and the environment.
//
// # Overview
//
// Settings are layered, later layers winning: built-in defaults, an optional
// YAML file, XDEPEND_* environment variables, then command-line flags (applied
// by pkg/cli).
//
// # Configuration File
//
// Without -config, the working directory is searched for .xdepend.yaml,
// .xdepend.yml and xdepend.yaml, in that order:
//
//	log_level: info
//	export_format: csv
//	parallel: 4
//	metrics_file: /var/lib/node_exporter/xdepend.prom
//	watch_debounce: 500ms
//	s3:
//	  region: us-east-1
//	  endpoint: http://localhost:9000
//	  use_path_style: true
//
// # Environment
//
//	XDEPEND_LOG_LEVEL="debug"        # debug, info, warn, error
//	XDEPEND_EXPORT_FORMAT="json"     # json, csv, txt
//	XDEPEND_PARALLEL="4"
//	XDEPEND_METRICS_FILE="xdepend.prom"
//	XDEPEND_WATCH_DEBOUNCE="300ms"
//	XDEPEND_S3_REGION="us-east-1"
//	XDEPEND_S3_ENDPOINT="http://localhost:9000"
//	XDEPEND_S3_ACCESS_KEY="..."
//	XDEPEND_S3_SECRET_KEY="..."
//	XDEPEND_S3_USE_PATH_STYLE="true"
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//		return err
//	}
//	log := observability.NewLogger(cfg.Level(), os.Stderr)
package config
