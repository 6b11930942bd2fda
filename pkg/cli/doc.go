// Package cli provides the xdepend command-line interface.
//
// # Overview
//
// xdepend lists the dependencies declared by a Visual Studio solution or a
// single project file and exports them as JSON, CSV or plain text.
//
// # Commands
//
// list: Extract once and export
//
//	xdepend list App.sln -packages
//	xdepend list src/App/App.csproj -references -export-format txt
//	xdepend list -packages -export-format csv -export-path deps.csv App.sln
//	xdepend list App.sln -packages -export-path s3://reports/app/deps.json
//
// watch: Extract, export, then repeat on every change to the solution or its projects
//
//	xdepend watch App.sln -references -export-path deps.json -debounce 500ms
//
// # Flags
//
// Exactly one of -references or -packages is required. For a solution,
// -references lists each member's project and package references; for a
// single project it lists assembly references. The remaining flags override
// the config file and XDEPEND_* environment variables (see pkg/config):
//
//	-export-format  json, csv or txt
//	-export-path    file or s3://bucket/key (default: stdout)
//	-parallel       concurrent member parses
//	-metrics-file   Prometheus textfile output
//	-config         config file path
//	-log-level      debug, info, warn or error
//
// # Exit Status
//
// 0 on success, 1 on any usage, extraction or export error.
package cli
