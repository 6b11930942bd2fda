// Package export renders dependency lists and writes them out.
//
// Three formats are supported: a JSON array, a single comma-joined line, and
// one entry per line. The rendered bytes go to stdout (followed by a newline),
// to a file, or to an S3 object when the destination is s3://bucket/key:
//
//	exporter := export.NewExporter(export.Options{})
//	err := exporter.Export(ctx, export.FormatCSV, deps, "deps.csv")
//
// Every failure is reported as errkind.ExportFailure.
package export
