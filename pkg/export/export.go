package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/xdepend/pkg/errkind"
)

const opExport = "export"

// Format is an output rendering of a dependency list
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatTXT  Format = "txt"
)

// Formats lists every supported format
var Formats = []Format{FormatJSON, FormatCSV, FormatTXT}

// ParseFormat parses a format name, case-insensitively. An empty name is JSON.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatTXT:
		return FormatTXT, nil
	default:
		return "", fmt.Errorf("%w: %q (expected json, csv or txt)", ErrUnknownFormat, name)
	}
}

// ContentType returns the MIME type used when uploading the format
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Render renders deps in the given format. The result carries no trailing newline.
func Render(format Format, deps []string) ([]byte, error) {
	switch format {
	case FormatJSON:
		if deps == nil {
			deps = []string{}
		}
		return json.Marshal(deps)
	case FormatCSV:
		return []byte(strings.Join(deps, ",")), nil
	case FormatTXT:
		return []byte(strings.Join(deps, "\n")), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

// Options configures an Exporter
type Options struct {
	// Stdout receives exports without a destination; defaults to os.Stdout
	Stdout io.Writer

	// Putter uploads exports to s3:// destinations
	Putter ObjectPutter

	Logger logrus.FieldLogger
}

// Exporter writes rendered dependency lists to stdout, a file or object storage
type Exporter struct {
	stdout io.Writer
	putter ObjectPutter
	log    logrus.FieldLogger
}

// NewExporter creates a new exporter
func NewExporter(opts Options) *Exporter {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	log := opts.Logger
	if log == nil {
		log = logrus.New()
	}

	return &Exporter{
		stdout: stdout,
		putter: opts.Putter,
		log:    log,
	}
}

// Export renders deps and writes them to dest.
//
// An empty dest prints to stdout followed by a newline. A dest of the form
// s3://bucket/key is uploaded through the configured ObjectPutter. Any other
// dest is a file path, written with exactly the rendered bytes.
func (e *Exporter) Export(ctx context.Context, format Format, deps []string, dest string) error {
	data, err := Render(format, deps)
	if err != nil {
		return errkind.New(errkind.ExportFailure, opExport, dest, err)
	}

	if dest == "" {
		if _, err := fmt.Fprintf(e.stdout, "%s\n", data); err != nil {
			return errkind.New(errkind.ExportFailure, opExport, "stdout", err)
		}
		return nil
	}

	if IsObjectDestination(dest) {
		return e.upload(ctx, format, data, dest)
	}

	if err := os.WriteFile(dest, data, 0644); err != nil {
		return errkind.New(errkind.ExportFailure, opExport, dest, err)
	}

	e.log.WithFields(logrus.Fields{
		"path":    dest,
		"format":  string(format),
		"entries": len(deps),
	}).Info("exported dependencies")

	return nil
}

func (e *Exporter) upload(ctx context.Context, format Format, data []byte, dest string) error {
	bucket, key, err := ParseObjectDestination(dest)
	if err != nil {
		return errkind.New(errkind.ExportFailure, opExport, dest, err)
	}
	if e.putter == nil {
		return errkind.New(errkind.ExportFailure, opExport, dest, ErrNoObjectStore)
	}

	if err := e.putter.PutObject(ctx, bucket, key, data, format.ContentType()); err != nil {
		return errkind.New(errkind.ExportFailure, opExport, dest, err)
	}

	e.log.WithFields(logrus.Fields{
		"bucket": bucket,
		"key":    key,
		"format": string(format),
		"bytes":  len(data),
	}).Info("uploaded dependencies")

	return nil
}

// IsObjectDestination reports whether dest names an object storage location
func IsObjectDestination(dest string) bool {
	return strings.HasPrefix(dest, objectScheme)
}
