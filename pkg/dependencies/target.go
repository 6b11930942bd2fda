package dependencies

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/platinummonkey/xdepend/pkg/errkind"
)

// Mode selects what is extracted
type Mode int

const (
	ModeReferences Mode = iota + 1
	ModePackages
)

func (m Mode) String() string {
	switch m {
	case ModeReferences:
		return "references"
	case ModePackages:
		return "packages"
	default:
		return "unknown"
	}
}

// TargetKind is the kind of file a scan starts from
type TargetKind int

const (
	ProjectTarget TargetKind = iota + 1
	SolutionTarget
)

func (k TargetKind) String() string {
	switch k {
	case ProjectTarget:
		return "project"
	case SolutionTarget:
		return "solution"
	default:
		return "unknown"
	}
}

// Target is a file to scan together with its kind. The kind is decided
// once, by DetectTarget, and never re-derived from the path afterwards.
type Target struct {
	Kind TargetKind
	Path string
}

var targetExtensions = map[string]TargetKind{
	".sln":    SolutionTarget,
	".csproj": ProjectTarget,
	".vbproj": ProjectTarget,
}

// DetectTarget classifies path by its extension
func DetectTarget(path string) (Target, error) {
	if strings.TrimSpace(path) == "" {
		return Target{}, errkind.NewUsage("path must be specified")
	}

	kind, ok := targetExtensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return Target{}, errkind.New(errkind.Usage, "detect target", path,
			fmt.Errorf("%w: expected .sln, .csproj or .vbproj", ErrUnrecognizedTarget))
	}

	return Target{Kind: kind, Path: path}, nil
}
