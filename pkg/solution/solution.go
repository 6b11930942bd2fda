package solution

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/platinummonkey/xdepend/pkg/errkind"
)

const (
	headerPrefix = "Microsoft Visual Studio Solution File, Format Version "

	// Oldest format MSBuild can read (Visual Studio .NET 2002)
	minFormatMajor = 7

	maxLineSize = 1024 * 1024

	opParse = "parse solution"
)

var (
	projectLinePattern = regexp.MustCompile(
		`^Project\("(?P<type>[^"]*)"\)\s*=\s*"(?P<name>[^"]*)"\s*,\s*"(?P<path>[^"]*)"\s*,\s*"(?P<guid>[^"]*)"\s*$`)
	dependencyLinePattern = regexp.MustCompile(`^(\{[^}]+\})\s*=\s*(\{[^}]+\})$`)
)

// Solution is a parsed solution file
type Solution struct {
	// Path is the absolute path of the solution file
	Path string

	// FormatVersion is the version from the file header, e.g. "12.00"
	FormatVersion string

	// Projects lists every project entry in file order, including folders
	// and project kinds that are not buildable
	Projects []Project
}

// Project is a single Project(...) entry of a solution file
type Project struct {
	Name         string
	RelativePath string
	AbsolutePath string
	TypeGUID     string
	GUID         string
	Type         ProjectType

	// Dependencies are project GUIDs from ProjectSection(ProjectDependencies)
	Dependencies []string
}

// IsMember reports whether the entry is a buildable C# or VB project
func (p Project) IsMember() bool {
	return p.Type == KnownToBeMSBuildFormat && hasMemberExtension(p.AbsolutePath)
}

// MemberProjectPaths returns the absolute paths of member projects in file order
func (s *Solution) MemberProjectPaths() []string {
	paths := make([]string, 0, len(s.Projects))
	for _, p := range s.Projects {
		if p.IsMember() {
			paths = append(paths, p.AbsolutePath)
		}
	}
	return paths
}

// ProjectFilePaths parses the solution at path and returns its member project paths
func ProjectFilePaths(path string) ([]string, error) {
	sln, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return sln.MemberProjectPaths(), nil
}

// Parse reads and parses the solution file at path
func Parse(path string) (*Solution, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errkind.New(errkind.ReadFailure, opParse, path, err)
	}

	if _, err := os.Stat(absPath); err != nil {
		return nil, errkind.FromOpen(opParse, path, err)
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, errkind.New(errkind.SolutionReadFailure, opParse, path, err)
	}
	defer f.Close()

	return parse(absPath, f)
}

type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func (r *lineReader) next() (string, bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	r.line++
	return strings.TrimSpace(r.scanner.Text()), true
}

func parse(absPath string, src io.Reader) (*Solution, error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	r := &lineReader{scanner: scanner}

	sln := &Solution{
		Path:     absPath,
		Projects: []Project{},
	}
	solutionDir := filepath.Dir(absPath)

	version, err := readHeader(r)
	if err != nil {
		return nil, wrapParseErr(absPath, r, err)
	}
	sln.FormatVersion = version

	for {
		line, ok := r.next()
		if !ok {
			break
		}
		if !strings.HasPrefix(line, "Project(") {
			continue
		}
		p, err := readProject(r, line, solutionDir)
		if err != nil {
			return nil, wrapParseErr(absPath, r, err)
		}
		sln.Projects = append(sln.Projects, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, errkind.New(errkind.SolutionReadFailure, opParse, absPath, err)
	}

	return sln, nil
}

func wrapParseErr(path string, r *lineReader, err error) error {
	if scanErr := r.scanner.Err(); scanErr != nil {
		return errkind.New(errkind.SolutionReadFailure, opParse, path, scanErr)
	}
	return errkind.New(errkind.ParseFailure, opParse, path, fmt.Errorf("line %d: %w", r.line, err))
}

// readHeader looks for the format header in the first two lines
func readHeader(r *lineReader) (string, error) {
	for i := 0; i < 2; i++ {
		line, ok := r.next()
		if !ok {
			break
		}
		if i == 0 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if !strings.HasPrefix(line, headerPrefix) {
			continue
		}

		version := strings.TrimSpace(strings.TrimPrefix(line, headerPrefix))
		major, _, _ := strings.Cut(version, ".")
		n, err := strconv.Atoi(major)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidHeader, version)
		}
		if n < minFormatMajor {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
		}
		return version, nil
	}
	return "", ErrInvalidHeader
}

// readProject parses a Project(...) line and its body up to EndProject
func readProject(r *lineReader, first, solutionDir string) (Project, error) {
	m := projectLinePattern.FindStringSubmatch(first)
	if m == nil {
		return Project{}, fmt.Errorf("%w: %s", ErrInvalidProjectLine, first)
	}

	p := Project{
		TypeGUID:     m[projectLinePattern.SubexpIndex("type")],
		Name:         m[projectLinePattern.SubexpIndex("name")],
		RelativePath: m[projectLinePattern.SubexpIndex("path")],
		GUID:         m[projectLinePattern.SubexpIndex("guid")],
		Dependencies: []string{},
	}
	p.AbsolutePath = resolvePath(solutionDir, p.RelativePath)
	p.Type = classify(p.TypeGUID, p.RelativePath)

	inDependencies := false
	for {
		line, ok := r.next()
		if !ok {
			return Project{}, fmt.Errorf("%w: %s", ErrUnterminatedProject, p.Name)
		}

		switch {
		case line == "EndProject":
			return p, nil
		case strings.HasPrefix(line, "ProjectSection(ProjectDependencies)"):
			inDependencies = true
		case line == "EndProjectSection":
			inDependencies = false
		case inDependencies:
			if dm := dependencyLinePattern.FindStringSubmatch(line); dm != nil {
				p.Dependencies = append(p.Dependencies, dm[1])
			}
		}
	}
}

// resolvePath joins a solution-relative path with the solution directory.
// Solution files always use backslash separators.
func resolvePath(solutionDir, rel string) string {
	rel = strings.ReplaceAll(rel, `\`, string(filepath.Separator))
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(solutionDir, rel)
}

func hasMemberExtension(path string) bool {
	ext := filepath.Ext(path)
	return strings.EqualFold(ext, ".csproj") || strings.EqualFold(ext, ".vbproj")
}
