package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/platinummonkey/xdepend/pkg/errkind"
)

const (
	elementProjectReference = "ProjectReference"
	elementPackageReference = "PackageReference"
	elementReference        = "Reference"

	attrInclude = "Include"

	opParse = "parse project"
)

// Descriptor holds the references declared by a single project file.
// The three lists are independent of each other.
type Descriptor struct {
	// Path is the absolute path of the project file
	Path string

	// ProjectReferences are absolute paths of referenced project files
	ProjectReferences []string

	// PackageReferences are package identifiers, verbatim
	PackageReferences []string

	// AssemblyReferences are Include values of plain Reference elements
	AssemblyReferences []string
}

// Parse reads the project file at path and extracts its references.
// Nothing is cached: every call reads the file again.
func Parse(path string) (*Descriptor, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errkind.New(errkind.ReadFailure, opParse, path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, errkind.FromOpen(opParse, path, err)
	}

	return parseDocument(absPath, data)
}

// ProjectReferences returns the resolved project references of a project file
func ProjectReferences(path string) ([]string, error) {
	d, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return d.ProjectReferences, nil
}

// PackageReferences returns the package references of a project file
func PackageReferences(path string) ([]string, error) {
	d, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return d.PackageReferences, nil
}

// AssemblyReferences returns the assembly references of a project file
func AssemblyReferences(path string) ([]string, error) {
	d, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return d.AssemblyReferences, nil
}

func parseDocument(absPath string, data []byte) (*Descriptor, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.ValidateInput = true
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errkind.New(errkind.ParseFailure, opParse, absPath, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, errkind.New(errkind.ParseFailure, opParse, absPath, ErrNoRootElement)
	}

	d := &Descriptor{
		Path:               absPath,
		ProjectReferences:  []string{},
		PackageReferences:  []string{},
		AssemblyReferences: []string{},
	}
	projectDir := filepath.Dir(absPath)

	var projectRefs, packageRefs int
	err := walk(root, func(el *etree.Element) error {
		switch el.Tag {
		case elementProjectReference:
			projectRefs++
			include, ok := includeOf(el)
			if !ok {
				return missingInclude(absPath, elementProjectReference, projectRefs)
			}
			d.ProjectReferences = append(d.ProjectReferences, resolveReference(projectDir, include))

		case elementPackageReference:
			packageRefs++
			include, ok := includeOf(el)
			if !ok {
				return missingInclude(absPath, elementPackageReference, packageRefs)
			}
			d.PackageReferences = append(d.PackageReferences, include)

		case elementReference:
			// Reference elements without Include use a different reference
			// style and are skipped.
			if include, ok := includeOf(el); ok {
				d.AssemblyReferences = append(d.AssemblyReferences, include)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return d, nil
}

// walk visits el and its descendants in document order
func walk(el *etree.Element, visit func(*etree.Element) error) error {
	if err := visit(el); err != nil {
		return err
	}
	for _, child := range el.ChildElements() {
		if err := walk(child, visit); err != nil {
			return err
		}
	}
	return nil
}

// includeOf returns the Include attribute of el and whether it is present
func includeOf(el *etree.Element) (string, bool) {
	attr := el.SelectAttr(attrInclude)
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}

func missingInclude(path, element string, ordinal int) error {
	return errkind.New(errkind.ParseFailure, opParse, path,
		fmt.Errorf("%s #%d: %w", element, ordinal, ErrMissingInclude))
}

// resolveReference joins a project-relative reference with the project
// directory. Include paths are written with backslashes on every platform.
func resolveReference(projectDir, include string) string {
	rel := strings.ReplaceAll(include, `\`, string(filepath.Separator))
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(projectDir, rel)
}
