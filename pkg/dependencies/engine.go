package dependencies

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/platinummonkey/xdepend/pkg/observability"
	"github.com/platinummonkey/xdepend/pkg/project"
	"github.com/platinummonkey/xdepend/pkg/solution"
)

// Options configures an Engine
type Options struct {
	// Workers bounds concurrent member parses; values below 2 parse sequentially
	Workers int

	Logger  logrus.FieldLogger
	Metrics *observability.Metrics
}

// Engine extracts and aggregates dependencies. It holds no mutable state,
// every call reads the files it needs from disk.
type Engine struct {
	workers int
	log     logrus.FieldLogger
	metrics *observability.Metrics
}

// NewEngine creates a new engine
func NewEngine(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = logrus.New()
	}

	return &Engine{
		workers: opts.Workers,
		log:     log,
		metrics: opts.Metrics,
	}
}

// Resolve runs the extraction selected by mode against target
func (e *Engine) Resolve(ctx context.Context, target Target, mode Mode) ([]string, error) {
	var (
		deps []string
		err  error
	)

	switch {
	case target.Kind == SolutionTarget && mode == ModeReferences:
		deps, err = e.ReferencesForSolution(ctx, target.Path)
	case target.Kind == SolutionTarget && mode == ModePackages:
		deps, err = e.PackagesForSolution(ctx, target.Path)
	case target.Kind == ProjectTarget && mode == ModeReferences:
		deps, err = e.ReferencesForProject(ctx, target.Path)
	case target.Kind == ProjectTarget && mode == ModePackages:
		deps, err = e.PackagesForProject(ctx, target.Path)
	default:
		return nil, fmt.Errorf("%w: target %s, mode %s", ErrUnsupportedCombination, target.Kind, mode)
	}
	if err != nil {
		return nil, err
	}

	e.metrics.ObserveResult(mode.String(), len(deps))
	return deps, nil
}

// ReferencesForSolution returns, member by member, each project's project
// references followed by its package references. Duplicates are kept.
func (e *Engine) ReferencesForSolution(ctx context.Context, path string) ([]string, error) {
	descriptors, err := e.parseSolutionMembers(ctx, path)
	if err != nil {
		return nil, err
	}

	result := []string{}
	for _, d := range descriptors {
		result = append(result, d.ProjectReferences...)
		result = append(result, d.PackageReferences...)
	}
	return result, nil
}

// PackagesForSolution returns the distinct package references of all members,
// in order of first occurrence
func (e *Engine) PackagesForSolution(ctx context.Context, path string) ([]string, error) {
	descriptors, err := e.parseSolutionMembers(ctx, path)
	if err != nil {
		return nil, err
	}

	all := []string{}
	for _, d := range descriptors {
		all = append(all, d.PackageReferences...)
	}
	return dedupe(all), nil
}

// ReferencesForProject returns the assembly references of a single project.
//
// This is not the same set ReferencesForSolution reports per member (project
// and package references); both meanings of "references" are kept as they are.
func (e *Engine) ReferencesForProject(ctx context.Context, path string) ([]string, error) {
	d, err := e.parseProject(path)
	if err != nil {
		return nil, err
	}
	return d.AssemblyReferences, nil
}

// PackagesForProject returns the package references of a single project
func (e *Engine) PackagesForProject(ctx context.Context, path string) ([]string, error) {
	d, err := e.parseProject(path)
	if err != nil {
		return nil, err
	}
	return d.PackageReferences, nil
}

// MemberProjects returns the member project paths of a solution
func (e *Engine) MemberProjects(ctx context.Context, path string) ([]string, error) {
	start := time.Now()
	sln, err := solution.Parse(path)
	e.metrics.ObserveParse(SolutionTarget.String(), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	for _, p := range sln.Projects {
		if !p.IsMember() {
			e.log.WithFields(logrus.Fields{
				"solution": sln.Path,
				"entry":    p.Name,
				"type":     p.Type.String(),
			}).Debug("skipping solution entry")
		}
	}

	members := sln.MemberProjectPaths()
	e.log.WithFields(logrus.Fields{
		"solution": sln.Path,
		"members":  len(members),
	}).Debug("resolved solution members")

	return members, nil
}

// Inputs returns the absolute paths of every file a scan of target reads
func (e *Engine) Inputs(ctx context.Context, target Target) ([]string, error) {
	abs, err := filepath.Abs(target.Path)
	if err != nil {
		return nil, err
	}
	if target.Kind != SolutionTarget {
		return []string{abs}, nil
	}

	members, err := e.MemberProjects(ctx, target.Path)
	if err != nil {
		return nil, err
	}
	return append([]string{abs}, members...), nil
}

func (e *Engine) parseSolutionMembers(ctx context.Context, path string) ([]*project.Descriptor, error) {
	members, err := e.MemberProjects(ctx, path)
	if err != nil {
		return nil, err
	}
	return e.parseProjects(ctx, members)
}

// parseProjects parses every path and returns the descriptors in input order.
// The first failure aborts the whole batch.
func (e *Engine) parseProjects(ctx context.Context, paths []string) ([]*project.Descriptor, error) {
	descriptors := make([]*project.Descriptor, len(paths))

	if e.workers < 2 || len(paths) < 2 {
		for i, p := range paths {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			d, err := e.parseProject(p)
			if err != nil {
				return nil, err
			}
			descriptors[i] = d
		}
		return descriptors, nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(e.workers)

	for i, p := range paths {
		i, p := i, p
		eg.Go(func() (err error) {
			defer func() {
				err = observability.RecoverError(e.log, "parse "+p, recover(), err)
			}()

			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := e.parseProject(p)
			if err != nil {
				return err
			}
			descriptors[i] = d
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return descriptors, nil
}

func (e *Engine) parseProject(path string) (*project.Descriptor, error) {
	start := time.Now()
	d, err := project.Parse(path)
	e.metrics.ObserveParse(ProjectTarget.String(), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"project":    d.Path,
		"projects":   len(d.ProjectReferences),
		"packages":   len(d.PackageReferences),
		"assemblies": len(d.AssemblyReferences),
	}).Debug("parsed project")

	return d, nil
}

// dedupe removes repeated entries, keeping the first occurrence of each
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}
