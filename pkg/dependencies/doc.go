// Package dependencies aggregates declared references across a solution or
// reports them for a single project.
//
// # Overview
//
// A scan starts from a Target, which DetectTarget derives from the file
// extension (.sln for a solution, .csproj or .vbproj for a project). The
// Engine then runs one of four extractions:
//
//	Target     Mode        Result
//	solution   references  per member: project refs, then package refs (duplicates kept)
//	solution   packages    package refs of all members, first occurrence wins
//	project    references  assembly refs (<Reference Include>)
//	project    packages    package refs
//
// The two meanings of "references" differ on purpose and callers rely on both.
//
// # Usage Example
//
//	target, err := dependencies.DetectTarget("App.sln")
//	if err != nil {
//		return err
//	}
//
//	engine := dependencies.NewEngine(dependencies.Options{Workers: 4})
//	deps, err := engine.Resolve(ctx, target, dependencies.ModePackages)
//
// # Concurrency
//
// With Workers above 1, member projects are parsed concurrently. Results are
// still assembled in solution order, and the first member failure aborts the
// whole aggregation with that member's error.
package dependencies
