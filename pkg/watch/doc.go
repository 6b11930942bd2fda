// Package watch re-runs a dependency extraction whenever its input files change.
//
// The target file is watched together with, for a solution, every member
// project. The member list is re-read after each run, so projects added to
// the solution are picked up without restarting:
//
//	err := watch.Run(ctx, engine, target, dependencies.ModePackages,
//		watch.Options{Debounce: 300 * time.Millisecond},
//		func(deps []string, err error) {
//			// render or report
//		})
package watch
