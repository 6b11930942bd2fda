// Package errkind classifies extraction failures.
//
// Every failure surfaced by the project and solution parsers carries one of a
// small set of kinds (FileNotFound, ReadFailure, ParseFailure,
// SolutionReadFailure). The CLI collapses them all into exit status 1, but the
// kind survives wrapping so tests and callers can distinguish them:
//
//	_, err := project.Parse("missing.csproj")
//	if errkind.Is(err, errkind.FileNotFound) {
//		// ...
//	}
package errkind
