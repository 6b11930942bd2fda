// Package solution parses Visual Studio solution (.sln) files.
//
// # Overview
//
// A solution file is a line-oriented text format. This package reads the
// format header and every Project(...) ... EndProject block, classifies each
// entry (buildable MSBuild project, solution folder, web site, shared project)
// and resolves its path against the solution directory.
//
//	Microsoft Visual Studio Solution File, Format Version 12.00
//	Project("{9A19103F-16F7-4668-BE54-9A1E7A4F7556}") = "App", "src\App\App.csproj", "{...}"
//	EndProject
//	Project("{2150E333-8FDC-42A3-9474-1A3956D46DE8}") = "docs", "docs", "{...}"
//	EndProject
//
// # Members
//
// MemberProjectPaths keeps only entries that MSBuild builds natively and whose
// file ends in .csproj or .vbproj, in the order the solution lists them:
//
//	paths, err := solution.ProjectFilePaths("App.sln")
//
// # Errors
//
// A missing file is errkind.FileNotFound. An I/O error while reading the file
// body is errkind.SolutionReadFailure. A malformed header or project block is
// errkind.ParseFailure.
package solution
