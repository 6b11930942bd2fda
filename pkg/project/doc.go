// Package project extracts declared references from MSBuild project files.
//
// A project file is read as XML and three independent lists are collected, in
// document order:
//
//   - ProjectReference Include values, resolved against the project directory
//   - PackageReference Include values, verbatim
//   - Reference Include values, verbatim
//
// A ProjectReference or PackageReference without Include is a parse failure. A
// Reference without Include is skipped.
//
//	d, err := project.Parse("src/App/App.csproj")
//	if err != nil {
//		return err
//	}
//	fmt.Println(d.PackageReferences)
package project
