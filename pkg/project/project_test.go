package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/xdepend/pkg/errkind"
)

func writeProject(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParse_PackageReferences(t *testing.T) {
	path := writeProject(t, t.TempDir(), "App.csproj", `<Project Sdk="Microsoft.NET.Sdk">
  <ItemGroup>
    <PackageReference Include="Newtonsoft.Json" Version="13.0.3" />
    <PackageReference Include="Spectre.Console" Version="0.47.0" />
  </ItemGroup>
</Project>`)

	packages, err := PackageReferences(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Newtonsoft.Json", "Spectre.Console"}, packages)
}

func TestParse_AssemblyReferenceWithoutIncludeIsSkipped(t *testing.T) {
	path := writeProject(t, t.TempDir(), "Legacy.csproj", `<Project>
  <ItemGroup>
    <Reference Include="System.Xml" />
    <Reference />
  </ItemGroup>
</Project>`)

	refs, err := AssemblyReferences(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"System.Xml"}, refs)
}

func TestParse_MissingIncludeIsFatal(t *testing.T) {
	tests := []struct {
		name    string
		content string
		element string
	}{
		{
			name: "package reference",
			content: `<Project><ItemGroup>
  <PackageReference Include="A" />
  <PackageReference Version="1.0.0" />
</ItemGroup></Project>`,
			element: "PackageReference #2",
		},
		{
			name: "project reference",
			content: `<Project><ItemGroup>
  <ProjectReference />
</ItemGroup></Project>`,
			element: "ProjectReference #1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeProject(t, t.TempDir(), "Broken.csproj", tt.content)

			d, err := Parse(path)
			require.Error(t, err)
			assert.Nil(t, d)
			assert.True(t, errkind.Is(err, errkind.ParseFailure))
			assert.ErrorIs(t, err, ErrMissingInclude)
			assert.Contains(t, err.Error(), tt.element)
		})
	}
}

func TestParse_ProjectReferencesResolveAgainstProjectDir(t *testing.T) {
	dir := t.TempDir()
	path := writeProject(t, dir, filepath.Join("src", "App", "App.csproj"), `<Project>
  <ItemGroup>
    <ProjectReference Include="..\Lib\Lib.csproj" />
    <ProjectReference Include="Sub/Inner.vbproj" />
  </ItemGroup>
</Project>`)

	refs, err := ProjectReferences(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "src", "Lib", "Lib.csproj"),
		filepath.Join(dir, "src", "App", "Sub", "Inner.vbproj"),
	}, refs)
}

func TestParse_ListsAreIndependent(t *testing.T) {
	path := writeProject(t, t.TempDir(), "Mixed.csproj", `<Project>
  <ItemGroup>
    <Reference Include="System.Data" />
    <PackageReference Include="Serilog" />
  </ItemGroup>
  <ItemGroup>
    <ProjectReference Include="Core.csproj" />
    <PackageReference Include="Dapper" />
    <Reference Include="System.Net.Http" />
  </ItemGroup>
</Project>`)

	d, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Serilog", "Dapper"}, d.PackageReferences)
	assert.Equal(t, []string{"System.Data", "System.Net.Http"}, d.AssemblyReferences)
	require.Len(t, d.ProjectReferences, 1)
	assert.Equal(t, "Core.csproj", filepath.Base(d.ProjectReferences[0]))
	assert.True(t, filepath.IsAbs(d.Path))
}

func TestParse_NamespacedLegacyProject(t *testing.T) {
	path := writeProject(t, t.TempDir(), "Old.csproj", `<?xml version="1.0" encoding="utf-8"?>
<Project ToolsVersion="15.0" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <ItemGroup>
    <Reference Include="System" />
    <Reference Include="System.Core" />
  </ItemGroup>
</Project>`)

	refs, err := AssemblyReferences(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"System", "System.Core"}, refs)
}

func TestParse_EmptyProject(t *testing.T) {
	path := writeProject(t, t.TempDir(), "Empty.csproj", `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <TargetFramework>net8.0</TargetFramework>
  </PropertyGroup>
</Project>`)

	d, err := Parse(path)
	require.NoError(t, err)
	assert.NotNil(t, d.ProjectReferences)
	assert.NotNil(t, d.PackageReferences)
	assert.NotNil(t, d.AssemblyReferences)
	assert.Empty(t, d.ProjectReferences)
	assert.Empty(t, d.PackageReferences)
	assert.Empty(t, d.AssemblyReferences)
}

func TestParse_Idempotent(t *testing.T) {
	path := writeProject(t, t.TempDir(), "App.csproj", `<Project>
  <ItemGroup>
    <PackageReference Include="A" />
    <Reference Include="B" />
    <ProjectReference Include="C.csproj" />
  </ItemGroup>
</Project>`)

	first, err := Parse(path)
	require.NoError(t, err)
	second, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		want    errkind.Kind
	}{
		{name: "missing file", content: nil, want: errkind.FileNotFound},
		{name: "truncated document", content: strPtr("<Project><ItemGroup>"), want: errkind.ParseFailure},
		{name: "not xml", content: strPtr("this is <<< not xml"), want: errkind.ParseFailure},
		{name: "empty file", content: strPtr(""), want: errkind.ParseFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "P.csproj")
			if tt.content != nil {
				writeProject(t, dir, "P.csproj", *tt.content)
			}

			d, err := Parse(path)
			require.Error(t, err)
			assert.Nil(t, d)
			assert.Equal(t, tt.want, errkind.KindOf(err))
		})
	}
}

func TestParse_UnreadableFile(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root can read files regardless of mode")
	}
	path := writeProject(t, t.TempDir(), "Locked.csproj", "<Project />")
	require.NoError(t, os.Chmod(path, 0000))

	_, err := Parse(path)
	require.Error(t, err)
	assert.True(t, errkind.Is(err, errkind.ReadFailure))
}

func strPtr(s string) *string {
	return &s
}
