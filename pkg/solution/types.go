package solution

import "strings"

// ProjectType classifies a solution entry the way MSBuild does
type ProjectType int

const (
	Unknown ProjectType = iota
	KnownToBeMSBuildFormat
	SolutionFolder
	WebProject
	EtpSubProject
	SharedProject
)

func (t ProjectType) String() string {
	switch t {
	case KnownToBeMSBuildFormat:
		return "KnownToBeMSBuildFormat"
	case SolutionFolder:
		return "SolutionFolder"
	case WebProject:
		return "WebProject"
	case EtpSubProject:
		return "EtpSubProject"
	case SharedProject:
		return "SharedProject"
	default:
		return "Unknown"
	}
}

// Project type GUIDs, upper case
const (
	guidSolutionFolder = "{2150E333-8FDC-42A3-9474-1A3956D46DE8}"
	guidWebProject     = "{E24C65DC-7377-472B-9ABA-BC803B73C61A}"
	guidSharedProject  = "{D954291E-2A0B-460D-934E-DC6B0785DB48}"
	guidVisualC        = "{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}"
)

// msbuildTypeGUIDs are project kinds MSBuild builds natively
var msbuildTypeGUIDs = map[string]struct{}{
	"{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}": {}, // csharp
	"{9A19103F-16F7-4668-BE54-9A1E7A4F7556}": {}, // csharp-sdk
	"{F184B08F-C81C-45F6-A57F-5ABD9991F28F}": {}, // visualbasic
	"{778DAE3C-4631-46EA-AA77-85C1314464D9}": {}, // visualbasic-sdk
	"{F2A71F9B-5D33-465A-A702-920D77279786}": {}, // fsharp
	"{6EC3EE1D-3C4E-46DD-8F32-0CC8E7565705}": {}, // fsharp-sdk
	"{13B669BE-BB05-4DDF-9536-439F39A36129}": {}, // cps
	"{C8D11400-126E-41CD-887F-60BD40844F9E}": {}, // database
	"{E6FDF86B-F3D1-11D4-8576-0002A516ECE8}": {}, // jsharp
	"{BBD0F5D1-1CC4-42FD-BA4C-A96779C64378}": {}, // synergex
}

func classify(typeGUID, relativePath string) ProjectType {
	guid := strings.ToUpper(strings.TrimSpace(typeGUID))
	path := strings.ToLower(relativePath)

	if _, ok := msbuildTypeGUIDs[guid]; ok {
		return KnownToBeMSBuildFormat
	}

	switch guid {
	case guidSolutionFolder:
		return SolutionFolder
	case guidSharedProject:
		return SharedProject
	case guidWebProject:
		return WebProject
	}

	switch {
	case strings.HasSuffix(path, ".etp"):
		return EtpSubProject
	case guid == guidVisualC && strings.HasSuffix(path, ".vcproj"):
		// pre-2010 C++ projects are not MSBuild files
		return Unknown
	case strings.HasSuffix(path, "proj"):
		return KnownToBeMSBuildFormat
	default:
		return Unknown
	}
}
