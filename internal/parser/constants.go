package parser

import "golang.org/x/tools/go/packages"

const (
	// DefaultGeneratedPrefix is the file name prefix of generated Go files
	DefaultGeneratedPrefix = "autogen_"

	// DefaultPattern loads every package below the working directory
	DefaultPattern = "./..."

	loadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
		packages.NeedTypes | packages.NeedTypesInfo | packages.NeedModule
)
