// Package naming derives the names and packages of generated artifacts.
package naming

import (
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/toyz/autoiface/internal/models"
)

const (
	InterfaceSuffix = "Interface"
	DecoratorSuffix = "Decorator"
)

// Target is the resolved location and name of an artifact
type Target struct {
	Package     string
	PackageName string
	Name        string
}

// QualifiedName returns the package-qualified target name
func (t Target) QualifiedName() string {
	if t.Package == "" {
		return t.Name
	}
	return t.Package + "." + t.Name
}

// PackageNamer maps an overridden package path to its package clause name
type PackageNamer func(pkgPath string) string

// Resolver derives artifact names
type Resolver struct {
	packageName PackageNamer
}

// NewResolver creates a naming resolver. A nil namer uses the override as
// the package name unchanged.
func NewResolver(namer PackageNamer) *Resolver {
	if namer == nil {
		namer = func(pkgPath string) string { return pkgPath }
	}
	return &Resolver{packageName: namer}
}

// GoPackageName returns the last path element of an import path, skipping a
// major version suffix such as /v2.
func GoPackageName(pkgPath string) string {
	base := path.Base(pkgPath)
	if isMajorVersion(base) {
		if parent := path.Dir(pkgPath); parent != "." && parent != "/" {
			base = path.Base(parent)
		}
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	name := strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, base)
	if name == "" {
		return "generated"
	}
	return name
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// BaseName concatenates the subject's name with its enclosing type names,
// innermost first, each capitalized: Inner nested in Outer gives InnerOuter.
func BaseName(decl *models.ClassDecl) string {
	var b strings.Builder
	b.WriteString(Capitalize(decl.Name))
	for i := len(decl.Enclosing) - 1; i >= 0; i-- {
		b.WriteString(Capitalize(decl.Enclosing[i]))
	}
	return b.String()
}

// Capitalize upper-cases the first rune of s
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func (r *Resolver) target(decl *models.ClassDecl, pkgOverride, name string) Target {
	if pkgOverride == "" {
		return Target{Package: decl.Package, PackageName: decl.PackageName, Name: name}
	}
	return Target{Package: pkgOverride, PackageName: r.packageName(pkgOverride), Name: name}
}

// InterfaceName resolves the interface artifact target
func (r *Resolver) InterfaceName(decl *models.ClassDecl, opts models.Options) Target {
	name := opts.Name
	if name == "" {
		name = BaseName(decl) + InterfaceSuffix
	}
	return r.target(decl, opts.Pkg, name)
}

// DecoratorName resolves the decorator artifact target. An explicit interface
// name on a class subject becomes the decorator's base name.
func (r *Resolver) DecoratorName(decl *models.ClassDecl, opts models.Options) Target {
	name := opts.DecoratorName
	if name == "" {
		if opts.Name != "" && !decl.IsInterface() {
			name = opts.Name + DecoratorSuffix
		} else {
			name = BaseName(decl) + DecoratorSuffix
		}
	}
	return r.target(decl, opts.Pkg, name)
}
