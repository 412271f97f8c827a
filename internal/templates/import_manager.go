package templates

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/toyz/autoiface/internal/naming"
)

// ImportManager assigns import aliases for one generated Go file
type ImportManager struct {
	self     string            // import path of the file's own package
	byPath   map[string]string // path -> alias
	byAlias  map[string]string // alias -> path
	names    map[string]string // path -> package clause name
	reserved map[string]bool   // identifiers an alias must not take
}

// NewImportManager creates an import manager for a file in package self
func NewImportManager(self string) *ImportManager {
	return &ImportManager{
		self:     self,
		byPath:   make(map[string]string),
		byAlias:  make(map[string]string),
		names:    make(map[string]string),
		reserved: make(map[string]bool),
	}
}

// Reserve marks identifiers that aliases must avoid, such as type parameters
func (im *ImportManager) Reserve(names ...string) {
	for _, name := range names {
		im.reserved[name] = true
	}
}

// Qualifier returns the alias to use for a package, importing it on first
// use. The file's own package needs no qualifier.
func (im *ImportManager) Qualifier(pkgPath, name string) string {
	if pkgPath == "" || pkgPath == im.self {
		return ""
	}
	if alias, ok := im.byPath[pkgPath]; ok {
		return alias
	}
	if name == "" {
		name = naming.GoPackageName(pkgPath)
	}

	alias := name
	for i := 2; im.taken(alias); i++ {
		alias = name + strconv.Itoa(i)
	}
	im.byPath[pkgPath] = alias
	im.byAlias[alias] = pkgPath
	im.names[pkgPath] = name
	return alias
}

func (im *ImportManager) taken(alias string) bool {
	_, used := im.byAlias[alias]
	return used || im.reserved[alias]
}

// Paths returns the imported paths in sorted order
func (im *ImportManager) Paths() []string {
	paths := make([]string, 0, len(im.byPath))
	for p := range im.byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// GenerateImports generates the import section
func (im *ImportManager) GenerateImports() string {
	paths := im.Paths()
	if len(paths) == 0 {
		return ""
	}

	var std, other []string
	for _, p := range paths {
		spec := strconv.Quote(p)
		if alias := im.byPath[p]; alias != im.names[p] {
			spec = alias + " " + spec
		}
		if isStandardLibrary(p) {
			std = append(std, spec)
		} else {
			other = append(other, spec)
		}
	}

	if len(paths) == 1 {
		return fmt.Sprintf("import %s\n", append(std, other...)[0])
	}

	var b strings.Builder
	b.WriteString("import (\n")
	for _, spec := range std {
		b.WriteString("\t" + spec + "\n")
	}
	if len(std) > 0 && len(other) > 0 {
		b.WriteString("\n")
	}
	for _, spec := range other {
		b.WriteString("\t" + spec + "\n")
	}
	b.WriteString(")\n")
	return b.String()
}

// isStandardLibrary reports whether an import path belongs to the standard
// library: its first element has no dot
func isStandardLibrary(pkgPath string) bool {
	first, _, _ := strings.Cut(pkgPath, "/")
	return !strings.Contains(first, ".")
}
