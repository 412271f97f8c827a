// Package parser is the Go host: it loads packages with go/packages, finds
// //autoiface:: annotations on type declarations and projects every subject
// and its embedded ancestors into a type model.
package parser

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/tools/go/packages"

	"github.com/toyz/autoiface/internal/annotations"
	"github.com/toyz/autoiface/internal/errors"
	"github.com/toyz/autoiface/internal/models"
	"github.com/toyz/autoiface/internal/typemodel"
)

// Config controls how packages are loaded and which files are scanned
type Config struct {
	Dir             string         // working directory for package patterns
	Tests           bool           // include test files
	GeneratedPrefix string         // generated files are not scanned for annotations
	Exclude         []string       // doublestar globs relative to Dir
	Defaults        models.Options // subject defaults the annotation overrides
}

// Parser implements SourceLoader
type Parser struct {
	config      Config
	annotations *annotations.ParticipleParser
}

// NewParser creates a Go host parser
func NewParser(config Config) *Parser {
	if config.GeneratedPrefix == "" {
		config.GeneratedPrefix = DefaultGeneratedPrefix
	}
	return &Parser{
		config:      config,
		annotations: annotations.NewParticipleParser(nil),
	}
}

type subjectSpec struct {
	named   *types.Named
	options models.Options
}

// Load loads the packages matching patterns and returns the subjects found
// with every ancestor they reach materialized in the universe.
func (p *Parser) Load(ctx context.Context, patterns ...string) (*Result, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}

	cfg := &packages.Config{
		Mode:    loadMode,
		Dir:     p.config.Dir,
		Context: ctx,
		Tests:   p.config.Tests,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.WrapLoadError(strings.Join(patterns, " "), err)
	}

	result := &Result{
		Universe: typemodel.NewUniverse(),
		Errors:   errors.NewMultipleErrors(),
	}

	var specs []subjectSpec
	var fset *token.FileSet
	seenPkgs := make(map[string]bool)
	seenSubjects := make(map[string]bool)

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", pkg.PkgPath, e.Msg))
		}
		if pkg.Types == nil || pkg.TypesInfo == nil {
			continue
		}
		fset = pkg.Fset

		found := p.scanPackage(pkg, result.Errors)
		if len(found) == 0 {
			continue
		}
		for _, spec := range found {
			name := qualifiedName(spec.named.Obj())
			if seenSubjects[name] {
				continue
			}
			seenSubjects[name] = true
			specs = append(specs, spec)
		}

		if !seenPkgs[pkg.PkgPath] {
			seenPkgs[pkg.PkgPath] = true
			result.Packages = append(result.Packages, Package{Path: pkg.PkgPath, Name: pkg.Name, Dir: packageDir(pkg)})
		}
	}
	sort.Slice(result.Packages, func(i, j int) bool { return result.Packages[i].Path < result.Packages[j].Path })

	conv := &converter{fset: fset}
	decls := p.materialize(conv, specs, result.Universe)
	for _, spec := range specs {
		decl, ok := decls[spec.named]
		if !ok {
			continue
		}
		result.Subjects = append(result.Subjects, models.Subject{Decl: decl, Options: spec.options})
	}

	return result, nil
}

// materialize converts every subject and the transitive closure of its
// embedded types, breadth first
func (p *Parser) materialize(conv *converter, specs []subjectSpec, universe *typemodel.Universe) map[*types.Named]*models.ClassDecl {
	decls := make(map[*types.Named]*models.ClassDecl)
	queue := make([]*types.Named, 0, len(specs))
	for _, spec := range specs {
		queue = append(queue, spec.named)
	}

	for len(queue) > 0 {
		named := queue[0].Origin()
		queue = queue[1:]
		if _, done := decls[named]; done {
			continue
		}

		decl, ancestors := conv.decl(named)
		decls[named] = decl
		if universe.Has(decl.QualifiedName()) {
			// a test variant of the same package declares the type again
			continue
		}
		_ = universe.Add(decl)
		queue = append(queue, ancestors...)
	}

	return decls
}

// scanPackage finds annotated type declarations in the package's syntax
func (p *Parser) scanPackage(pkg *packages.Package, errs *errors.MultipleErrors) []subjectSpec {
	var specs []subjectSpec

	for _, file := range pkg.Syntax {
		fileName := pkg.Fset.File(file.Pos()).Name()
		if p.skipFile(fileName) {
			continue
		}

		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, s := range gen.Specs {
				typeSpec := s.(*ast.TypeSpec)
				docs := []*ast.CommentGroup{typeSpec.Doc}
				if !gen.Lparen.IsValid() {
					docs = append(docs, gen.Doc)
				}

				parsed, err := p.annotationFor(pkg.Fset, docs)
				if err != nil {
					addError(errs, err)
					continue
				}
				if parsed == nil {
					continue
				}

				spec, err := p.subjectFor(pkg, typeSpec, parsed)
				if err != nil {
					addError(errs, err)
					continue
				}
				specs = append(specs, spec)
			}
		}
	}
	return specs
}

// annotationFor returns the single annotation in the comment groups, if any
func (p *Parser) annotationFor(fset *token.FileSet, docs []*ast.CommentGroup) (*annotations.ParsedAnnotation, error) {
	var found *annotations.ParsedAnnotation
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for _, comment := range doc.List {
			if !annotations.IsAnnotation(comment.Text) {
				continue
			}
			pos := fset.Position(comment.Slash)
			loc := errors.SourceLocation{File: pos.Filename, Line: pos.Line, Column: pos.Column}

			parsed, err := p.annotations.ParseAnnotation(comment.Text, loc)
			if err != nil {
				return nil, err
			}
			if found != nil {
				dupErr := errors.NewAnnotationValidationError(comment.Text, "", "type is annotated more than once")
				dupErr.WithLocation(loc)
				return nil, dupErr
			}
			found = parsed
		}
	}
	return found, nil
}

func (p *Parser) subjectFor(pkg *packages.Package, spec *ast.TypeSpec, parsed *annotations.ParsedAnnotation) (subjectSpec, error) {
	obj, ok := pkg.TypesInfo.Defs[spec.Name].(*types.TypeName)
	if !ok || obj.IsAlias() {
		aliasErr := errors.NewAnnotationValidationError(parsed.Raw, "", fmt.Sprintf("%s is not a defined type", spec.Name.Name))
		aliasErr.WithLocation(parsed.Location)
		return subjectSpec{}, aliasErr
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		typeErr := errors.NewAnnotationValidationError(parsed.Raw, "", fmt.Sprintf("%s is not a named type", spec.Name.Name))
		typeErr.WithLocation(parsed.Location)
		return subjectSpec{}, typeErr
	}

	parsed.Target = qualifiedName(obj)
	return subjectSpec{named: named, options: parsed.Options(p.config.Defaults)}, nil
}

func (p *Parser) skipFile(fileName string) bool {
	base := filepath.Base(fileName)
	if strings.HasPrefix(base, p.config.GeneratedPrefix) {
		return true
	}
	return Excluded(p.config.Dir, fileName, p.config.Exclude)
}

// Excluded reports whether path matches any of the doublestar patterns,
// relative to dir or by base name
func Excluded(dir, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel := path
	if dir != "" {
		if r, err := filepath.Rel(dir, path); err == nil {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

func packageDir(pkg *packages.Package) string {
	files := pkg.GoFiles
	if len(files) == 0 {
		files = pkg.CompiledGoFiles
	}
	if len(files) == 0 {
		return ""
	}
	return filepath.Dir(files[0])
}

func addError(errs *errors.MultipleErrors, err error) {
	if autoErr, ok := err.(errors.AutoIfaceError); ok {
		errs.Add(autoErr)
		return
	}
	errs.Add(errors.Wrap(errors.LoadErrorCode, "load failed", err))
}
