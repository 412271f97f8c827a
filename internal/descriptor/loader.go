package descriptor

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/toyz/autoiface/internal/errors"
	"github.com/toyz/autoiface/internal/models"
	"github.com/toyz/autoiface/internal/typemodel"
)

// DefaultPackage is the package unqualified names fall back to when they are
// not declared in the referencing type's own package
const DefaultPackage = "java.lang"

// Model is a loaded descriptor universe and the subjects it marks
type Model struct {
	Universe *typemodel.Universe
	Subjects []models.Subject
}

type pendingType struct {
	decl     TypeDecl
	location errors.SourceLocation
}

// Loader accumulates descriptor files and builds one universe from them.
// References may cross files.
type Loader struct {
	defaults models.Options
	root     string
	pending  []pendingType
}

// NewLoader creates a loader applying defaults to every subject
func NewLoader(defaults models.Options) *Loader {
	return &Loader{defaults: defaults}
}

// LoadFiles reads and builds the given descriptor files
func LoadFiles(defaults models.Options, paths ...string) (*Model, error) {
	l := NewLoader(defaults)
	for _, path := range paths {
		if err := l.AddFile(path); err != nil {
			return nil, err
		}
	}
	return l.Build()
}

// AddFile reads one descriptor file
func (l *Loader) AddFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapFileSystemError("read", path, err)
	}
	return l.AddSource(path, data)
}

// AddSource decodes one descriptor document
func (l *Loader) AddSource(name string, data []byte) error {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return errors.WrapLoadError(name, err)
	}

	if file.Root != "" {
		if l.root != "" && l.root != file.Root {
			return errors.Newf(errors.LoadErrorCode, "%s declares root %s but %s was already declared", name, file.Root, l.root)
		}
		l.root = file.Root
	}

	for i := range file.Types {
		node := &file.Types[i]
		loc := errors.SourceLocation{File: name, Line: node.Line, Column: node.Column}

		var decl TypeDecl
		if err := node.Decode(&decl); err != nil {
			return errors.WrapLoadError(name, err).WithLocation(loc)
		}
		if decl.Name == "" {
			return errors.New(errors.LoadErrorCode, "type entry has no name").WithLocation(loc)
		}
		l.pending = append(l.pending, pendingType{decl: decl, location: loc})
	}
	return nil
}

// Build resolves every pending type and returns the model. All resolution
// failures are reported together.
func (l *Loader) Build() (*Model, error) {
	universe := typemodel.NewUniverse()
	known := make(map[string]*models.ClassDecl, len(l.pending))
	decls := make([]*models.ClassDecl, len(l.pending))
	errs := errors.NewMultipleErrors()

	for i, p := range l.pending {
		kind, ok := holderKind(p.decl.Kind)
		if !ok {
			errs.Add(errors.Newf(errors.LoadErrorCode, "%s: unknown kind %q", p.decl.Name, p.decl.Kind).WithLocation(p.location))
			continue
		}
		decl := &models.ClassDecl{
			Package:     p.decl.Package,
			PackageName: p.decl.Package,
			Name:        p.decl.Name,
			Kind:        kind,
			Location:    p.location,
		}
		if p.decl.Enclosing != "" {
			decl.Enclosing = strings.Split(p.decl.Enclosing, ".")
		}
		if err := universe.Add(decl); err != nil {
			errs.Add(errors.Wrap(errors.LoadErrorCode, "duplicate type", err).WithLocation(p.location))
			continue
		}
		known[decl.QualifiedName()] = decl
		decls[i] = decl
	}

	for i, p := range l.pending {
		if decls[i] == nil {
			continue
		}
		if err := resolveDecl(decls[i], p.decl, known); err != nil {
			errs.Add(errors.Wrap(errors.LoadErrorCode, decls[i].QualifiedName(), err).WithLocation(p.location))
		}
	}

	if l.root != "" {
		if err := universe.SetRoot(l.root); err != nil {
			errs.Add(errors.Wrap(errors.LoadErrorCode, "invalid root", err))
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	model := &Model{Universe: universe}
	for i, p := range l.pending {
		if p.decl.AutoInterface != nil {
			model.Subjects = append(model.Subjects, models.Subject{
				Decl:    decls[i],
				Options: p.decl.AutoInterface.Options(l.defaults),
			})
		}
	}
	return model, nil
}

func resolveDecl(decl *models.ClassDecl, src TypeDecl, known map[string]*models.ClassDecl) error {
	s := scope{pkg: decl.Package, known: known}

	var err error
	s, decl.TypeParams, err = s.typeParams(src.TypeParams)
	if err != nil {
		return err
	}

	for _, text := range src.Extends {
		ref, err := s.parseType(text)
		if err != nil {
			return err
		}
		if ref.Kind != models.RefNamed {
			return fmt.Errorf("ancestor %q is not a named type", text)
		}
		decl.Supers = append(decl.Supers, ref)
	}

	for _, m := range src.Members {
		member, err := s.member(m)
		if err != nil {
			return fmt.Errorf("member %s: %w", m.Name, err)
		}
		decl.Members = append(decl.Members, member)
	}
	return nil
}

// scope resolves names in type expressions of one declaration
type scope struct {
	pkg   string
	vars  map[string]bool
	known map[string]*models.ClassDecl
}

func (s scope) withVars(names []string) scope {
	vars := make(map[string]bool, len(s.vars)+len(names))
	for name := range s.vars {
		vars[name] = true
	}
	for _, name := range names {
		vars[name] = true
	}
	s.vars = vars
	return s
}

// typeParams parses declarations such as "T extends Comparable<T>". Every
// declared name is in scope for every bound.
func (s scope) typeParams(texts []string) (scope, []models.TypeParam, error) {
	if len(texts) == 0 {
		return s, nil, nil
	}
	parsed := make([]*typeParamExpr, len(texts))
	names := make([]string, len(texts))
	for i, text := range texts {
		expr, err := typeParamParser.ParseString("", text)
		if err != nil {
			return s, nil, fmt.Errorf("type parameter %q: %w", text, err)
		}
		parsed[i] = expr
		names[i] = expr.Name
	}

	inner := s.withVars(names)
	params := make([]models.TypeParam, len(parsed))
	for i, expr := range parsed {
		params[i].Name = expr.Name
		for _, bound := range expr.Bounds {
			ref, err := inner.ref(bound)
			if err != nil {
				return s, nil, fmt.Errorf("type parameter %q: %w", texts[i], err)
			}
			params[i].Bounds = append(params[i].Bounds, ref)
		}
	}
	return inner, params, nil
}

func (s scope) member(src MemberDecl) (models.Member, error) {
	kind, ok := memberKind(src.Kind)
	if !ok {
		return models.Member{}, fmt.Errorf("unknown member kind %q", src.Kind)
	}
	vis, ok := visibility(src.Visibility)
	if !ok {
		return models.Member{}, fmt.Errorf("unknown visibility %q", src.Visibility)
	}
	member := models.Member{Kind: kind, Name: src.Name, Static: src.Static, Visibility: vis}

	inner, typeParams, err := s.typeParams(src.TypeParams)
	if err != nil {
		return models.Member{}, err
	}
	member.TypeParams = typeParams

	for i, text := range src.Params {
		expr, err := paramParser.ParseString("", text)
		if err != nil {
			return models.Member{}, fmt.Errorf("parameter %q: %w", text, err)
		}
		ref, err := inner.ref(expr.Type)
		if err != nil {
			return models.Member{}, fmt.Errorf("parameter %q: %w", text, err)
		}
		if expr.Variadic {
			if i != len(src.Params)-1 {
				return models.Member{}, fmt.Errorf("parameter %q: only the last parameter may be variadic", text)
			}
			ref = models.ArrayOf(ref)
			member.Variadic = true
		}
		member.Params = append(member.Params, models.Param{Name: expr.Name, Type: ref})
	}

	if src.Returns != "" && src.Returns != "void" {
		ref, err := inner.parseType(src.Returns)
		if err != nil {
			return models.Member{}, fmt.Errorf("return type: %w", err)
		}
		member.Results = []models.TypeRef{ref}
	}

	for _, text := range src.Throws {
		ref, err := inner.parseType(text)
		if err != nil {
			return models.Member{}, fmt.Errorf("throws: %w", err)
		}
		member.Throws = append(member.Throws, ref)
	}
	return member, nil
}

func (s scope) parseType(text string) (models.TypeRef, error) {
	expr, err := typeParser.ParseString("", text)
	if err != nil {
		return models.TypeRef{}, fmt.Errorf("type %q: %w", text, err)
	}
	return s.ref(expr)
}

func (s scope) ref(expr *typeExpr) (models.TypeRef, error) {
	if w := expr.Wildcard; w != nil {
		if w.Bound == "" {
			return models.Wildcard(models.BoundNone, nil), nil
		}
		bound, err := s.ref(w.Type)
		if err != nil {
			return models.TypeRef{}, err
		}
		kind := models.BoundExtends
		if w.Bound == "super" {
			kind = models.BoundSuper
		}
		return models.Wildcard(kind, &bound), nil
	}

	r := expr.Ref
	name := strings.Join(r.Parts, ".")

	var ref models.TypeRef
	switch {
	case len(r.Parts) == 1 && s.vars[name]:
		ref = models.Variable(name)
	case len(r.Parts) == 1 && javaPrimitives[name]:
		if name == "void" {
			return models.TypeRef{}, fmt.Errorf("void is only valid as a return type")
		}
		ref = models.Primitive(name)
	default:
		ref = s.named(r.Parts)
	}

	if len(r.Args) > 0 {
		if ref.Kind != models.RefNamed {
			return models.TypeRef{}, fmt.Errorf("%s cannot take type arguments", name)
		}
		for _, arg := range r.Args {
			argRef, err := s.ref(arg)
			if err != nil {
				return models.TypeRef{}, err
			}
			ref.Args = append(ref.Args, argRef)
		}
	}

	for range r.Dims {
		ref = models.ArrayOf(ref)
	}
	return ref, nil
}

// named resolves a possibly qualified name against the declared types. Names
// not declared anywhere are split by convention: lowercase segments form the
// package, the rest the local name.
func (s scope) named(parts []string) models.TypeRef {
	name := strings.Join(parts, ".")
	candidates := []string{name}
	if s.pkg != "" {
		candidates = append(candidates, s.pkg+"."+name)
	}
	if len(parts) == 1 {
		candidates = append(candidates, DefaultPackage+"."+name)
	}
	for _, candidate := range candidates {
		if decl, ok := s.known[candidate]; ok {
			ref := models.Named(decl.Package, decl.LocalName())
			ref.PkgName = decl.PackageName
			return ref
		}
	}

	if len(parts) == 1 {
		return models.Named(DefaultPackage, name)
	}
	split := len(parts) - 1
	for i, part := range parts {
		if part != "" && unicode.IsUpper(rune(part[0])) {
			split = i
			break
		}
	}
	if split == 0 {
		return models.Named(s.pkg, name)
	}
	return models.Named(strings.Join(parts[:split], "."), strings.Join(parts[split:], "."))
}
