package templates

import (
	"regexp"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/toyz/autoiface/internal/errors"
	"github.com/toyz/autoiface/internal/models"
)

// receiverNames are tried in order until one is free in the decorator
var receiverNames = []string{"d", "dec", "decorator", "self"}

// fieldNames are tried in order for the decorator's delegate field
var fieldNames = []string{"Delegate", "Wrapped", "Inner"}

// GoRenderer renders artifacts as gofmt-formatted Go files
type GoRenderer struct {
	prefix    string
	templates *TemplateRegistry
}

// NewGoRenderer creates a Go renderer naming files with prefix
func NewGoRenderer(prefix string) *GoRenderer {
	return &GoRenderer{prefix: prefix, templates: NewTemplateRegistry()}
}

// Language returns "go"
func (r *GoRenderer) Language() string {
	return LanguageGo
}

// FileName returns the generated file name for an artifact
func (r *GoRenderer) FileName(artifact *models.Artifact) string {
	return r.prefix + ToSnakeCase(artifact.Name) + ".go"
}

type goMethodData struct {
	Name     string
	Params   string
	Results  string
	Return   bool
	Accessor string
	Args     string
}

type goArtifactData struct {
	Name       string
	Origin     string
	TypeParams string
	TypeArgs   string
	Super      string
	Assert     bool
	Accessor   string
	Field      string
	Recv       string
	Methods    []goMethodData
}

type goFileData struct {
	Header  string
	Package string
	Imports string
	Body    string
}

// Render renders one artifact into a complete Go file
func (r *GoRenderer) Render(artifact *models.Artifact) (*File, error) {
	im := NewImportManager(artifact.Package)
	for _, tp := range artifact.TypeParams {
		im.Reserve(tp.Name)
	}
	w := &goTypeWriter{imports: im}

	data := goArtifactData{
		Name:       artifact.Name,
		Origin:     artifact.Origin,
		TypeParams: w.typeParams(artifact.TypeParams),
		TypeArgs:   typeArgs(artifact.TypeParams),
	}
	if artifact.OriginDecl != nil {
		data.Origin = artifact.OriginDecl.LocalName()
	}

	templateName := GoInterfaceTemplate
	if artifact.Kind == models.ArtifactDecorator {
		templateName = GoDecoratorTemplate
		if artifact.Super == nil || artifact.Accessor == nil {
			return nil, errors.Newf(errors.EmissionErrorCode, "decorator %s has no wrapped type", artifact.Name)
		}
		data.Super = w.typeString(*artifact.Super)
		data.Assert = len(artifact.TypeParams) == 0 && artifact.Complete
		data.Accessor = artifact.Accessor.Name
		data.Field = fieldName(artifact)
		data.Recv = receiverName(artifact)
		for _, m := range artifact.Methods {
			if m.Name == data.Accessor {
				return nil, errors.Newf(errors.EmissionErrorCode, "decorator %s: method %s collides with the accessor", artifact.QualifiedName(), m.Name)
			}
		}
	}

	for _, m := range artifact.Methods {
		md := goMethodData{
			Name:    m.Name,
			Params:  w.params(m.Params, m.Variadic),
			Results: w.results(m.Results),
		}
		if m.Forward != nil {
			md.Return = m.Forward.Return
			md.Accessor = m.Forward.Accessor
			md.Args = strings.Join(m.Forward.Args, ", ")
			if m.Forward.Spread {
				md.Args += "..."
			}
		}
		data.Methods = append(data.Methods, md)
	}

	body, err := r.templates.Execute(templateName, data)
	if err != nil {
		return nil, err
	}

	src, err := r.templates.Execute(GoFileTemplate, goFileData{
		Header:  Header,
		Package: artifact.PackageName,
		Imports: im.GenerateImports(),
		Body:    body,
	})
	if err != nil {
		return nil, err
	}

	name := r.FileName(artifact)
	formatted, err := imports.Process(name, []byte(src), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, errors.WrapTemplateError(templateName, "format", err)
	}

	return &File{Name: name, Content: formatted, Artifact: artifact}, nil
}

// receiverName picks a receiver that no parameter or type parameter shadows
func receiverName(artifact *models.Artifact) string {
	used := make(map[string]bool)
	for _, tp := range artifact.TypeParams {
		used[tp.Name] = true
	}
	for _, m := range artifact.Methods {
		for _, p := range m.Params {
			used[p.Name] = true
		}
	}
	for _, name := range receiverNames {
		if !used[name] {
			return name
		}
	}
	name := receiverNames[0]
	for used[name] {
		name += "_"
	}
	return name
}

// fieldName picks a delegate field name that no method or the accessor uses
func fieldName(artifact *models.Artifact) string {
	used := map[string]bool{artifact.Accessor.Name: true}
	for _, m := range artifact.Methods {
		used[m.Name] = true
	}
	for _, name := range fieldNames {
		if !used[name] {
			return name
		}
	}
	name := fieldNames[0]
	for used[name] {
		name += "_"
	}
	return name
}

func typeArgs(params []models.TypeParam) string {
	if len(params) == 0 {
		return ""
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// goTypeWriter renders type expressions, importing what they reference
type goTypeWriter struct {
	imports *ImportManager
}

func (w *goTypeWriter) typeParams(params []models.TypeParam) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		constraint := "any"
		switch len(p.Bounds) {
		case 0:
		case 1:
			constraint = w.typeString(p.Bounds[0])
		default:
			bounds := make([]string, len(p.Bounds))
			for j, b := range p.Bounds {
				bounds[j] = w.typeString(b)
			}
			constraint = "interface{ " + strings.Join(bounds, "; ") + " }"
		}
		parts[i] = p.Name + " " + constraint
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// params renders a parameter list. Names are kept only when every
// parameter has one.
func (w *goTypeWriter) params(params []models.Param, variadic bool) string {
	named := len(params) > 0
	for _, p := range params {
		if p.Name == "" {
			named = false
		}
	}

	parts := make([]string, len(params))
	for i, p := range params {
		typ := w.paramType(p.Type, variadic && i == len(params)-1)
		if named {
			parts[i] = p.Name + " " + typ
		} else {
			parts[i] = typ
		}
	}
	return strings.Join(parts, ", ")
}

func (w *goTypeWriter) paramType(t models.TypeRef, variadic bool) string {
	if variadic && (t.Kind == models.RefSlice || t.Kind == models.RefArray) && t.Elem != nil {
		return "..." + w.typeString(*t.Elem)
	}
	return w.typeString(t)
}

func (w *goTypeWriter) results(results []models.TypeRef) string {
	switch len(results) {
	case 0:
		return ""
	case 1:
		return " " + w.typeString(results[0])
	}
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = w.typeString(r)
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func (w *goTypeWriter) typeString(t models.TypeRef) string {
	var b strings.Builder
	w.write(&b, t)
	return b.String()
}

func (w *goTypeWriter) write(b *strings.Builder, t models.TypeRef) {
	switch t.Kind {
	case models.RefPrimitive, models.RefVariable:
		b.WriteString(t.Name)
	case models.RefNamed:
		if q := w.imports.Qualifier(t.Package, t.PkgName); q != "" {
			b.WriteString(q + ".")
		}
		b.WriteString(t.Name)
		w.list(b, "[", t.Args, "]")
	case models.RefArray:
		b.WriteString("[" + t.Len + "]")
		w.elem(b, t.Elem)
	case models.RefSlice:
		b.WriteString("[]")
		w.elem(b, t.Elem)
	case models.RefPointer:
		b.WriteByte('*')
		w.elem(b, t.Elem)
	case models.RefMap:
		b.WriteString("map[")
		w.elem(b, t.MapKey)
		b.WriteByte(']')
		w.elem(b, t.Elem)
	case models.RefChan:
		switch t.Dir {
		case models.ChanSend:
			b.WriteString("chan<- ")
		case models.ChanRecv:
			b.WriteString("<-chan ")
		default:
			b.WriteString("chan ")
		}
		w.elem(b, t.Elem)
	case models.RefFunc:
		args := make([]models.Param, len(t.Args))
		for i, a := range t.Args {
			args[i] = models.Param{Type: a}
		}
		b.WriteString("func(" + w.params(args, t.Variadic) + ")" + w.results(t.Results))
	case models.RefWildcard:
		if t.Elem != nil {
			w.write(b, *t.Elem)
		} else {
			b.WriteString("any")
		}
	case models.RefOpaque:
		b.WriteString(w.opaque(t))
	}
}

func (w *goTypeWriter) elem(b *strings.Builder, t *models.TypeRef) {
	if t != nil {
		w.write(b, *t)
	}
}

func (w *goTypeWriter) list(b *strings.Builder, open string, refs []models.TypeRef, close string) {
	if len(refs) == 0 {
		return
	}
	b.WriteString(open)
	for i, r := range refs {
		if i > 0 {
			b.WriteString(", ")
		}
		w.write(b, r)
	}
	b.WriteString(close)
}

// opaque imports the packages an opaque type names and renames their
// qualifiers when an alias was assigned
func (w *goTypeWriter) opaque(t models.TypeRef) string {
	text := t.Text
	for _, imp := range t.Imports {
		alias := w.imports.Qualifier(imp.Path, imp.Name)
		if alias == "" {
			text = qualifierPattern(imp.Name).ReplaceAllString(text, "${1}")
			continue
		}
		if alias != imp.Name {
			text = qualifierPattern(imp.Name).ReplaceAllString(text, "${1}"+alias+".")
		}
	}
	return text
}

func qualifierPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(^|[^\w.])` + regexp.QuoteMeta(name) + `\.`)
}
