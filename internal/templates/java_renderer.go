package templates

import (
	"fmt"
	"sort"
	"strings"

	"github.com/toyz/autoiface/internal/errors"
	"github.com/toyz/autoiface/internal/models"
)

// DefaultJavaIndent is the member indentation of generated Java files
const DefaultJavaIndent = "    "

// JavaRenderer renders artifacts as Java interface source files
type JavaRenderer struct {
	indent    string
	templates *TemplateRegistry
}

// NewJavaRenderer creates a Java renderer; an empty indent uses four spaces
func NewJavaRenderer(indent string) *JavaRenderer {
	if indent == "" {
		indent = DefaultJavaIndent
	}
	return &JavaRenderer{indent: indent, templates: NewTemplateRegistry()}
}

// Language returns "java"
func (r *JavaRenderer) Language() string {
	return LanguageJava
}

// FileName returns the artifact's path below the source root
func (r *JavaRenderer) FileName(artifact *models.Artifact) string {
	name := artifact.Name + ".java"
	if artifact.Package == "" {
		return name
	}
	return strings.ReplaceAll(artifact.Package, ".", "/") + "/" + name
}

type javaMethodData struct {
	Signature string
	Name      string
	Return    bool
	Accessor  string
	Args      string
}

type javaArtifactData struct {
	Name       string
	TypeParams string
	Super      string
	Accessor   string
	Indent     string
	Methods    []javaMethodData
}

type javaFileData struct {
	Package string
	Imports []string
	Body    string
}

// Render renders one artifact into a Java compilation unit
func (r *JavaRenderer) Render(artifact *models.Artifact) (*File, error) {
	w := newJavaTypeWriter(artifact.Package, artifact.Name)
	data := javaArtifactData{
		Name:       artifact.Name,
		TypeParams: w.typeParams(artifact.TypeParams),
		Indent:     r.indent,
	}

	templateName := JavaInterfaceTemplate
	if artifact.Kind == models.ArtifactDecorator {
		templateName = JavaDecoratorTemplate
		if artifact.Super == nil || artifact.Accessor == nil {
			return nil, errors.Newf(errors.EmissionErrorCode, "decorator %s has no wrapped type", artifact.Name)
		}
		data.Super = w.typeString(*artifact.Super)
		data.Accessor = artifact.Accessor.Name
	}

	for _, m := range artifact.Methods {
		md := javaMethodData{Name: m.Name, Signature: w.signature(m)}
		if m.Forward != nil {
			md.Return = m.Forward.Return
			md.Accessor = m.Forward.Accessor
			md.Args = strings.Join(m.Forward.Args, ",")
		}
		data.Methods = append(data.Methods, md)
	}

	body, err := r.templates.Execute(templateName, data)
	if err != nil {
		return nil, err
	}
	src, err := r.templates.Execute(JavaFileTemplate, javaFileData{
		Package: artifact.Package,
		Imports: w.importList(),
		Body:    body,
	})
	if err != nil {
		return nil, err
	}

	return &File{Name: r.FileName(artifact), Content: []byte(src), Artifact: artifact}, nil
}

// javaTypeWriter renders type expressions with simple names, importing the
// top-level type of each. A simple name already claimed by another package
// is written fully qualified.
type javaTypeWriter struct {
	self    string
	claimed map[string]string // simple name -> package qualified top-level name
}

func newJavaTypeWriter(self, name string) *javaTypeWriter {
	w := &javaTypeWriter{self: self, claimed: make(map[string]string)}
	w.claimed[name] = qualify(self, name)
	return w
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

func (w *javaTypeWriter) importList() []string {
	var list []string
	for simple, qualified := range w.claimed {
		pkg := strings.TrimSuffix(qualified, "."+simple)
		if pkg == qualified || pkg == w.self {
			continue
		}
		list = append(list, qualified)
	}
	sort.Strings(list)
	return list
}

func (w *javaTypeWriter) name(pkg, local string) string {
	top, _, _ := strings.Cut(local, ".")
	qualified := qualify(pkg, top)
	if claimed, ok := w.claimed[top]; ok && claimed != qualified {
		return qualify(pkg, local)
	}
	w.claimed[top] = qualified
	return local
}

func (w *javaTypeWriter) typeParams(params []models.TypeParam) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name
		if len(p.Bounds) > 0 {
			bounds := make([]string, len(p.Bounds))
			for j, b := range p.Bounds {
				bounds[j] = w.typeString(b)
			}
			parts[i] += " extends " + strings.Join(bounds, " & ")
		}
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func (w *javaTypeWriter) signature(m models.MethodDescriptor) string {
	var b strings.Builder
	if tp := w.typeParams(m.TypeParams); tp != "" {
		b.WriteString(tp + " ")
	}
	if len(m.Results) == 0 {
		b.WriteString("void")
	} else {
		b.WriteString(w.typeString(m.Results[0]))
	}
	b.WriteString(" " + m.Name + "(")
	for i, p := range m.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		if m.Variadic && i == len(m.Params)-1 && p.Type.Kind == models.RefArray && p.Type.Elem != nil {
			b.WriteString(w.typeString(*p.Type.Elem) + "... " + name)
			continue
		}
		b.WriteString(w.typeString(p.Type) + " " + name)
	}
	b.WriteByte(')')
	if len(m.Throws) > 0 {
		throws := make([]string, len(m.Throws))
		for i, t := range m.Throws {
			throws[i] = w.typeString(t)
		}
		b.WriteString(" throws " + strings.Join(throws, ", "))
	}
	return b.String()
}

func (w *javaTypeWriter) typeString(t models.TypeRef) string {
	var b strings.Builder
	w.write(&b, t)
	return b.String()
}

func (w *javaTypeWriter) write(b *strings.Builder, t models.TypeRef) {
	switch t.Kind {
	case models.RefPrimitive, models.RefVariable:
		b.WriteString(t.Name)
	case models.RefNamed:
		b.WriteString(w.name(t.Package, t.Name))
		if len(t.Args) > 0 {
			b.WriteByte('<')
			for i, a := range t.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				w.write(b, a)
			}
			b.WriteByte('>')
		}
	case models.RefArray, models.RefSlice:
		if t.Elem != nil {
			w.write(b, *t.Elem)
		}
		b.WriteString("[]")
	case models.RefWildcard:
		b.WriteByte('?')
		if t.Elem != nil {
			switch t.Bound {
			case models.BoundExtends:
				b.WriteString(" extends ")
			case models.BoundSuper:
				b.WriteString(" super ")
			}
			w.write(b, *t.Elem)
		}
	default:
		b.WriteString(t.Text)
	}
}
