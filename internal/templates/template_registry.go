package templates

import (
	"bytes"
	"text/template"

	"github.com/toyz/autoiface/internal/errors"
)

// Template names
const (
	GoFileTemplate        = "go-file"
	GoInterfaceTemplate   = "go-interface"
	GoDecoratorTemplate   = "go-decorator"
	JavaFileTemplate      = "java-file"
	JavaInterfaceTemplate = "java-interface"
	JavaDecoratorTemplate = "java-decorator"
)

// Header marks generated Go files
const Header = "// Code generated by autoiface. DO NOT EDIT."

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]*template.Template
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]*template.Template),
	}

	registry.registerGoTemplates()
	registry.registerJavaTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (*template.Template, bool) {
	tmpl, exists := tr.templates[name]
	return tmpl, exists
}

// Execute runs the named template against data
func (tr *TemplateRegistry) Execute(name string, data interface{}) (string, error) {
	tmpl, exists := tr.templates[name]
	if !exists {
		return "", errors.Newf(errors.TemplateErrorCode, "template not found: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}
	return buf.String(), nil
}

func (tr *TemplateRegistry) register(name, text string) {
	tr.templates[name] = template.Must(template.New(name).Parse(text))
}

// registerGoTemplates registers the Go file, interface and decorator templates
func (tr *TemplateRegistry) registerGoTemplates() {
	tr.register(GoFileTemplate, `{{.Header}}

package {{.Package}}
{{if .Imports}}
{{.Imports}}{{end}}
{{.Body}}`)

	tr.register(GoInterfaceTemplate, `// {{.Name}} is the interface for {{.Origin}}
type {{.Name}}{{.TypeParams}} interface {
{{range .Methods}}	{{.Name}}({{.Params}}){{.Results}}
{{end}}}
`)

	tr.register(GoDecoratorTemplate, `// {{.Name}} forwards every call to the wrapped {{.Super}}
type {{.Name}}{{.TypeParams}} struct {
	{{.Field}} {{.Super}}
}
{{if .Assert}}
var _ {{.Super}} = (*{{.Name}})(nil)
{{end}}
// {{.Accessor}} returns the wrapped value
func ({{.Recv}} *{{.Name}}{{.TypeArgs}}) {{.Accessor}}() {{.Super}} {
	return {{.Recv}}.{{.Field}}
}
{{range .Methods}}
func ({{$.Recv}} *{{$.Name}}{{$.TypeArgs}}) {{.Name}}({{.Params}}){{.Results}} {
	{{if .Return}}return {{end}}{{$.Recv}}.{{.Accessor}}().{{.Name}}({{.Args}})
}
{{end}}`)
}

// registerJavaTemplates registers the Java file, interface and decorator templates
func (tr *TemplateRegistry) registerJavaTemplates() {
	tr.register(JavaFileTemplate, `{{if .Package}}package {{.Package}};

{{end}}{{if .Imports}}{{range .Imports}}import {{.}};
{{end}}
{{end}}{{.Body}}`)

	tr.register(JavaInterfaceTemplate, `public interface {{.Name}}{{.TypeParams}} {
{{range $i, $m := .Methods}}{{if $i}}
{{end}}{{$.Indent}}{{$m.Signature}};
{{end}}}
`)

	tr.register(JavaDecoratorTemplate, `public interface {{.Name}}{{.TypeParams}} extends {{.Super}} {
{{.Indent}}{{.Super}} {{.Accessor}}();
{{range .Methods}}
{{$.Indent}}@Override
{{$.Indent}}default {{.Signature}} {
{{$.Indent}}{{$.Indent}}{{if .Return}}return {{end}}{{.Accessor}}().{{.Name}}({{.Args}});
{{$.Indent}}}
{{end}}}
`)
}
