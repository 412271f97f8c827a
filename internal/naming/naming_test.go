package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/autoiface/internal/models"
)

func TestBaseName(t *testing.T) {
	tests := []struct {
		name     string
		decl     *models.ClassDecl
		expected string
	}{
		{"top level", &models.ClassDecl{Name: "BasicClass"}, "BasicClass"},
		{"nested", &models.ClassDecl{Name: "Inner", Enclosing: []string{"Outer"}}, "InnerOuter"},
		{"nested class in base class", &models.ClassDecl{Name: "InnerClass", Enclosing: []string{"BaseClass"}}, "InnerClassBaseClass"},
		{"three levels", &models.ClassDecl{Name: "c", Enclosing: []string{"a", "b"}}, "CBA"},
		{"lowercase go type", &models.ClassDecl{Name: "store"}, "Store"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BaseName(tt.decl))
		})
	}
}

func TestResolver_InterfaceName(t *testing.T) {
	r := NewResolver(GoPackageName)
	nested := &models.ClassDecl{Package: "example.com/app/shapes", PackageName: "shapes", Name: "Inner", Enclosing: []string{"Outer"}}

	t.Run("default", func(t *testing.T) {
		target := r.InterfaceName(nested, models.Options{})
		assert.Equal(t, Target{Package: "example.com/app/shapes", PackageName: "shapes", Name: "InnerOuterInterface"}, target)
		assert.Equal(t, "example.com/app/shapes.InnerOuterInterface", target.QualifiedName())
	})

	t.Run("overrides", func(t *testing.T) {
		target := r.InterfaceName(nested, models.Options{Name: "Shape", Pkg: "example.com/app/api/v2"})
		assert.Equal(t, Target{Package: "example.com/app/api/v2", PackageName: "api", Name: "Shape"}, target)
	})
}

func TestResolver_DecoratorName(t *testing.T) {
	r := NewResolver(nil)
	class := &models.ClassDecl{Package: "test", PackageName: "test", Name: "BasicClass"}
	iface := &models.ClassDecl{Package: "test", PackageName: "test", Name: "Repository", Kind: models.HolderInterface}

	tests := []struct {
		name     string
		decl     *models.ClassDecl
		opts     models.Options
		expected string
	}{
		{"default", class, models.Options{}, "BasicClassDecorator"},
		{"derived from interface override", class, models.Options{Name: "Basic"}, "BasicDecorator"},
		{"explicit", class, models.Options{Name: "Basic", DecoratorName: "Wrapper"}, "Wrapper"},
		{"interface subject ignores name", iface, models.Options{Name: "Ignored"}, "RepositoryDecorator"},
		{"interface subject explicit", iface, models.Options{DecoratorName: "RepoWrapper"}, "RepoWrapper"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.DecoratorName(tt.decl, tt.opts).Name)
		})
	}

	t.Run("package override without go namer", func(t *testing.T) {
		target := r.DecoratorName(class, models.Options{Pkg: "com.example.gen"})
		assert.Equal(t, "com.example.gen", target.Package)
		assert.Equal(t, "com.example.gen", target.PackageName)
	})
}

func TestGoPackageName(t *testing.T) {
	assert.Equal(t, "api", GoPackageName("example.com/app/api"))
	assert.Equal(t, "api", GoPackageName("example.com/app/api/v3"))
	assert.Equal(t, "yaml", GoPackageName("gopkg.in/yaml.v3"))
	assert.Equal(t, "my_pkg", GoPackageName("example.com/my-pkg"))
	assert.Equal(t, "v2", GoPackageName("v2"))
}
