package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportManager_Qualifier(t *testing.T) {
	im := NewImportManager("example.com/app")
	im.Reserve("T")

	assert.Empty(t, im.Qualifier("", "error"))
	assert.Empty(t, im.Qualifier("example.com/app", "app"))
	assert.Equal(t, "context", im.Qualifier("context", ""))
	assert.Equal(t, "context", im.Qualifier("context", ""), "repeat lookups reuse the alias")
	assert.Equal(t, "yaml", im.Qualifier("gopkg.in/yaml.v3", "yaml"))
	assert.Equal(t, "yaml2", im.Qualifier("example.com/yaml", ""))
	assert.Equal(t, "T2", im.Qualifier("example.com/T", ""))
	assert.Equal(t, "mod", im.Qualifier("example.com/mod/v2", ""))

	assert.Equal(t, []string{"context", "example.com/T", "example.com/mod/v2", "example.com/yaml", "gopkg.in/yaml.v3"}, im.Paths())
}

func TestImportManager_GenerateImports(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		assert.Empty(t, NewImportManager("a").GenerateImports())
	})

	t.Run("single", func(t *testing.T) {
		im := NewImportManager("a")
		im.Qualifier("io", "")
		assert.Equal(t, "import \"io\"\n", im.GenerateImports())
	})

	t.Run("grouped with aliases", func(t *testing.T) {
		im := NewImportManager("a")
		im.Qualifier("io", "")
		im.Qualifier("example.com/io", "")
		im.Qualifier("context", "")
		assert.Equal(t, "import (\n\t\"context\"\n\t\"io\"\n\n\tio2 \"example.com/io\"\n)\n", im.GenerateImports())
	})
}
