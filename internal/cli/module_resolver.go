package cli

import (
	"path/filepath"
	"strings"

	"golang.org/x/mod/module"

	"github.com/toyz/autoiface/internal/errors"
	"github.com/toyz/autoiface/internal/naming"
	"github.com/toyz/autoiface/internal/utils"
)

// ModuleResolver maps import paths inside the main module onto directories
type ModuleResolver struct {
	module *utils.GoModule
}

// NewModuleResolver creates a resolver for a known module. A nil module
// resolves nothing.
func NewModuleResolver(mod *utils.GoModule) *ModuleResolver {
	return &ModuleResolver{module: mod}
}

// LoadModuleResolver finds the go.mod governing dir
func LoadModuleResolver(dir string) (*ModuleResolver, error) {
	mod, err := utils.FindGoModule(dir)
	if err != nil {
		return nil, errors.WrapConfigurationError("go.mod", "locate", err)
	}
	return NewModuleResolver(mod), nil
}

// Module returns the resolved module, or nil
func (r *ModuleResolver) Module() *utils.GoModule {
	return r.module
}

// PackageDir returns the directory of a package path inside the module
func (r *ModuleResolver) PackageDir(pkgPath string) (string, error) {
	if err := module.CheckImportPath(pkgPath); err != nil {
		return "", errors.Wrap(errors.ConfigurationErrorCode, "invalid package path", err)
	}
	if r.module == nil {
		return "", errors.Newf(errors.ConfigurationErrorCode, "cannot place package %s: no go.mod found", pkgPath)
	}

	if pkgPath == r.module.Path {
		return r.module.Dir, nil
	}
	rel, ok := strings.CutPrefix(pkgPath, r.module.Path+"/")
	if !ok {
		err := errors.Newf(errors.ConfigurationErrorCode, "package %s is outside module %s", pkgPath, r.module.Path)
		err.WithSuggestion("Use a pkg override below " + r.module.Path)
		return "", err
	}
	return filepath.Join(r.module.Dir, filepath.FromSlash(rel)), nil
}

// BuildPackagePath builds the import path of a directory inside the module
func (r *ModuleResolver) BuildPackagePath(dir string) (string, error) {
	if r.module == nil {
		return "", errors.Newf(errors.ConfigurationErrorCode, "cannot resolve %s: no go.mod found", dir)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.WrapFileSystemError("resolve", dir, err)
	}
	rel, err := filepath.Rel(r.module.Dir, absDir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ConfigurationErrorCode, "directory %s is outside module %s", dir, r.module.Path)
	}

	if rel == "." {
		return r.module.Path, nil
	}
	return r.module.Path + "/" + filepath.ToSlash(rel), nil
}

// PackageName returns the package clause name for a package path
func (r *ModuleResolver) PackageName(pkgPath string) string {
	return naming.GoPackageName(pkgPath)
}
