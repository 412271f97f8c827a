package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// GoModule is the module declared by a go.mod file
type GoModule struct {
	Path string // module path
	Dir  string // directory holding go.mod
}

// FindGoModFile searches for go.mod starting from the given directory and walking up
func FindGoModFile(startDir string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	for {
		goModPath := filepath.Join(currentDir, "go.mod")
		if info, err := os.Stat(goModPath); err == nil && !info.IsDir() {
			return goModPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("go.mod file not found above %s", startDir)
}

// ParseGoMod reads the module declaration from a go.mod file
func ParseGoMod(goModPath string) (*GoModule, error) {
	content, err := os.ReadFile(goModPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read go.mod file: %w", err)
	}

	modFile, err := modfile.Parse(goModPath, content, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.mod file: %w", err)
	}
	if modFile.Module == nil {
		return nil, fmt.Errorf("no module declaration found in %s", goModPath)
	}

	return &GoModule{Path: modFile.Module.Mod.Path, Dir: filepath.Dir(goModPath)}, nil
}

// FindGoModule locates and parses the go.mod governing dir
func FindGoModule(dir string) (*GoModule, error) {
	goModPath, err := FindGoModFile(dir)
	if err != nil {
		return nil, err
	}
	return ParseGoMod(goModPath)
}
