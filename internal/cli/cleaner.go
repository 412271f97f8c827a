package cli

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/autoiface/internal/errors"
	"github.com/toyz/autoiface/internal/parser"
	"github.com/toyz/autoiface/internal/templates"
)

// Cleaner removes generated Go files: prefixed names carrying the generated header
type Cleaner struct {
	dir     string
	prefix  string
	exclude []string
	dryRun  bool
}

// NewCleaner creates a cleaner rooted at dir
func NewCleaner(dir string, config *Config) *Cleaner {
	return &Cleaner{
		dir:     dir,
		prefix:  config.Go.FilePrefix,
		exclude: config.Exclude,
		dryRun:  config.DryRun,
	}
}

// CleanGeneratedFiles removes generated files below the given patterns and
// returns the removed paths in sorted order. A pattern ending in /... is
// walked recursively; any other pattern names a single directory.
func (c *Cleaner) CleanGeneratedFiles(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{parser.DefaultPattern}
	}

	seen := make(map[string]bool)
	var removed []string
	for _, pattern := range patterns {
		dir, recursive := strings.CutSuffix(filepath.ToSlash(pattern), "/...")
		if pattern == "..." {
			dir, recursive = ".", true
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(c.dir, dir)
		}

		files, err := c.collect(dir, recursive)
		if err != nil {
			return removed, err
		}
		for _, file := range files {
			if seen[file] {
				continue
			}
			seen[file] = true
			if !c.dryRun {
				if err := os.Remove(file); err != nil {
					return removed, errors.WrapFileSystemError("remove", file, err)
				}
			}
			removed = append(removed, file)
		}
	}

	sort.Strings(removed)
	return removed, nil
}

func (c *Cleaner) collect(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapFileSystemError("stat", dir, err)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.FileSystemErrorCode, "%s is not a directory", dir)
	}

	var files []string
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == dir {
				return nil
			}
			if !recursive || skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if c.generated(path) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, errors.WrapFileSystemError("walk", dir, walkErr)
	}
	return files, nil
}

// skipDir reports directories the go tool ignores for ./... patterns
func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// generated reports whether path is a file this tool wrote
func (c *Cleaner) generated(path string) bool {
	base := filepath.Base(path)
	if !strings.HasPrefix(base, c.prefix) || !strings.HasSuffix(base, ".go") {
		return false
	}
	if parser.Excluded(c.dir, path, c.exclude) {
		return false
	}
	return hasGeneratedHeader(path)
}

func hasGeneratedHeader(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return false
	}
	return strings.TrimSpace(scanner.Text()) == templates.Header
}
