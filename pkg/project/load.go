package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileExtensions are tried in order by FindProjectFile.
var FileExtensions = []string{".yml", ".yaml", ".json"}

// FindProjectFile returns the path of the project file for name inside dir.
// The error wraps fs.ErrNotExist when no candidate exists.
func FindProjectFile(dir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("project name is empty")
	}
	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		return "", fmt.Errorf("project name %q must not contain a path separator", name)
	}

	for _, ext := range FileExtensions {
		p := filepath.Join(dir, name+ext)
		st, err := os.Stat(p)
		if err != nil || st.IsDir() {
			continue
		}
		return p, nil
	}
	return "", fmt.Errorf("project %q not found in %s (tried %s): %w",
		name, dir, strings.Join(FileExtensions, ", "), fs.ErrNotExist)
}

// LoadFile reads and decodes a project file. Decode errors carry the path.
func LoadFile(path string) (Project, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Project{}, err
	}

	p, err := Decode(b)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			out := *de
			out.Path = path
			return Project{}, &out
		}
		return Project{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ProjectNameFromPath derives a project name from a file path:
// "/x/blog.yml" -> "blog".
func ProjectNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
