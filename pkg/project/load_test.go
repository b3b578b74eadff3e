package project

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFindProjectFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"blog.yaml", "blog.json", "api.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "dir.yml"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		want string
	}{
		{"blog", "blog.yaml"},
		{"api", "api.json"},
	}
	for _, tt := range tests {
		got, err := FindProjectFile(dir, tt.name)
		if err != nil {
			t.Errorf("FindProjectFile(%q): %v", tt.name, err)
			continue
		}
		if want := filepath.Join(dir, tt.want); got != want {
			t.Errorf("FindProjectFile(%q) = %q, want %q", tt.name, got, want)
		}
	}

	for _, name := range []string{"missing", "dir"} {
		if _, err := FindProjectFile(dir, name); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("FindProjectFile(%q) = %v, want fs.ErrNotExist", name, err)
		}
	}

	for _, name := range []string{"", "../etc/passwd"} {
		if _, err := FindProjectFile(dir, name); err == nil {
			t.Errorf("FindProjectFile(%q): expected error", name)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blog.yml")
	doc := "name: blog\nwindows:\n  - name: editor\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if *p.SessionName != "blog" || len(p.Windows) != 1 {
		t.Errorf("unexpected project: %+v", p)
	}
}

func TestLoadFile_DecodeErrorCarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("attach: true\ndetached: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("LoadFile() = %v, want *DecodeError", err)
	}
	if de.Path != path {
		t.Errorf("Path = %q, want %q", de.Path, path)
	}
	if !strings.HasPrefix(err.Error(), path+": ") {
		t.Errorf("message should start with the path: %q", err.Error())
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadFile() = %v, want fs.ErrNotExist", err)
	}
}

func TestProjectNameFromPath(t *testing.T) {
	tests := map[string]string{
		"/home/u/.config/tmux-project/blog.yml": "blog",
		"api.json":                              "api",
		"noext":                                 "noext",
		"/x/my.project.yaml":                    "my.project",
	}
	for in, want := range tests {
		if got := ProjectNameFromPath(in); got != want {
			t.Errorf("ProjectNameFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}
