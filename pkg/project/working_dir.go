package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// decodeWorkingDir reads a working directory value. A leading "~" is expanded
// to the home directory and $VAR references are expanded from the
// environment. The filesystem is not consulted; see checkWorkingDir.
func decodeWorkingDir(n *yaml.Node) (*string, error) {
	s, err := decodeOptionalString(n)
	if err != nil || s == nil {
		return nil, err
	}
	if strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	dir := expandPath(*s)
	return &dir, nil
}

func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			p = filepath.Join(home, p[1:])
		}
	}
	return os.ExpandEnv(p)
}

// checkWorkingDir fails unless path names an existing directory.
func checkWorkingDir(path string) error {
	st, err := os.Stat(path)
	if err != nil || !st.IsDir() {
		return &ValidationError{
			Field: "working_dir",
			Value: path,
			Err:   fmt.Errorf("%q is not a directory or does not exist", path),
		}
	}
	return nil
}
