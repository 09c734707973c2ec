package tests

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type checkFunc func(path string, lines []string) error

// Walk runs check on every non-test Go source file of the module.
func Walk(t *testing.T, excludes []string, check checkFunc) {
	root := ".."

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := filepath.ToSlash(strings.TrimPrefix(path, root+string(filepath.Separator)))

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") || strings.HasPrefix(d.Name(), "_") {
				return filepath.SkipDir
			}

			return nil
		}

		if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		for _, exclude := range excludes {
			if strings.HasPrefix(rel, exclude) {
				return nil
			}
		}

		return check(rel, ReadLines(path))
	})
	if err != nil {
		t.Fatal(err)
	}
}

// ReadLines reads a source file from disk.
func ReadLines(path string) []string {
	code, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	return strings.Split(string(code), "\n")
}
