package tests

import (
	"fmt"
	"strings"
	"testing"
)

func TestLogImport(t *testing.T) {
	// config prints itself before the logger is set up.
	excludes := []string{
		"config/",
		"tests/",
	}

	Walk(t, excludes, checkImport("log", "oep4-squirrel/util/log"))
}

func TestNoPrint(t *testing.T) {
	excludes := []string{
		"tests/",
	}

	Walk(t, excludes, func(path string, lines []string) error {
		for i, line := range lines {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "fmt.Print") {
				return fmt.Errorf("use oep4-squirrel/util/log instead of fmt.Print* in %s:%d", path, i+1)
			}
		}

		return nil
	})
}

func checkImport(forbidden, replacement string) checkFunc {
	return func(path string, lines []string) error {
		for i, line := range lines {
			line = strings.TrimSpace(line)
			line = strings.TrimPrefix(line, "import ")
			line = strings.Trim(line, "\"")

			if line == forbidden {
				return fmt.Errorf("use %q instead of %q in %s:%d", replacement, forbidden, path, i+1)
			}
		}

		return nil
	}
}
