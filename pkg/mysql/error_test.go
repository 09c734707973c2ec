package mysql

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"
)

func TestIsRecordNotFoundError(t *testing.T) {
	if !IsRecordNotFoundError(fmt.Errorf("query: %w", sql.ErrNoRows)) {
		t.Fatalf("get false, want true")
	}
}

func TestGetConnConfig(t *testing.T) {
	get := getConnConfig()
	for _, want := range []string{"charset=utf8mb4", "parseTime=True", "loc=Local"} {
		if !strings.Contains(get, want) {
			t.Fatalf("%s missing from %s", want, get)
		}
	}
}
