package service

import (
	"encoding/json"
	"testing"
)

// mustNumber builds the json.Number a decoded request body would carry.
func mustNumber(t *testing.T, s string) json.Number {
	t.Helper()
	if _, err := json.Number(s).Float64(); err != nil {
		t.Fatalf("bad number literal %q: %v", s, err)
	}
	return json.Number(s)
}
