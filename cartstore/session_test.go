package cartstore

import (
	"strings"
	"testing"
)

func TestNewSessionHandle(t *testing.T) {
	a := NewSessionHandle()
	b := NewSessionHandle()
	if !a.Valid() || !b.Valid() {
		t.Fatalf("minted handles must be valid: %s / %s", a, b)
	}
	if a == b {
		t.Errorf("handles must be unique")
	}
	if !strings.HasPrefix(string(a), "session_") {
		t.Errorf("handle = %s, want session_ prefix", a)
	}
}

func TestSessionHandle_Valid(t *testing.T) {
	tests := []struct {
		handle SessionHandle
		want   bool
	}{
		{"session_1724900000000_Ab3xYz", true},
		{"", false},
		{"session_", false},
		{"session_abc_def", false},                  // timestamp not numeric
		{"session_1724900000000_", false},           // missing random part
		{"session_1724900000000_../../etc", false},  // path characters
		{"other_1724900000000_Ab3xYz", false},       // wrong prefix
		{SessionHandle("session_1_" + strings.Repeat("a", 200)), false}, // too long
	}
	for _, tt := range tests {
		if got := tt.handle.Valid(); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.handle, got, tt.want)
		}
	}
}
