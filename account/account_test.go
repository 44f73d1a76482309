package account

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Lower", "alice", "alice"},
		{"Mixed", "Alice", "alice"},
		{"Upper", "ALICE", "alice"},
		{"Spaces", "  Alice ", "alice"},
		{"Empty", "", ""},
		{"OnlySpaces", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q): got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidName(t *testing.T) {
	if !ValidName("Alice") {
		t.Error("expected Alice to be valid")
	}
	if ValidName("   ") {
		t.Error("expected blank name to be invalid")
	}
}
