package rank

import (
	"testing"

	"github.com/xraph/economy/types"
)

func fixture() map[string]types.Amount {
	return map[string]types.Amount{
		"alice": types.FromInt(50),
		"bob":   types.FromInt(100),
		"carol": types.FromInt(100),
	}
}

func TestComputeOrdering(t *testing.T) {
	s := Compute(fixture())

	// Balance descending, ties broken by name ascending.
	want := []string{"bob", "carol", "alice"}
	if len(s) != len(want) {
		t.Fatalf("standings length: got %d, want %d", len(s), len(want))
	}
	for i, name := range want {
		if s[i].Name != name {
			t.Errorf("position %d: got %q, want %q", i+1, s[i].Name, name)
		}
	}
	if s[0].Balance != types.FromInt(100) {
		t.Errorf("top balance: got %v, want %v", s[0].Balance, types.FromInt(100))
	}
}

func TestRank(t *testing.T) {
	s := Compute(fixture())

	tests := []struct {
		name string
		rank int
		ok   bool
	}{
		{"bob", 1, true},
		{"carol", 2, true},
		{"alice", 3, true},
		{"nobody", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Rank(tt.name)
			if got != tt.rank || ok != tt.ok {
				t.Errorf("Rank(%q): got (%d, %v), want (%d, %v)", tt.name, got, ok, tt.rank, tt.ok)
			}
		})
	}
}

func TestAt(t *testing.T) {
	s := Compute(fixture())

	if e, ok := s.At(1); !ok || e.Name != "bob" {
		t.Errorf("At(1): got (%v, %v), want bob", e, ok)
	}
	if _, ok := s.At(0); ok {
		t.Error("At(0): expected out of range")
	}
	if _, ok := s.At(4); ok {
		t.Error("At(4): expected out of range")
	}
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil)
	if len(s) != 0 {
		t.Errorf("expected empty standings, got %d entries", len(s))
	}
	if _, ok := s.At(1); ok {
		t.Error("At(1) on empty standings should be out of range")
	}
}
