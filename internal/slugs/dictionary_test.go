package slugs_test

import (
	"testing"

	"quizdb/internal/slugs"
)

func TestAssignDisambiguates(t *testing.T) {
	dict := slugs.NewDictionary()
	want := []string{"plato", "plato-2", "plato-3"}
	for i, expected := range want {
		if got := dict.Assign("plato"); got != expected {
			t.Fatalf("occurrence %d: got %q, want %q", i+1, got, expected)
		}
	}
}

func TestAssignScopesAreIndependent(t *testing.T) {
	a := slugs.NewDictionary()
	b := slugs.NewDictionary()
	if got := a.Assign("plato"); got != "plato" {
		t.Fatalf("scope a first assign: %q", got)
	}
	if got := b.Assign("plato"); got != "plato" {
		t.Fatalf("scope b should not see scope a, got %q", got)
	}
	if got := a.Assign("socrates"); got != "socrates" {
		t.Fatalf("unrelated base slug: %q", got)
	}
	if got := a.Assign("plato"); got != "plato-2" {
		t.Fatalf("scope a second assign: %q", got)
	}
}
