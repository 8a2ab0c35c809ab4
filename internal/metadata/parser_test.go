package metadata_test

import (
	"testing"

	"quizdb/internal/metadata"
)

func TestParseDefaultStyle(t *testing.T) {
	table := metadata.DefaultTable()

	got, ok := metadata.Parse("Jane Doe, Biology - Evolution", metadata.StyleDefault, true, table)
	if !ok {
		t.Fatal("expected known style")
	}
	want := metadata.Fields{
		Author:         "Jane Doe",
		Category:       "Science",
		Subcategory:    "Biology",
		Subsubcategory: "Evolution",
	}
	if got != want {
		t.Fatalf("Parse = %+v, want %+v", got, want)
	}
}

func TestParseDefaultStyleAuthorLast(t *testing.T) {
	got, _ := metadata.Parse("American History, John Smith", metadata.StyleDefault, false, metadata.DefaultTable())
	want := metadata.Fields{
		Author:      "John Smith",
		Category:    "History",
		Subcategory: "American",
	}
	if got != want {
		t.Fatalf("Parse = %+v, want %+v", got, want)
	}
}

func TestParseDefaultStyleUnmatchedDegrades(t *testing.T) {
	got, ok := metadata.Parse("no separator here", metadata.StyleDefault, true, metadata.DefaultTable())
	if !ok {
		t.Fatal("expected known style")
	}
	if got != (metadata.Fields{}) {
		t.Fatalf("expected empty fields, got %+v", got)
	}
}

func TestParseStripRedundantCategory(t *testing.T) {
	// "American History" resolves to category History, which is then removed
	// from the subcategory label.
	got, _ := metadata.Parse("Jane Doe, American History", metadata.StyleDefault, true, metadata.DefaultTable())
	if got.Category != "History" {
		t.Fatalf("category = %q", got.Category)
	}
	if got.Subcategory != "American" {
		t.Fatalf("subcategory = %q, want History stripped", got.Subcategory)
	}
}

func TestParseNoAuthor(t *testing.T) {
	got, _ := metadata.Parse("Chemistry", metadata.StyleNoAuthor, true, metadata.DefaultTable())
	want := metadata.Fields{Category: "Science", Subcategory: "Chemistry"}
	if got != want {
		t.Fatalf("Parse = %+v, want %+v", got, want)
	}
}

func TestParseNoAuthorUnknownSubcategoryFallsBack(t *testing.T) {
	got, _ := metadata.Parse("Geography", metadata.StyleNoAuthor, true, metadata.DefaultTable())
	// Lookup misses, so the subcategory doubles as the category and the
	// substring strip empties the subcategory.
	if got.Category != "Geography" || got.Subcategory != "" {
		t.Fatalf("Parse = %+v", got)
	}
}

func TestParseAuthorAndCategory(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"comma separated", "Jane Doe,Physics"},
		{"hyphen separated", "Jane Doe-Physics"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := metadata.Parse(tc.in, metadata.StyleAuthorAndCategory, true, metadata.DefaultTable())
			want := metadata.Fields{Author: "Jane Doe", Category: "Science", Subcategory: "Physics"}
			if got != want {
				t.Fatalf("Parse(%q) = %+v, want %+v", tc.in, got, want)
			}
		})
	}
}

func TestParseNSC(t *testing.T) {
	in := "Jane Doe, Literature - British Literature - Poetry &gt; 2021 Editor: John Smith"
	got, _ := metadata.Parse(in, metadata.StyleNSC, true, metadata.DefaultTable())
	want := metadata.Fields{
		Author:         "Jane Doe",
		Editor:         "John Smith",
		Category:       "Literature",
		Subcategory:    "British",
		Subsubcategory: "Poetry",
	}
	if got != want {
		t.Fatalf("Parse = %+v, want %+v", got, want)
	}
}

func TestParseNASAT(t *testing.T) {
	got, _ := metadata.Parse("Jane Doe , Science - Physics - Mechanics", metadata.StyleNASAT, true, metadata.DefaultTable())
	want := metadata.Fields{
		Author:         "Jane Doe",
		Category:       "Science",
		Subcategory:    "Physics",
		Subsubcategory: "Mechanics",
	}
	if got != want {
		t.Fatalf("Parse = %+v, want %+v", got, want)
	}
}

func TestParseQBReader(t *testing.T) {
	got, _ := metadata.Parse("Fine Arts - Music - Opera", metadata.StyleQBReader, true, metadata.DefaultTable())
	want := metadata.Fields{Category: "Fine Arts", Subcategory: "Music", Subsubcategory: "Opera"}
	if got != want {
		t.Fatalf("Parse = %+v, want %+v", got, want)
	}

	got, _ = metadata.Parse("History - European History", metadata.StyleQBReader, true, metadata.DefaultTable())
	if got.Subsubcategory != "" {
		t.Fatalf("two-segment path should leave subsubcategory empty, got %+v", got)
	}
}

func TestParseNoneLeavesFieldsEmpty(t *testing.T) {
	got, ok := metadata.Parse("anything at all", metadata.StyleNone, true, metadata.DefaultTable())
	if !ok || got != (metadata.Fields{}) {
		t.Fatalf("Parse = %+v (ok=%v)", got, ok)
	}
}

func TestParseUnknownStyle(t *testing.T) {
	got, ok := metadata.Parse("text", metadata.Style("mystery"), true, metadata.DefaultTable())
	if ok {
		t.Fatal("expected unknown style to be reported")
	}
	if got != (metadata.Fields{}) {
		t.Fatalf("expected empty fields, got %+v", got)
	}
}

func TestParseEmptyInput(t *testing.T) {
	got, ok := metadata.Parse("", metadata.StyleDefault, true, metadata.DefaultTable())
	if !ok || got != (metadata.Fields{}) {
		t.Fatalf("Parse(\"\") = %+v (ok=%v)", got, ok)
	}
}

func TestParseStyle(t *testing.T) {
	if _, err := metadata.ParseStyle("qbReader"); err != nil {
		t.Fatalf("ParseStyle(qbReader): %v", err)
	}
	if s, err := metadata.ParseStyle(""); err != nil || s != metadata.StyleDefault {
		t.Fatalf("ParseStyle(\"\") = %q, %v", s, err)
	}
	if _, err := metadata.ParseStyle("mystery"); err == nil {
		t.Fatal("expected error for unknown style")
	}
}
