package main

import (
	"bytes"
	"strings"
	"testing"

	"quizdb/internal/questionsets"
	"quizdb/internal/tournaments"
)

func TestPrintSetSummaryPlain(t *testing.T) {
	var buf bytes.Buffer
	printSetSummary(&buf, &questionsets.Summary{Sets: 1, Editions: 2, Packets: 3, Tossups: 60, Bonuses: 60})

	out := buf.String()
	for _, want := range []string{"question_sets=1", "editions=2", "packets=3", "tossups=60", "bonuses=60", "skipped_editions=0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintTournamentSummaryPlain(t *testing.T) {
	var buf bytes.Buffer
	printTournamentSummary(&buf, &tournaments.Summary{Tournaments: 1, Games: 12, Buzzes: 240, SkippedGames: 2})

	out := buf.String()
	for _, want := range []string{"tournaments=1", "games=12", "buzzes=240", "skipped_games=2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTableIncludesAllRows(t *testing.T) {
	out := renderTable([]string{"Imported", "Count"},
		[][]string{{"tossups", "60"}, {"bonuses", "59"}},
		[]columnAlignment{alignLeft, alignRight})

	for _, want := range []string{"Imported", "tossups", "60", "bonuses", "59"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}
