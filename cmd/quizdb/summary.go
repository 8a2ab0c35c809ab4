package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"quizdb/internal/questionsets"
	"quizdb/internal/tournaments"
)

func printSetSummary(w io.Writer, s *questionsets.Summary) {
	printSummary(w, [][]string{
		{"question sets", strconv.Itoa(s.Sets)},
		{"editions", strconv.Itoa(s.Editions)},
		{"packets", strconv.Itoa(s.Packets)},
		{"tossups", strconv.Itoa(s.Tossups)},
		{"bonuses", strconv.Itoa(s.Bonuses)},
		{"skipped editions", strconv.Itoa(s.SkippedEditions)},
		{"skipped questions", strconv.Itoa(s.SkippedQuestions)},
	})
}

func printTournamentSummary(w io.Writer, s *tournaments.Summary) {
	printSummary(w, [][]string{
		{"tournaments", strconv.Itoa(s.Tournaments)},
		{"teams", strconv.Itoa(s.Teams)},
		{"players", strconv.Itoa(s.Players)},
		{"games", strconv.Itoa(s.Games)},
		{"buzzes", strconv.Itoa(s.Buzzes)},
		{"bonus parts", strconv.Itoa(s.BonusParts)},
		{"skipped tournaments", strconv.Itoa(s.SkippedTournaments)},
		{"skipped games", strconv.Itoa(s.SkippedGames)},
	})
}

// printSummary renders a table on interactive terminals and stable
// key=value lines everywhere else.
func printSummary(w io.Writer, rows [][]string) {
	if isTerminal(w) {
		fmt.Fprintln(w, renderTable([]string{"Imported", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
		return
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s=%s\n", strings.ReplaceAll(row[0], " ", "_"), row[1])
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
