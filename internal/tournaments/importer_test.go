package tournaments_test

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"

	"quizdb/internal/config"
	"quizdb/internal/store"
	"quizdb/internal/testsupport"
	"quizdb/internal/tournaments"
)

// seedQuestionData loads enough question-set content for result files to
// resolve against: one edition with two packets, each holding two tossups
// and a bonus at position one.
func seedQuestionData(t *testing.T, s *store.Store) *store.EditionRef {
	t.Helper()
	ctx := context.Background()

	setID, err := s.InsertQuestionSet(ctx, &store.QuestionSet{
		Name: "Sample Set", Slug: "sample-set", Format: "acf", HasBonuses: true,
	})
	if err != nil {
		t.Fatalf("InsertQuestionSet: %v", err)
	}
	editionID, err := s.InsertEdition(ctx, &store.Edition{
		QuestionSetID: setID, Name: "2024", Slug: "2024",
	})
	if err != nil {
		t.Fatalf("InsertEdition: %v", err)
	}

	for n, name := range []string{"Packet 1", "Packet 2"} {
		packetID, err := s.InsertPacket(ctx, &store.Packet{
			EditionID: editionID, Name: name, Descriptor: name, Number: n + 1,
		})
		if err != nil {
			t.Fatalf("InsertPacket: %v", err)
		}
		for q := 1; q <= 2; q++ {
			slug := fmt.Sprintf("%s-tossup-%d", name, q)
			ref, err := s.InsertTossupQuestion(ctx, slug,
				&store.Question{Slug: slug},
				&store.Tossup{Text: "Question text.", Answer: "Plato"})
			if err != nil {
				t.Fatalf("InsertTossupQuestion: %v", err)
			}
			if err := s.InsertPacketQuestion(ctx, packetID, q, ref.QuestionID); err != nil {
				t.Fatalf("InsertPacketQuestion: %v", err)
			}
		}
		ref, err := s.InsertBonusQuestion(ctx, name+"-bonus-1",
			&store.Question{Slug: name + "-bonus"},
			&store.Bonus{Leadin: "For 10 points each..."},
			[]store.BonusPart{
				{PartNumber: 1, Text: "p1", Answer: "a1", Value: 10, DifficultyModifier: "e"},
				{PartNumber: 2, Text: "p2", Answer: "a2", Value: 10, DifficultyModifier: "m"},
				{PartNumber: 3, Text: "p3", Answer: "a3", Value: 10, DifficultyModifier: "h"},
			})
		if err != nil {
			t.Fatalf("InsertBonusQuestion: %v", err)
		}
		if err := s.InsertPacketQuestion(ctx, packetID, 1, ref.QuestionID); err != nil {
			t.Fatalf("InsertPacketQuestion: %v", err)
		}
	}

	return &store.EditionRef{QuestionSetID: setID, EditionID: editionID}
}

func writeTournamentIndex(t *testing.T, cfg *config.Config, index map[string]any) string {
	t.Helper()
	dir := filepath.Join(cfg.TournamentsPath(), index["slug"].(string))
	testsupport.WriteJSON(t, filepath.Join(dir, "index.json"), index)
	return dir
}

func qbjTeam(name string, players ...string) map[string]any {
	roster := make([]any, 0, len(players))
	for _, p := range players {
		roster = append(roster, map[string]any{"name": p})
	}
	return map[string]any{"team": map[string]any{"name": name, "players": roster}}
}

func qbjBuzz(team, player string, wordIndex, value int) map[string]any {
	return map[string]any{
		"buzz_position": map[string]any{"word_index": wordIndex},
		"player":        map[string]any{"name": player},
		"team":          map[string]any{"name": team},
		"result":        map[string]any{"value": value},
	}
}

func writeGameFile(t *testing.T, dir, file string, doc map[string]any) {
	t.Helper()
	testsupport.WriteJSON(t, filepath.Join(dir, "game_files", file), doc)
}

func standardGame(packet string) map[string]any {
	return map[string]any{
		"packets":      packet,
		"tossups_read": 20,
		"match_teams":  []any{qbjTeam("Team A (1)", "Alex Kim", "Sam Lee"), qbjTeam("Team B", "Pat Green")},
		"match_questions": []any{
			map[string]any{
				"tossup_question": map[string]any{"question_number": 1},
				"buzzes":          []any{qbjBuzz("Team A (1)", "Alex Kim", 42, 10)},
				"bonus": map[string]any{
					"question": map[string]any{"question_number": 1},
					"parts": []any{
						map[string]any{"controlled_points": 10},
						map[string]any{"controlled_points": 0},
						map[string]any{"controlled_points": 10},
					},
				},
			},
			map[string]any{
				"tossup_question": map[string]any{"question_number": 2},
				"buzzes":          []any{qbjBuzz("Team B", "Pat Green", 17, -5)},
			},
		},
	}
}

func runImport(t *testing.T, cfg *config.Config, s *store.Store, overwrite bool) *tournaments.Summary {
	t.Helper()
	summary, err := tournaments.NewImporter(cfg, s, nil, overwrite).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return summary
}

func TestImportQBJTournament(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	ref := seedQuestionData(t, s)
	dir := writeTournamentIndex(t, cfg, map[string]any{
		"name": "Spring Open", "slug": "spring-open",
		"set": "Sample Set", "edition": "2024", "level": "college",
	})
	writeGameFile(t, dir, "Round_1_Room_A.qbj", standardGame("Packet 1(2)"))

	summary := runImport(t, cfg, s, false)
	want := &tournaments.Summary{Tournaments: 1, Teams: 2, Players: 3, Games: 1, Buzzes: 2, BonusParts: 3}
	if !reflect.DeepEqual(summary, want) {
		t.Fatalf("summary = %+v, want %+v", summary, want)
	}

	tr, err := s.FindTournamentBySlug(ctx, "spring-open")
	if err != nil || tr == nil {
		t.Fatalf("FindTournamentBySlug = %v, %v", tr, err)
	}
	if tr.EditionID != ref.EditionID || tr.Level != "college" {
		t.Fatalf("unexpected tournament: %+v", tr)
	}

	// The "(2)" suffix and the seeding marker are stripped before resolution.
	players, err := s.FindPlayersByNameAndSet(ctx, "Alex Kim", ref.QuestionSetID)
	if err != nil || len(players) != 1 {
		t.Fatalf("FindPlayersByNameAndSet = %v, %v", players, err)
	}
	if players[0].Slug != "alex-kim" {
		t.Fatalf("player slug = %q", players[0].Slug)
	}
}

func TestImportSkipsDuplicateTournament(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)

	seedQuestionData(t, s)
	dir := writeTournamentIndex(t, cfg, map[string]any{
		"name": "Spring Open", "slug": "spring-open", "set": "Sample Set", "edition": "2024",
	})
	writeGameFile(t, dir, "Round_1_Room_A.qbj", standardGame("Packet 1"))

	runImport(t, cfg, s, false)
	second := runImport(t, cfg, s, false)

	if second.Tournaments != 0 || second.SkippedTournaments != 1 {
		t.Fatalf("second run = %+v", second)
	}
}

func TestImportOverwriteReplacesTournament(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	seedQuestionData(t, s)
	dir := writeTournamentIndex(t, cfg, map[string]any{
		"name": "Spring Open", "slug": "spring-open", "set": "Sample Set", "edition": "2024",
	})
	writeGameFile(t, dir, "Round_1_Room_A.qbj", standardGame("Packet 1"))

	runImport(t, cfg, s, false)
	first, err := s.FindTournamentBySlug(ctx, "spring-open")
	if err != nil || first == nil {
		t.Fatalf("FindTournamentBySlug = %v, %v", first, err)
	}

	second := runImport(t, cfg, s, true)
	if second.Tournaments != 1 || second.Games != 1 {
		t.Fatalf("overwrite run = %+v", second)
	}
	replaced, err := s.FindTournamentBySlug(ctx, "spring-open")
	if err != nil || replaced == nil {
		t.Fatalf("FindTournamentBySlug = %v, %v", replaced, err)
	}
	if replaced.ID == first.ID {
		t.Fatal("tournament row was not replaced")
	}
}

func TestImportSkipsTournamentWithoutEdition(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)

	dir := writeTournamentIndex(t, cfg, map[string]any{
		"name": "Spring Open", "slug": "spring-open", "set": "Unknown Set", "edition": "2024",
	})
	writeGameFile(t, dir, "Round_1_Room_A.qbj", standardGame("Packet 1"))

	summary := runImport(t, cfg, s, false)
	if summary.Tournaments != 0 || summary.SkippedTournaments != 1 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestImportSkipsDuplicateGameFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)

	seedQuestionData(t, s)
	dir := writeTournamentIndex(t, cfg, map[string]any{
		"name": "Spring Open", "slug": "spring-open", "set": "Sample Set", "edition": "2024",
	})
	writeGameFile(t, dir, "Round_1_Room_A.qbj", standardGame("Packet 1"))
	writeGameFile(t, dir, "Round_1_Room_A_copy.qbj", standardGame("Packet 1"))

	summary := runImport(t, cfg, s, false)
	if summary.Games != 1 || summary.SkippedGames != 1 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestImportMultiPacketRound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	seedQuestionData(t, s)
	dir := writeTournamentIndex(t, cfg, map[string]any{
		"name": "Spring Open", "slug": "spring-open", "set": "Sample Set", "edition": "2024",
	})
	writeGameFile(t, dir, "Round_1_Room_A.qbj", standardGame("Packet 1"))

	replay := standardGame("Packet 2")
	replay["match_teams"] = []any{qbjTeam("Team C", "Jo March"), qbjTeam("Team D", "Amy March")}
	writeGameFile(t, dir, "Round_1_Room_B.qbj", replay)

	summary := runImport(t, cfg, s, false)
	if summary.Games != 2 {
		t.Fatalf("summary = %+v", summary)
	}

	tr, err := s.FindTournamentBySlug(ctx, "spring-open")
	if err != nil || tr == nil {
		t.Fatalf("FindTournamentBySlug = %v, %v", tr, err)
	}
	numbers, err := s.ListRoundNumbers(ctx, tr.ID)
	if err != nil {
		t.Fatalf("ListRoundNumbers: %v", err)
	}
	if !reflect.DeepEqual(numbers, []int{1, 100}) {
		t.Fatalf("round numbers = %v", numbers)
	}
}

func TestImportCSVTournament(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)

	seedQuestionData(t, s)
	dir := writeTournamentIndex(t, cfg, map[string]any{
		"name": "Autumn Mirror", "slug": "autumn-mirror",
		"set": "Sample Set", "edition": "2024",
		"rounds": []any{map[string]any{"number": 1, "packet": "Packet 1"}},
	})
	testsupport.WriteFile(t, filepath.Join(dir, "buzzes.csv"), []byte(
		"gameId,round,questionNumber,team,player,opponent,a,b,c,buzzPosition,value\n"+
			"1,1,1,Team A,Alex Kim,Team B,x,x,x,42,10\n"+
			"1,1,2,Team B,Pat Green,Team A,x,x,x,17,-5\n"))
	testsupport.WriteFile(t, filepath.Join(dir, "bonuses.csv"), []byte(
		"gameId,round,x,bonus,team,x,x,x,part,x,x,value\n"+
			"1,1,x,1,Team A,x,x,x,Part 1,x,x,10\n"))

	summary := runImport(t, cfg, s, false)
	want := &tournaments.Summary{Tournaments: 1, Teams: 2, Players: 2, Games: 1, Buzzes: 2, BonusParts: 1}
	if !reflect.DeepEqual(summary, want) {
		t.Fatalf("summary = %+v, want %+v", summary, want)
	}
}

func TestImportDisambiguatesPlayerNames(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	ref := seedQuestionData(t, s)
	springDir := writeTournamentIndex(t, cfg, map[string]any{
		"name": "Spring Open", "slug": "spring-open", "set": "Sample Set", "edition": "2024",
	})
	writeGameFile(t, springDir, "Round_1_Room_A.qbj", standardGame("Packet 1"))

	fallGame := standardGame("Packet 2")
	fallGame["match_teams"] = []any{qbjTeam("Team C", "Alex Kim"), qbjTeam("Team D", "Amy March")}
	fallGame["match_questions"] = []any{}
	fallDir := writeTournamentIndex(t, cfg, map[string]any{
		"name": "Fall Open", "slug": "fall-open", "set": "Sample Set", "edition": "2024",
	})
	writeGameFile(t, fallDir, "Round_1_Room_A.qbj", fallGame)

	runImport(t, cfg, s, false)

	players, err := s.FindPlayersByNameAndSet(ctx, "Alex Kim", ref.QuestionSetID)
	if err != nil || len(players) != 2 {
		t.Fatalf("FindPlayersByNameAndSet = %v, %v", players, err)
	}
	slugs := map[string]bool{}
	for _, p := range players {
		slugs[p.Slug] = true
	}
	if !slugs["alex-kim"] || !slugs["alex-kim-2"] {
		t.Fatalf("player slugs = %v", slugs)
	}
}
