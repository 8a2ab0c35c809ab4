package tournaments

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"quizdb/internal/logging"
	"quizdb/internal/store"
	"quizdb/internal/textutil"
)

// parenNumber matches the "(2)" style suffixes result software appends to
// reused packet names.
var parenNumber = regexp.MustCompile(`\((\d+)\)`)

// importGameFiles walks game_files/ recursively and imports every qbj match
// document. A bad file is logged and skipped.
func (i *Importer) importGameFiles(ctx context.Context, dir string, idx tournamentIndex, res *resolution, summary *Summary) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".qbj") || skipEntry(d.Name()) {
			return nil
		}
		if err := i.importGame(ctx, path, idx, res, summary); err != nil {
			i.logger.Error("game import failed",
				slog.String("tournament", idx.Slug), slog.String("file", d.Name()), logging.Error(err))
		}
		return nil
	})
}

func (i *Importer) importGame(ctx context.Context, path string, idx tournamentIndex, res *resolution, summary *Summary) error {
	fileName := filepath.Base(path)
	roundNumber, err := roundFromFileName(fileName, idx.Name)
	if err != nil {
		return err
	}

	var doc gameDocument
	if err := readJSON(path, &doc); err != nil {
		return err
	}
	if len(doc.MatchTeams) != 2 {
		return fmt.Errorf("expected 2 teams, got %d", len(doc.MatchTeams))
	}

	packetName := strings.TrimSpace(parenNumber.ReplaceAllString(doc.Packets, ""))
	teamOneName := textutil.CleanName(doc.MatchTeams[0].Team.Name)
	teamTwoName := textutil.CleanName(doc.MatchTeams[1].Team.Name)

	// A re-exported result file shows up as a second game between the same
	// teams in the same round.
	if b, ok := res.lookupRound(roundNumber, packetName); ok {
		teamOneID, okOne := res.lookupTeam(teamOneName)
		teamTwoID, okTwo := res.lookupTeam(teamTwoName)
		if okOne && okTwo {
			exists, err := i.store.GameExists(ctx, b.roundID, teamOneID, teamTwoID)
			if err != nil {
				return err
			}
			if exists {
				i.logger.Info("skipping duplicate game file",
					slog.Int("round", roundNumber),
					slog.String("team_one", teamOneName), slog.String("team_two", teamTwoName))
				summary.SkippedGames++
				return nil
			}
		}
	}

	b, err := res.resolveRound(ctx, roundNumber, packetName)
	if err != nil {
		if errors.Is(err, ErrUnresolvedReference) {
			i.logger.Warn("skipping game with unknown packet",
				slog.String("file", fileName), slog.String("packet", packetName))
			summary.SkippedGames++
			return nil
		}
		return err
	}

	for _, mt := range doc.MatchTeams {
		teamName := textutil.CleanName(mt.Team.Name)
		if _, err := res.resolveTeam(ctx, teamName); err != nil {
			return err
		}
		for _, player := range mt.Team.Players {
			if _, err := res.resolvePlayer(ctx, teamName, textutil.CleanName(player.Name)); err != nil {
				return err
			}
		}
	}

	teamOneID, _ := res.lookupTeam(teamOneName)
	teamTwoID, _ := res.lookupTeam(teamTwoName)
	gameID, err := i.store.InsertGame(ctx, &store.Game{
		RoundID:     b.roundID,
		TossupsRead: doc.TossupsRead,
		TeamOneID:   teamOneID,
		TeamTwoID:   teamTwoID,
	})
	if err != nil {
		return err
	}
	summary.Games++

	for _, question := range doc.MatchQuestions {
		if err := i.importMatchQuestion(ctx, gameID, b.packetID, question, idx, res, summary); err != nil {
			i.logger.Error("match question failed",
				slog.String("file", fileName),
				slog.Int("question", question.TossupQuestion.QuestionNumber), logging.Error(err))
		}
	}
	return nil
}

func (i *Importer) importMatchQuestion(ctx context.Context, gameID, packetID int64, question matchQuestion, idx tournamentIndex, res *resolution, summary *Summary) error {
	tossupID, ok, err := res.resolveTossup(ctx, packetID, question.TossupQuestion.QuestionNumber)
	if err != nil {
		return err
	}
	if !ok {
		i.logger.Warn("no tossup at packet position",
			slog.String("tournament", idx.Slug),
			slog.Int64("packet_id", packetID),
			slog.Int("question", question.TossupQuestion.QuestionNumber))
		return nil
	}

	for _, buzz := range question.Buzzes {
		playerID, ok := res.lookupPlayer(textutil.CleanName(buzz.Team.Name), textutil.CleanName(buzz.Player.Name))
		if !ok {
			i.logger.Warn("buzz by unrostered player",
				slog.String("player", buzz.Player.Name), slog.String("team", buzz.Team.Name))
			continue
		}
		if err := i.store.InsertBuzz(ctx, &store.Buzz{
			PlayerID:     playerID,
			GameID:       gameID,
			TossupID:     tossupID,
			BuzzPosition: buzz.BuzzPosition.WordIndex,
			Value:        buzz.Result.Value,
		}); err != nil {
			return err
		}
		summary.Buzzes++
	}

	if question.Bonus == nil {
		return nil
	}
	return i.importBonusResult(ctx, gameID, packetID, question, idx, res, summary)
}

// importBonusResult credits the controlling team, the one with the positive
// buzz, with each part's controlled points.
func (i *Importer) importBonusResult(ctx context.Context, gameID, packetID int64, question matchQuestion, idx tournamentIndex, res *resolution, summary *Summary) error {
	bonusNumber := question.Bonus.Question.QuestionNumber

	var teamID int64
	found := false
	for _, buzz := range question.Buzzes {
		if buzz.Result.Value > 0 {
			teamID, found = res.lookupTeam(textutil.CleanName(buzz.Team.Name))
			break
		}
	}
	if !found {
		i.logger.Warn("bonus without a converting buzz",
			slog.String("tournament", idx.Slug), slog.Int("bonus", bonusNumber))
		return nil
	}

	parts, err := res.resolveBonusParts(ctx, packetID, bonusNumber)
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return nil
	}

	for partIdx, result := range question.Bonus.Parts {
		partNumber := partIdx + 1
		var partID int64
		for _, part := range parts {
			if part.PartNumber == partNumber {
				partID = part.ID
				break
			}
		}
		if partID == 0 {
			i.logger.Warn("no bonus part at position",
				slog.String("tournament", idx.Slug),
				slog.Int("bonus", bonusNumber), slog.Int("part", partNumber))
			continue
		}
		if err := i.store.InsertBonusPartDirect(ctx, &store.BonusPartDirect{
			TeamID:      teamID,
			GameID:      gameID,
			BonusPartID: partID,
			Value:       result.ControlledPoints,
		}); err != nil {
			return err
		}
		summary.BonusParts++
	}
	return nil
}

// roundFromFileName reads the round number out of an underscore-separated
// game file name. PACE exports lead with the round; everything else puts it
// in the second field.
func roundFromFileName(fileName, tournamentName string) (int, error) {
	fields := strings.Split(strings.TrimSuffix(fileName, ".qbj"), "_")
	idx := 1
	if strings.Contains(strings.ToLower(tournamentName), "pace") {
		idx = 0
	}
	if idx >= len(fields) {
		return 0, fmt.Errorf("%w: no round field in file name %q", ErrUnresolvedReference, fileName)
	}
	n, err := leadingInt(fields[idx])
	if err != nil {
		return 0, fmt.Errorf("%w: round field %q in file name %q", ErrUnresolvedReference, fields[idx], fileName)
	}
	return n, nil
}

// leadingInt parses the integer prefix of s, tolerating trailing text such
// as a file extension.
func leadingInt(s string) (int, error) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s[:end])
}
