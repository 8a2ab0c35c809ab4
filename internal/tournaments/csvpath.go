package tournaments

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"quizdb/internal/store"
	"quizdb/internal/textutil"
)

const (
	buzzesFileName  = "buzzes.csv"
	bonusesFileName = "bonuses.csv"

	// CSV exports carry no per-game tossup count.
	csvTossupsRead = 20
)

var nonDigits = regexp.MustCompile(`\D+`)

// importCSV loads a buzzes.csv/bonuses.csv pair. Round-to-packet bindings
// come from the rounds array in the tournament index, and games are keyed
// by the export's numeric game id so bonus rows can rejoin their game.
func (i *Importer) importCSV(ctx context.Context, dir string, idx tournamentIndex, res *resolution, summary *Summary) error {
	games := make(map[int]int64)
	if err := i.importBuzzRows(ctx, filepath.Join(dir, buzzesFileName), idx, res, games, summary); err != nil {
		return err
	}
	return i.importBonusRows(ctx, filepath.Join(dir, bonusesFileName), idx, res, games, summary)
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	// First row is the header.
	return rows[1:], nil
}

// Buzz rows: game id, round, question number, team, player, opponent,
// three unused columns, buzz position, value.
func (i *Importer) importBuzzRows(ctx context.Context, path string, idx tournamentIndex, res *resolution, games map[int]int64, summary *Summary) error {
	rows, err := readCSVRows(path)
	if err != nil {
		return err
	}

	for line, row := range rows {
		if len(row) < 11 {
			i.logger.Warn("malformed buzz row", slog.String("file", path), slog.Int("line", line+2))
			continue
		}
		gameID, err1 := parseIntField(row[0])
		round, err2 := parseIntField(row[1])
		questionNumber, err3 := parseIntField(row[2])
		buzzPosition, err4 := parseIntField(row[9])
		value, err5 := parseIntField(row[10])
		if err := errors.Join(err1, err2, err3, err4, err5); err != nil {
			i.logger.Warn("malformed buzz row", slog.String("file", path), slog.Int("line", line+2))
			continue
		}
		team := textutil.CleanName(row[3])
		player := textutil.CleanName(row[4])
		opponent := textutil.CleanName(row[5])

		b, ok, err := i.resolveIndexRound(ctx, round, idx, res)
		if err != nil {
			return err
		}
		if !ok {
			summary.SkippedGames++
			continue
		}

		teamID, err := res.resolveTeam(ctx, team)
		if err != nil {
			return err
		}
		opponentID, err := res.resolveTeam(ctx, opponent)
		if err != nil {
			return err
		}
		playerID, err := res.resolvePlayer(ctx, team, player)
		if err != nil {
			return err
		}

		tossupID, ok, err := res.resolveTossup(ctx, b.packetID, questionNumber)
		if err != nil {
			return err
		}
		if !ok {
			i.logger.Warn("no tossup at packet position",
				slog.String("tournament", idx.Slug),
				slog.Int("round", round), slog.Int("question", questionNumber))
			continue
		}

		dbGameID, seen := games[gameID]
		if !seen {
			dbGameID, err = i.store.InsertGame(ctx, &store.Game{
				RoundID:     b.roundID,
				TossupsRead: csvTossupsRead,
				TeamOneID:   teamID,
				TeamTwoID:   opponentID,
			})
			if err != nil {
				return err
			}
			games[gameID] = dbGameID
			summary.Games++
		}

		if err := i.store.InsertBuzz(ctx, &store.Buzz{
			PlayerID:     playerID,
			GameID:       dbGameID,
			TossupID:     tossupID,
			BuzzPosition: buzzPosition,
			Value:        value,
		}); err != nil {
			return err
		}
		summary.Buzzes++
	}
	return nil
}

// Bonus rows: game id, round, an unused column, bonus number, team, four
// unused columns... the part label sits at index 8 and the value at 11.
func (i *Importer) importBonusRows(ctx context.Context, path string, idx tournamentIndex, res *resolution, games map[int]int64, summary *Summary) error {
	rows, err := readCSVRows(path)
	if err != nil {
		return err
	}

	for line, row := range rows {
		if len(row) < 12 {
			i.logger.Warn("malformed bonus row", slog.String("file", path), slog.Int("line", line+2))
			continue
		}
		gameID, err1 := parseIntField(row[0])
		round, err2 := parseIntField(row[1])
		bonusNumber, err3 := parseIntField(row[3])
		value, err4 := parseIntField(row[11])
		partNumber, err5 := parseIntField(nonDigits.ReplaceAllString(row[8], ""))
		if err := errors.Join(err1, err2, err3, err4, err5); err != nil {
			i.logger.Warn("malformed bonus row", slog.String("file", path), slog.Int("line", line+2))
			continue
		}
		team := textutil.CleanName(row[4])

		b, ok, err := i.resolveIndexRound(ctx, round, idx, res)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		dbGameID, seen := games[gameID]
		if !seen {
			i.logger.Warn("bonus row for unknown game",
				slog.String("tournament", idx.Slug), slog.Int("game", gameID))
			continue
		}
		teamID, known := res.lookupTeam(team)
		if !known {
			i.logger.Warn("bonus row for unknown team",
				slog.String("tournament", idx.Slug), slog.String("team", team))
			continue
		}

		parts, err := res.resolveBonusParts(ctx, b.packetID, bonusNumber)
		if err != nil {
			return err
		}
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
			GameID:      dbGameID,
			BonusPartID: partID,
			Value:       value,
		}); err != nil {
			return err
		}
		summary.BonusParts++
	}
	return nil
}

// resolveIndexRound binds a CSV round number through the rounds array in
// the tournament index. Unknown rounds and unknown packets are logged and
// reported as unresolvable, not fatal.
func (i *Importer) resolveIndexRound(ctx context.Context, round int, idx tournamentIndex, res *resolution) (binding, bool, error) {
	packetName := ""
	for _, r := range idx.Rounds {
		if r.Number == round {
			packetName = r.Packet
			break
		}
	}
	if packetName == "" {
		i.logger.Warn("round not in tournament index",
			slog.String("tournament", idx.Slug), slog.Int("round", round))
		return binding{}, false, nil
	}

	b, err := res.resolveRound(ctx, round, packetName)
	if errors.Is(err, ErrUnresolvedReference) {
		i.logger.Warn("skipping round with unknown packet",
			slog.String("tournament", idx.Slug),
			slog.Int("round", round), slog.String("packet", packetName))
		return binding{}, false, nil
	}
	if err != nil {
		return binding{}, false, err
	}
	return b, true, nil
}

func parseIntField(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}
