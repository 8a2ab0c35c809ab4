package tournaments

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"quizdb/internal/config"
	"quizdb/internal/logging"
	"quizdb/internal/store"
)

const (
	indexFileName    = "index.json"
	gameFilesDirName = "game_files"
)

// Summary counts what one import run touched.
type Summary struct {
	Tournaments int
	Teams       int
	Players     int
	Games       int
	Buzzes      int
	BonusParts  int

	SkippedTournaments int
	SkippedGames       int
}

// Importer walks the tournament tree and loads every tournament's results
// into the store. A tournament whose question set edition has not been
// imported yet is skipped whole; within a tournament, errors are isolated
// per game.
type Importer struct {
	cfg       *config.Config
	store     *store.Store
	logger    *slog.Logger
	overwrite bool
}

// NewImporter wires an importer against an open store. When overwrite is
// set, tournaments already in the database are deleted and re-imported
// instead of skipped.
func NewImporter(cfg *config.Config, st *store.Store, logger *slog.Logger, overwrite bool) *Importer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Importer{cfg: cfg, store: st, logger: logger, overwrite: overwrite}
}

// Run imports every tournament under the configured tree root.
func (i *Importer) Run(ctx context.Context) (*Summary, error) {
	root := i.cfg.TournamentsPath()
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read tournaments: %w", err)
	}

	summary := &Summary{}
	for _, entry := range entries {
		if skipEntry(entry.Name()) {
			continue
		}
		if err := i.importTournament(ctx, filepath.Join(root, entry.Name()), summary); err != nil {
			i.logger.Error("tournament import failed",
				slog.String("tournament", entry.Name()), logging.Error(err))
		}
	}
	return summary, nil
}

func (i *Importer) importTournament(ctx context.Context, dir string, summary *Summary) error {
	var idx tournamentIndex
	if err := readJSON(filepath.Join(dir, indexFileName), &idx); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			i.logger.Warn("skipping folder without index.json", slog.String("path", dir))
			return nil
		}
		return err
	}

	existing, err := i.store.FindTournamentBySlug(ctx, idx.Slug)
	if err != nil {
		return err
	}
	if existing != nil {
		if !i.overwrite {
			i.logger.Info("tournament already imported", slog.String("tournament", idx.Slug))
			summary.SkippedTournaments++
			return nil
		}
		i.logger.Info("replacing tournament", slog.String("tournament", idx.Slug))
		if err := i.store.DeleteTournament(ctx, existing.ID); err != nil {
			return err
		}
	}

	ref, err := i.store.FindEditionByNames(ctx, idx.Set, idx.Edition)
	if err != nil {
		return err
	}
	if ref == nil {
		i.logger.Warn("question set edition not imported",
			slog.String("tournament", idx.Slug),
			slog.String("set", idx.Set), slog.String("edition", idx.Edition))
		summary.SkippedTournaments++
		return nil
	}

	tournamentID, err := i.store.InsertTournament(ctx, &store.Tournament{
		Name:      idx.Name,
		Slug:      idx.Slug,
		EditionID: ref.EditionID,
		Location:  idx.Location,
		Level:     idx.Level,
		StartDate: idx.StartDate,
		EndDate:   idx.EndDate,
	})
	if err != nil {
		return err
	}
	summary.Tournaments++

	i.logger.Info("importing tournament",
		slog.String("tournament", idx.Slug),
		slog.String("set", idx.Set), slog.String("edition", idx.Edition))

	res := newResolution(i.store, i.logger, summary, tournamentID, ref, idx.ExcludedRounds)

	if len(idx.Rounds) > 0 {
		return i.importCSV(ctx, dir, idx, res, summary)
	}

	gamesDir := filepath.Join(dir, gameFilesDirName)
	if _, err := os.Stat(gamesDir); errors.Is(err, fs.ErrNotExist) {
		i.logger.Warn("skipping tournament without game files", slog.String("tournament", idx.Slug))
		return nil
	}
	return i.importGameFiles(ctx, gamesDir, idx, res, summary)
}

// skipEntry filters artifacts that appear in hand-maintained data trees.
func skipEntry(name string) bool {
	return strings.HasSuffix(name, "DS_Store") || strings.HasSuffix(name, "zip")
}
