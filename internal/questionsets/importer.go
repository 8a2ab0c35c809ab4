package questionsets

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
	"quizdb/internal/metadata"
	"quizdb/internal/packetname"
	"quizdb/internal/slugs"
	"quizdb/internal/store"
)

const (
	indexFileName      = "index.json"
	editionsDirName    = "editions"
	packetFilesDirName = "packet_files"
)

// Summary counts what one import run touched.
type Summary struct {
	Sets     int
	Editions int
	Packets  int
	Tossups  int
	Bonuses  int

	SkippedEditions  int
	SkippedQuestions int
}

// Importer walks the question-set tree and loads every edition into the
// store. Errors are isolated per unit: a bad packet never aborts its
// edition, a bad edition never aborts its set.
type Importer struct {
	cfg       *config.Config
	store     *store.Store
	logger    *slog.Logger
	table     metadata.Table
	bounds    packetname.Bounds
	overwrite bool
}

// NewImporter wires an importer against an open store. When overwrite is
// set, editions already in the database are deleted and re-imported instead
// of skipped.
func NewImporter(cfg *config.Config, st *store.Store, logger *slog.Logger, overwrite bool) (*Importer, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	table := metadata.DefaultTable()
	if cfg.CategoryTablePath != "" {
		loaded, err := metadata.LoadTable(cfg.CategoryTablePath)
		if err != nil {
			return nil, err
		}
		table = loaded
	}

	return &Importer{
		cfg:       cfg,
		store:     st,
		logger:    logger,
		table:     table,
		bounds:    packetname.Bounds{Min: cfg.PacketNumberMin, Max: cfg.PacketNumberMax},
		overwrite: overwrite,
	}, nil
}

// Run imports every question set under the configured tree root.
func (i *Importer) Run(ctx context.Context) (*Summary, error) {
	root := i.cfg.QuestionSetsPath()
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read question sets: %w", err)
	}

	summary := &Summary{}
	for _, entry := range entries {
		if skipEntry(entry.Name()) {
			continue
		}
		if err := i.importSet(ctx, filepath.Join(root, entry.Name()), summary); err != nil {
			i.logger.Error("question set import failed",
				slog.String("set", entry.Name()), logging.Error(err))
		}
	}
	return summary, nil
}

func (i *Importer) importSet(ctx context.Context, dir string, summary *Summary) error {
	var idx setIndex
	if err := readJSON(filepath.Join(dir, indexFileName), &idx); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			i.logger.Warn("skipping folder without index.json", slog.String("path", dir))
			return nil
		}
		return err
	}

	style, err := metadata.ParseStyle(idx.MetadataStyle)
	if err != nil {
		// Questions still import with empty taxonomy fields.
		i.logger.Warn("unknown metadata style",
			slog.String("set", idx.Slug), slog.String("style", idx.MetadataStyle))
		style = metadata.Style(idx.MetadataStyle)
	}

	setID, err := i.ensureQuestionSet(ctx, idx)
	if err != nil {
		return err
	}

	editionsDir := filepath.Join(dir, editionsDirName)
	entries, err := os.ReadDir(editionsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			i.logger.Warn("skipping set without editions folder", slog.String("set", idx.Slug))
			return nil
		}
		return err
	}

	summary.Sets++

	// One slug scope per set, shared across its editions within a run.
	dict := slugs.NewDictionary()
	for _, entry := range entries {
		if skipEntry(entry.Name()) {
			continue
		}
		if err := i.importEdition(ctx, setID, idx, style, filepath.Join(editionsDir, entry.Name()), dict, summary); err != nil {
			i.logger.Error("edition import failed",
				slog.String("set", idx.Slug), slog.String("edition", entry.Name()), logging.Error(err))
		}
	}
	return nil
}

func (i *Importer) ensureQuestionSet(ctx context.Context, idx setIndex) (int64, error) {
	existing, err := i.store.FindQuestionSetBySlug(ctx, idx.Slug)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.ID, nil
	}
	return i.store.InsertQuestionSet(ctx, &store.QuestionSet{
		Name:       idx.Name,
		Slug:       idx.Slug,
		Difficulty: idx.Difficulty,
		Format:     idx.format(),
		HasBonuses: idx.hasBonuses(),
	})
}

func (i *Importer) importEdition(ctx context.Context, setID int64, set setIndex, style metadata.Style, dir string, dict slugs.Dictionary, summary *Summary) error {
	var idx editionIndex
	if err := readJSON(filepath.Join(dir, indexFileName), &idx); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			i.logger.Warn("skipping edition without index.json", slog.String("path", dir))
			return nil
		}
		return err
	}

	packetsDir := filepath.Join(dir, packetFilesDirName)
	packetEntries, err := os.ReadDir(packetsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			i.logger.Warn("skipping edition without packet files",
				slog.String("set", set.Slug), slog.String("edition", idx.Slug))
			return nil
		}
		return err
	}

	existing, err := i.store.FindEdition(ctx, set.Slug, idx.Slug)
	if err != nil {
		return err
	}
	if existing != nil {
		if !i.overwrite {
			i.logger.Info("edition already imported",
				slog.String("set", set.Slug), slog.String("edition", idx.Slug))
			summary.SkippedEditions++
			return nil
		}
		i.logger.Info("replacing edition",
			slog.String("set", set.Slug), slog.String("edition", idx.Slug))
		if err := i.store.DeleteEditionSubtree(ctx, existing.ID); err != nil {
			return err
		}
	}

	editionID, err := i.store.InsertEdition(ctx, &store.Edition{
		QuestionSetID: setID, Name: idx.Name, Slug: idx.Slug, Date: idx.Date,
	})
	if err != nil {
		return err
	}
	summary.Editions++

	position := 0
	for _, entry := range packetEntries {
		if skipEntry(entry.Name()) {
			continue
		}
		position++
		if err := i.importPacket(ctx, editionID, set, style, filepath.Join(packetsDir, entry.Name()), position, dict, summary); err != nil {
			i.logger.Error("packet import failed",
				slog.String("edition", idx.Slug), slog.String("file", entry.Name()), logging.Error(err))
		}
	}
	return nil
}

func (i *Importer) importPacket(ctx context.Context, editionID int64, set setIndex, style metadata.Style, path string, position int, dict slugs.Dictionary, summary *Summary) error {
	var doc packetDocument
	if err := readJSON(path, &doc); err != nil {
		return err
	}

	name := strings.TrimSuffix(filepath.Base(path), ".json")
	ident, recognized := packetname.Resolve(name, position, i.bounds)
	if !recognized {
		i.logger.Warn("packet label not recognized, using position",
			slog.String("file", name), slog.Int("position", position))
	}

	packetID, err := i.store.InsertPacket(ctx, &store.Packet{
		EditionID: editionID, Name: name, Descriptor: ident.Descriptor, Number: ident.Number,
	})
	if err != nil {
		return err
	}
	summary.Packets++

	i.logger.Info("importing packet",
		slog.String("set", set.Slug), slog.Int("number", ident.Number),
		slog.String("descriptor", ident.Descriptor), slog.String("file", name))

	for idx, tossup := range doc.Tossups {
		number := idx + 1
		if tossup.Metadata == "" && style != metadata.StyleNone {
			i.logger.Warn("tossup missing metadata",
				slog.String("packet", name), slog.Int("question", number))
			summary.SkippedQuestions++
			continue
		}
		fields, _ := metadata.Parse(tossup.Metadata, style, set.authorFirst(), i.table)
		if err := i.upsertTossup(ctx, packetID, number, tossup, fields, dict); err != nil {
			i.logQuestionError(err, "tossup", name, number)
			summary.SkippedQuestions++
			continue
		}
		summary.Tossups++
	}

	if !set.hasBonuses() {
		return nil
	}

	for idx, bonus := range doc.Bonuses {
		number := idx + 1
		if bonus.Metadata == "" && style != metadata.StyleNone {
			i.logger.Warn("bonus missing metadata",
				slog.String("packet", name), slog.Int("question", number))
			summary.SkippedQuestions++
			continue
		}
		fields, _ := metadata.Parse(bonus.Metadata, style, set.authorFirst(), i.table)
		if err := i.upsertBonus(ctx, packetID, number, bonus, fields, dict); err != nil {
			i.logQuestionError(err, "bonus", name, number)
			summary.SkippedQuestions++
			continue
		}
		summary.Bonuses++
	}
	return nil
}

func (i *Importer) logQuestionError(err error, kind, packet string, number int) {
	attrs := []any{slog.String("packet", packet), slog.Int("question", number), logging.Error(err)}
	if errors.Is(err, ErrEmptySlug) || errors.Is(err, ErrDifficultyModifiers) || errors.Is(err, ErrMalformedBonus) {
		i.logger.Warn("skipping "+kind, attrs...)
		return
	}
	i.logger.Error(kind+" insert failed", attrs...)
}

// skipEntry filters artifacts that appear in hand-maintained data trees.
func skipEntry(name string) bool {
	return strings.HasSuffix(name, "DS_Store") || strings.HasSuffix(name, "zip")
}
