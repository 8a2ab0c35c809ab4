package questionsets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"quizdb/internal/metadata"
	"quizdb/internal/slugs"
	"quizdb/internal/store"
	"quizdb/internal/textutil"
)

// Slug sources are truncated before slugification so pathological answer
// lines do not produce unbounded slugs.
const (
	tossupSlugLimit    = 50
	bonusPartSlugLimit = 25
)

var (
	// ErrEmptySlug marks a question whose answer line slugifies to nothing.
	ErrEmptySlug = errors.New("answer slug empty")
	// ErrDifficultyModifiers marks a bonus without three distinct
	// difficulty modifiers.
	ErrDifficultyModifiers = errors.New("difficulty modifiers missing or not distinct")
	// ErrMalformedBonus marks a bonus whose parts and answers disagree.
	ErrMalformedBonus = errors.New("bonus parts and answers mismatched")
)

func digest(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// upsertTossup links a packet position to the content-addressed question for
// this tossup, inserting the question first when the digest is unseen.
func (i *Importer) upsertTossup(ctx context.Context, packetID int64, number int, doc tossupDocument, fields metadata.Fields, dict slugs.Dictionary) error {
	sanitized := textutil.RemoveTags(doc.Answer)
	base := textutil.Slugify(textutil.Truncate(textutil.ShortenAnswerline(sanitized), tossupSlugLimit))
	if base == "" {
		return ErrEmptySlug
	}

	hash := digest(doc.Question, doc.Answer, doc.Metadata)
	existing, err := i.store.FindTossupByHash(ctx, hash)
	if err != nil {
		return err
	}
	if existing != nil {
		return i.store.InsertPacketQuestion(ctx, packetID, number, existing.QuestionID)
	}

	ref, err := i.store.InsertTossupQuestion(ctx, hash,
		buildQuestion(dict.Assign(base), doc.Metadata, fields),
		&store.Tossup{
			Text:            doc.Question,
			Answer:          doc.Answer,
			AnswerSanitized: sanitized,
			AnswerPrimary:   textutil.ShortenAnswerline(sanitized),
		})
	if err != nil {
		return err
	}
	return i.store.InsertPacketQuestion(ctx, packetID, number, ref.QuestionID)
}

// upsertBonus validates and links one bonus the same way.
func (i *Importer) upsertBonus(ctx context.Context, packetID int64, number int, doc bonusDocument, fields metadata.Fields, dict slugs.Dictionary) error {
	base := textutil.Slugify(bonusSlugSource(doc.Answers))
	if base == "" {
		return ErrEmptySlug
	}
	if len(doc.Parts) != len(doc.Answers) {
		return fmt.Errorf("%w: %d parts, %d answers", ErrMalformedBonus, len(doc.Parts), len(doc.Answers))
	}
	if !distinctModifiers(doc.DifficultyModifiers) {
		return fmt.Errorf("%w: %v", ErrDifficultyModifiers, doc.DifficultyModifiers)
	}

	hash := digest(doc.Leadin, strings.Join(doc.Parts, ""), strings.Join(doc.Answers, ""), doc.Metadata)
	existing, err := i.store.FindBonusByHash(ctx, hash)
	if err != nil {
		return err
	}
	if existing != nil {
		return i.store.InsertPacketQuestion(ctx, packetID, number, existing.QuestionID)
	}

	parts := make([]store.BonusPart, 0, len(doc.Answers))
	for idx, answer := range doc.Answers {
		sanitized := textutil.RemoveTags(answer)
		part := store.BonusPart{
			PartNumber:         idx + 1,
			Text:               doc.Parts[idx],
			TextSanitized:      textutil.RemoveTags(doc.Parts[idx]),
			Answer:             answer,
			AnswerSanitized:    sanitized,
			AnswerPrimary:      textutil.ShortenAnswerline(sanitized),
			DifficultyModifier: string(doc.DifficultyModifiers[idx]),
		}
		if idx < len(doc.Values) {
			part.Value = doc.Values[idx]
		}
		parts = append(parts, part)
	}

	ref, err := i.store.InsertBonusQuestion(ctx, hash,
		buildQuestion(dict.Assign(base), doc.Metadata, fields),
		&store.Bonus{Leadin: doc.Leadin, LeadinSanitized: textutil.RemoveTags(doc.Leadin)},
		parts)
	if err != nil {
		return err
	}
	return i.store.InsertPacketQuestion(ctx, packetID, number, ref.QuestionID)
}

func bonusSlugSource(answers []string) string {
	shortened := make([]string, 0, len(answers))
	for _, answer := range answers {
		shortened = append(shortened, textutil.Truncate(textutil.ShortenAnswerline(textutil.RemoveTags(answer)), bonusPartSlugLimit))
	}
	return strings.Join(shortened, " ")
}

func distinctModifiers(modifiers []flexString) bool {
	seen := make(map[flexString]struct{}, len(modifiers))
	for _, m := range modifiers {
		seen[m] = struct{}{}
	}
	return len(seen) == 3
}

func buildQuestion(slug, metadataText string, f metadata.Fields) *store.Question {
	q := &store.Question{
		Slug:        slug,
		Metadata:    metadataText,
		Author:      f.Author,
		Editor:      f.Editor,
		Category:    f.Category,
		Subcategory: f.Subcategory,
	}
	if f.Category != "" {
		q.CategorySlug = textutil.Slugify(f.Category)
	}
	if f.Subcategory != "" {
		q.SubcategorySlug = textutil.Slugify(f.Subcategory)
	}
	if f.Subsubcategory != "" {
		q.SubsubcategorySlug = textutil.Slugify(f.Subsubcategory)
	}
	return q
}
