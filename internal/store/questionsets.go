package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// FindQuestionSetBySlug returns the set with the given slug, or nil.
func (s *Store) FindQuestionSetBySlug(ctx context.Context, slug string) (*QuestionSet, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, slug, difficulty, format, bonuses FROM question_set WHERE slug = ?`, slug)

	var qs QuestionSet
	var difficulty sql.NullString
	var bonuses int
	err := row.Scan(&qs.ID, &qs.Name, &qs.Slug, &difficulty, &qs.Format, &bonuses)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find question set: %w", err)
	}
	qs.Difficulty = difficulty.String
	qs.HasBonuses = bonuses != 0
	return &qs, nil
}

// InsertQuestionSet stores a new question set and returns its id.
func (s *Store) InsertQuestionSet(ctx context.Context, qs *QuestionSet) (int64, error) {
	id, err := s.insertReturningID(ctx,
		`INSERT INTO question_set (name, slug, difficulty, format, bonuses) VALUES (?, ?, ?, ?, ?)`,
		qs.Name, qs.Slug, nullableString(qs.Difficulty), qs.Format, boolToInt(qs.HasBonuses))
	if err != nil {
		return 0, fmt.Errorf("insert question set: %w", err)
	}
	return id, nil
}

// FindEdition resolves an edition by its natural key (set slug, edition
// slug), returning nil when absent.
func (s *Store) FindEdition(ctx context.Context, setSlug, editionSlug string) (*Edition, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT question_set_edition.id, question_set_edition.question_set_id,
               question_set_edition.name, question_set_edition.slug, question_set_edition.date
        FROM question_set_edition
        JOIN question_set ON question_set_id = question_set.id
        WHERE question_set.slug = ? AND question_set_edition.slug = ?`,
		setSlug, editionSlug)

	var ed Edition
	var date sql.NullString
	err := row.Scan(&ed.ID, &ed.QuestionSetID, &ed.Name, &ed.Slug, &date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find edition: %w", err)
	}
	ed.Date = date.String
	return &ed, nil
}

// FindEditionByNames resolves a set/edition pair by display names, the form
// tournament indexes reference them in. Returns nil when absent.
func (s *Store) FindEditionByNames(ctx context.Context, setName, editionName string) (*EditionRef, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT question_set.id, question_set_edition.id
        FROM question_set
        JOIN question_set_edition ON question_set.id = question_set_id
        WHERE question_set.name = ? AND question_set_edition.name = ?`,
		setName, editionName)

	var ref EditionRef
	err := row.Scan(&ref.QuestionSetID, &ref.EditionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find edition by names: %w", err)
	}
	return &ref, nil
}

// InsertEdition stores a new edition and returns its id.
func (s *Store) InsertEdition(ctx context.Context, ed *Edition) (int64, error) {
	id, err := s.insertReturningID(ctx,
		`INSERT INTO question_set_edition (question_set_id, name, slug, date) VALUES (?, ?, ?, ?)`,
		ed.QuestionSetID, ed.Name, ed.Slug, nullableString(ed.Date))
	if err != nil {
		return 0, fmt.Errorf("insert edition: %w", err)
	}
	return id, nil
}

// DeleteEditionSubtree removes an edition together with its packets, the
// tournament rounds bound to them, and every question reachable only
// through this edition. Questions shared with packets of other editions
// survive, keeping cross-edition content addressing intact.
func (s *Store) DeleteEditionSubtree(ctx context.Context, editionID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        DELETE FROM question WHERE id IN (
            SELECT question_id FROM packet_question
            WHERE packet_id IN (SELECT id FROM packet WHERE question_set_edition_id = ?)
        ) AND id NOT IN (
            SELECT question_id FROM packet_question
            WHERE packet_id NOT IN (SELECT id FROM packet WHERE question_set_edition_id = ?)
        )`, editionID, editionID); err != nil {
		return fmt.Errorf("delete edition questions: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM question_set_edition WHERE id = ?`, editionID); err != nil {
		return fmt.Errorf("delete edition: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit edition delete: %w", err)
	}
	return nil
}

// InsertPacket stores a new packet and returns its id.
func (s *Store) InsertPacket(ctx context.Context, p *Packet) (int64, error) {
	id, err := s.insertReturningID(ctx,
		`INSERT INTO packet (question_set_edition_id, name, descriptor, number) VALUES (?, ?, ?, ?)`,
		p.EditionID, p.Name, nullableString(p.Descriptor), p.Number)
	if err != nil {
		return 0, fmt.Errorf("insert packet: %w", err)
	}
	return id, nil
}

// FindTossupByHash returns the question identity a tossup digest maps to,
// or nil when the content has not been seen.
func (s *Store) FindTossupByHash(ctx context.Context, hash string) (*QuestionRef, error) {
	return s.findHash(ctx, `SELECT question_id, tossup_id FROM tossup_hash WHERE hash = ?`, hash)
}

// FindBonusByHash returns the question identity a bonus digest maps to, or
// nil when the content has not been seen.
func (s *Store) FindBonusByHash(ctx context.Context, hash string) (*QuestionRef, error) {
	return s.findHash(ctx, `SELECT question_id, bonus_id FROM bonus_hash WHERE hash = ?`, hash)
}

func (s *Store) findHash(ctx context.Context, query, hash string) (*QuestionRef, error) {
	row := s.db.QueryRowContext(ctx, query, hash)
	var ref QuestionRef
	err := row.Scan(&ref.QuestionID, &ref.ExtensionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find question hash: %w", err)
	}
	return &ref, nil
}

// InsertTossupQuestion stores a Question, its Tossup extension, and the
// digest mapping in one transaction.
func (s *Store) InsertTossupQuestion(ctx context.Context, hash string, q *Question, t *Tossup) (*QuestionRef, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tossup tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	questionID, err := insertQuestionTx(ctx, tx, q)
	if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO tossup (question_id, question, answer, answer_sanitized, answer_primary) VALUES (?, ?, ?, ?, ?)`,
		questionID, t.Text, t.Answer, nullableString(t.AnswerSanitized), nullableString(t.AnswerPrimary))
	if err != nil {
		return nil, fmt.Errorf("insert tossup: %w", err)
	}
	tossupID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("tossup id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO tossup_hash (hash, question_id, tossup_id) VALUES (?, ?, ?)`,
		hash, questionID, tossupID); err != nil {
		return nil, fmt.Errorf("insert tossup hash: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tossup: %w", err)
	}
	return &QuestionRef{QuestionID: questionID, ExtensionID: tossupID}, nil
}

// InsertBonusQuestion stores a Question, its Bonus extension, all parts, and
// the digest mapping in one transaction, so a failure never leaves a bonus
// with a partial set of parts.
func (s *Store) InsertBonusQuestion(ctx context.Context, hash string, q *Question, b *Bonus, parts []BonusPart) (*QuestionRef, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin bonus tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	questionID, err := insertQuestionTx(ctx, tx, q)
	if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bonus (question_id, leadin, leadin_sanitized) VALUES (?, ?, ?)`,
		questionID, nullableString(b.Leadin), nullableString(b.LeadinSanitized))
	if err != nil {
		return nil, fmt.Errorf("insert bonus: %w", err)
	}
	bonusID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("bonus id: %w", err)
	}

	for _, part := range parts {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO bonus_part (bonus_id, part_number, part, part_sanitized, answer, answer_sanitized, answer_primary, value, difficulty_modifier)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			bonusID, part.PartNumber, part.Text, nullableString(part.TextSanitized),
			part.Answer, nullableString(part.AnswerSanitized), nullableString(part.AnswerPrimary),
			part.Value, nullableString(part.DifficultyModifier)); err != nil {
			return nil, fmt.Errorf("insert bonus part %d: %w", part.PartNumber, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO bonus_hash (hash, question_id, bonus_id) VALUES (?, ?, ?)`,
		hash, questionID, bonusID); err != nil {
		return nil, fmt.Errorf("insert bonus hash: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit bonus: %w", err)
	}
	return &QuestionRef{QuestionID: questionID, ExtensionID: bonusID}, nil
}

// InsertPacketQuestion binds a question to a position within a packet. Each
// appearance of a question gets its own join row, including reuse of an
// existing content-addressed question.
func (s *Store) InsertPacketQuestion(ctx context.Context, packetID int64, questionNumber int, questionID int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO packet_question (packet_id, question_number, question_id) VALUES (?, ?, ?)`,
		packetID, questionNumber, questionID)
	if err != nil {
		return fmt.Errorf("insert packet question: %w", err)
	}
	return nil
}

// ListEditionQuestionSlugs returns the slug of every question linked to an
// edition's packets, ordered by packet number and position.
func (s *Store) ListEditionQuestionSlugs(ctx context.Context, editionID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT question.slug
        FROM packet
        JOIN packet_question ON packet.id = packet_question.packet_id
        JOIN question ON packet_question.question_id = question.id
        WHERE packet.question_set_edition_id = ?
        ORDER BY packet.number, packet_question.question_number, packet_question.id`,
		editionID)
	if err != nil {
		return nil, fmt.Errorf("list edition slugs: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

func insertQuestionTx(ctx context.Context, tx *sql.Tx, q *Question) (int64, error) {
	res, err := tx.ExecContext(ctx, `
        INSERT INTO question (slug, metadata, author, editor, category, category_slug, subcategory, subcategory_slug, subsubcategory_slug)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.Slug, nullableString(q.Metadata), nullableString(q.Author), nullableString(q.Editor),
		nullableString(q.Category), nullableString(q.CategorySlug),
		nullableString(q.Subcategory), nullableString(q.SubcategorySlug),
		nullableString(q.SubsubcategorySlug))
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("question id: %w", err)
	}
	return id, nil
}
