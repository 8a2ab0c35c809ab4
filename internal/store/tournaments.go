package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// FindTournamentBySlug returns the tournament with the given slug, or nil.
func (s *Store) FindTournamentBySlug(ctx context.Context, slug string) (*Tournament, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, name, slug, question_set_edition_id, location, level, start_date, end_date
        FROM tournament WHERE slug = ?`, slug)

	var t Tournament
	var location, level, start, end sql.NullString
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.EditionID, &location, &level, &start, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tournament: %w", err)
	}
	t.Location = location.String
	t.Level = level.String
	t.StartDate = start.String
	t.EndDate = end.String
	return &t, nil
}

// InsertTournament stores a new tournament and returns its id.
func (s *Store) InsertTournament(ctx context.Context, t *Tournament) (int64, error) {
	id, err := s.insertReturningID(ctx, `
        INSERT INTO tournament (name, slug, question_set_edition_id, location, level, start_date, end_date)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.Name, t.Slug, t.EditionID, nullableString(t.Location), nullableString(t.Level),
		nullableString(t.StartDate), nullableString(t.EndDate))
	if err != nil {
		return 0, fmt.Errorf("insert tournament: %w", err)
	}
	return id, nil
}

// DeleteTournament removes a tournament; rounds, teams, games, buzzes, and
// bonus results cascade with it.
func (s *Store) DeleteTournament(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tournament WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete tournament: %w", err)
	}
	return nil
}

// InsertRound stores a new round and returns its id.
func (s *Store) InsertRound(ctx context.Context, r *Round) (int64, error) {
	id, err := s.insertReturningID(ctx,
		`INSERT INTO round (tournament_id, number, packet_id, exclude_from_individual) VALUES (?, ?, ?, ?)`,
		r.TournamentID, r.Number, r.PacketID, boolToInt(r.ExcludeFromIndividualStats))
	if err != nil {
		return 0, fmt.Errorf("insert round: %w", err)
	}
	return id, nil
}

// ListRoundNumbers returns a tournament's round numbers in ascending order.
func (s *Store) ListRoundNumbers(ctx context.Context, tournamentID int64) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT number FROM round WHERE tournament_id = ? ORDER BY number`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	defer rows.Close()

	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

// InsertTeam stores a new team and returns its id.
func (s *Store) InsertTeam(ctx context.Context, t *Team) (int64, error) {
	id, err := s.insertReturningID(ctx,
		`INSERT INTO team (tournament_id, name, slug) VALUES (?, ?, ?)`,
		t.TournamentID, t.Name, t.Slug)
	if err != nil {
		return 0, fmt.Errorf("insert team: %w", err)
	}
	return id, nil
}

// InsertPlayer stores a new player and returns its id.
func (s *Store) InsertPlayer(ctx context.Context, p *Player) (int64, error) {
	id, err := s.insertReturningID(ctx,
		`INSERT INTO player (team_id, name, slug, question_set_id) VALUES (?, ?, ?, ?)`,
		p.TeamID, p.Name, p.Slug, p.QuestionSetID)
	if err != nil {
		return 0, fmt.Errorf("insert player: %w", err)
	}
	return id, nil
}

// FindPlayersByNameAndSet lists every player with this name in one question
// set's competitive pool, across all tournaments played on that set.
func (s *Store) FindPlayersByNameAndSet(ctx context.Context, name string, questionSetID int64) ([]*Player, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, team_id, name, slug, question_set_id FROM player WHERE name = ? AND question_set_id = ?`,
		name, questionSetID)
	if err != nil {
		return nil, fmt.Errorf("find players by name: %w", err)
	}
	defer rows.Close()

	var players []*Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.TeamID, &p.Name, &p.Slug, &p.QuestionSetID); err != nil {
			return nil, err
		}
		players = append(players, &p)
	}
	return players, rows.Err()
}

// FindTeamByID fetches a team by identifier, or nil.
func (s *Store) FindTeamByID(ctx context.Context, id int64) (*Team, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, tournament_id, name, slug FROM team WHERE id = ?`, id)
	var t Team
	err := row.Scan(&t.ID, &t.TournamentID, &t.Name, &t.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find team: %w", err)
	}
	return &t, nil
}

// FindPacketByName resolves a packet within an edition by its file-derived
// name, or nil.
func (s *Store) FindPacketByName(ctx context.Context, editionID int64, name string) (*Packet, error) {
	return s.findPacket(ctx,
		`SELECT id, question_set_edition_id, name, descriptor, number FROM packet WHERE question_set_edition_id = ? AND name = ?`,
		editionID, name)
}

// FindPacketByID fetches a packet within an edition by id, or nil.
func (s *Store) FindPacketByID(ctx context.Context, editionID, packetID int64) (*Packet, error) {
	return s.findPacket(ctx,
		`SELECT id, question_set_edition_id, name, descriptor, number FROM packet WHERE question_set_edition_id = ? AND id = ?`,
		editionID, packetID)
}

func (s *Store) findPacket(ctx context.Context, query string, args ...any) (*Packet, error) {
	row := s.db.QueryRowContext(ctx, query, args...)
	var p Packet
	var descriptor sql.NullString
	err := row.Scan(&p.ID, &p.EditionID, &p.Name, &descriptor, &p.Number)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find packet: %w", err)
	}
	p.Descriptor = descriptor.String
	return &p, nil
}

// FindTossupID resolves the tossup at a position within a packet. Returns 0
// when no tossup is bound to that position.
func (s *Store) FindTossupID(ctx context.Context, packetID int64, questionNumber int) (int64, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT tossup.id
        FROM packet_question
        JOIN question ON packet_question.question_id = question.id
        JOIN tossup ON question.id = tossup.question_id
        WHERE packet_id = ? AND question_number = ?`,
		packetID, questionNumber)

	var id int64
	err := row.Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find tossup: %w", err)
	}
	return id, nil
}

// FindBonusParts resolves the bonus parts at a position within a packet.
// An empty slice means no bonus is bound to that position.
func (s *Store) FindBonusParts(ctx context.Context, packetID int64, questionNumber int) ([]BonusPart, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT bonus_part.id, bonus_part.bonus_id, part_number
        FROM packet_question
        JOIN question ON packet_question.question_id = question.id
        JOIN bonus ON question.id = bonus.question_id
        JOIN bonus_part ON bonus.id = bonus_id
        WHERE packet_id = ? AND question_number = ?`,
		packetID, questionNumber)
	if err != nil {
		return nil, fmt.Errorf("find bonus parts: %w", err)
	}
	defer rows.Close()

	var parts []BonusPart
	for rows.Next() {
		var part BonusPart
		if err := rows.Scan(&part.ID, &part.BonusID, &part.PartNumber); err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, rows.Err()
}

// InsertGame stores a new game and returns its id.
func (s *Store) InsertGame(ctx context.Context, g *Game) (int64, error) {
	id, err := s.insertReturningID(ctx,
		`INSERT INTO game (round_id, tossups_read, team_one_id, team_two_id) VALUES (?, ?, ?, ?)`,
		g.RoundID, g.TossupsRead, g.TeamOneID, g.TeamTwoID)
	if err != nil {
		return 0, fmt.Errorf("insert game: %w", err)
	}
	return id, nil
}

// GameExists reports whether a game between the two teams is already
// recorded for a round, in the given seating order.
func (s *Store) GameExists(ctx context.Context, roundID, teamOneID, teamTwoID int64) (bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM game WHERE round_id = ? AND team_one_id = ? AND team_two_id = ?`,
		roundID, teamOneID, teamTwoID)
	var count int
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("check game: %w", err)
	}
	return count > 0, nil
}

// InsertBuzz stores one buzz event.
func (s *Store) InsertBuzz(ctx context.Context, b *Buzz) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO buzz (player_id, game_id, tossup_id, buzz_position, value) VALUES (?, ?, ?, ?, ?)`,
		b.PlayerID, b.GameID, b.TossupID, b.BuzzPosition, b.Value)
	if err != nil {
		return fmt.Errorf("insert buzz: %w", err)
	}
	return nil
}

// InsertBonusPartDirect stores one team's result on one bonus part.
func (s *Store) InsertBonusPartDirect(ctx context.Context, d *BonusPartDirect) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bonus_part_direct (team_id, game_id, bonus_part_id, value) VALUES (?, ?, ?, ?)`,
		d.TeamID, d.GameID, d.BonusPartID, d.Value)
	if err != nil {
		return fmt.Errorf("insert bonus part direct: %w", err)
	}
	return nil
}
