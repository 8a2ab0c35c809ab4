package tournaments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"quizdb/internal/store"
	"quizdb/internal/textutil"
)

// ErrUnresolvedReference marks a result record that names something the
// question-set data does not contain.
var ErrUnresolvedReference = errors.New("unresolved reference")

// binding ties a tournament round to the packet it was played on.
type binding struct {
	roundID  int64
	packetID int64
}

// resolution is the per-tournament entity cache. Every name a result file
// mentions is resolved here exactly once; later mentions hit the cache so a
// tournament's worth of games stays at a bounded number of lookups.
type resolution struct {
	store   *store.Store
	logger  *slog.Logger
	summary *Summary

	tournamentID int64
	editionID    int64
	setID        int64
	excluded     map[int]bool

	// rounds is keyed by round number, then packet name, because a round
	// occasionally spans more than one packet.
	rounds  map[int]map[string]binding
	teams   map[string]int64
	players map[string]int64
	tossups map[string]int64
	bonuses map[string][]store.BonusPart
}

func newResolution(st *store.Store, logger *slog.Logger, summary *Summary, tournamentID int64, ref *store.EditionRef, excludedRounds []int) *resolution {
	excluded := make(map[int]bool, len(excludedRounds))
	for _, n := range excludedRounds {
		excluded[n] = true
	}
	return &resolution{
		store:        st,
		logger:       logger,
		summary:      summary,
		tournamentID: tournamentID,
		editionID:    ref.EditionID,
		setID:        ref.QuestionSetID,
		excluded:     excluded,
		rounds:       make(map[int]map[string]binding),
		teams:        make(map[string]int64),
		players:      make(map[string]int64),
		tossups:      make(map[string]int64),
		bonuses:      make(map[string][]store.BonusPart),
	}
}

// lookupRound returns the binding for a round/packet pair without creating
// anything.
func (r *resolution) lookupRound(number int, packetName string) (binding, bool) {
	b, ok := r.rounds[number][packetName]
	return b, ok
}

// resolveRound binds a round number to a packet, inserting the round row on
// first sight. A second packet under the same round number gets a synthetic
// round numbered number*100, keeping both packets addressable while real
// round numbers stay dense.
func (r *resolution) resolveRound(ctx context.Context, number int, packetName string) (binding, error) {
	if b, ok := r.rounds[number][packetName]; ok {
		return b, nil
	}

	packet, err := r.store.FindPacketByName(ctx, r.editionID, packetName)
	if err != nil {
		return binding{}, err
	}
	if packet == nil {
		return binding{}, fmt.Errorf("%w: packet %q in edition %d", ErrUnresolvedReference, packetName, r.editionID)
	}

	roundNumber := number
	if len(r.rounds[number]) > 0 {
		roundNumber = number * 100
		r.logger.Warn("multiple packets for round",
			slog.Int("round", number), slog.String("packet", packetName),
			slog.Int("synthesized_round", roundNumber))
	}

	roundID, err := r.store.InsertRound(ctx, &store.Round{
		TournamentID:               r.tournamentID,
		Number:                     roundNumber,
		PacketID:                   packet.ID,
		ExcludeFromIndividualStats: r.excluded[number],
	})
	if err != nil {
		return binding{}, err
	}

	if r.rounds[number] == nil {
		r.rounds[number] = make(map[string]binding)
	}
	b := binding{roundID: roundID, packetID: packet.ID}
	r.rounds[number][packetName] = b
	return b, nil
}

func (r *resolution) lookupTeam(name string) (int64, bool) {
	id, ok := r.teams[name]
	return id, ok
}

// resolveTeam returns the team id for a cleaned name, inserting on first
// sight.
func (r *resolution) resolveTeam(ctx context.Context, name string) (int64, error) {
	if id, ok := r.teams[name]; ok {
		return id, nil
	}
	id, err := r.store.InsertTeam(ctx, &store.Team{
		TournamentID: r.tournamentID,
		Name:         name,
		Slug:         textutil.Slugify(name),
	})
	if err != nil {
		return 0, err
	}
	r.teams[name] = id
	r.summary.Teams++
	return id, nil
}

// resolvePlayer returns the player id for a cleaned (team, player) pair,
// inserting on first sight. Two different people sharing a name within one
// question set's pool are told apart by team, and later arrivals get an
// ordinal slug suffix.
func (r *resolution) resolvePlayer(ctx context.Context, teamName, playerName string) (int64, error) {
	key := teamName + "-" + playerName
	if id, ok := r.players[key]; ok {
		return id, nil
	}

	teamID, err := r.resolveTeam(ctx, teamName)
	if err != nil {
		return 0, err
	}

	slug := textutil.Slugify(playerName)
	existing, err := r.store.FindPlayersByNameAndSet(ctx, playerName, r.setID)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		slug += "-" + strconv.Itoa(len(existing)+1)
		r.logger.Info("duplicate player name",
			slog.String("player", playerName),
			slog.String("team", teamName),
			slog.String("existing_teams", r.teamNames(ctx, existing)),
			slog.String("slug", slug))
	}

	id, err := r.store.InsertPlayer(ctx, &store.Player{
		TeamID:        teamID,
		Name:          playerName,
		Slug:          slug,
		QuestionSetID: r.setID,
	})
	if err != nil {
		return 0, err
	}
	r.players[key] = id
	r.summary.Players++
	return id, nil
}

func (r *resolution) lookupPlayer(teamName, playerName string) (int64, bool) {
	id, ok := r.players[teamName+"-"+playerName]
	return id, ok
}

// teamNames lists the distinct teams existing same-named players belong to,
// for the duplicate-player diagnostic.
func (r *resolution) teamNames(ctx context.Context, players []*store.Player) string {
	seen := make(map[string]bool)
	for _, p := range players {
		team, err := r.store.FindTeamByID(ctx, p.TeamID)
		if err != nil || team == nil {
			continue
		}
		seen[team.Name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// resolveTossup returns the tossup id at a packet position, or false when
// the packet has no tossup there.
func (r *resolution) resolveTossup(ctx context.Context, packetID int64, questionNumber int) (int64, bool, error) {
	key := positionKey(packetID, questionNumber)
	if id, ok := r.tossups[key]; ok {
		return id, true, nil
	}
	id, err := r.store.FindTossupID(ctx, packetID, questionNumber)
	if err != nil {
		return 0, false, err
	}
	if id == 0 {
		return 0, false, nil
	}
	r.tossups[key] = id
	return id, true, nil
}

// resolveBonusParts returns the bonus parts at a packet position. An empty
// slice means the packet has no bonus there.
func (r *resolution) resolveBonusParts(ctx context.Context, packetID int64, questionNumber int) ([]store.BonusPart, error) {
	key := positionKey(packetID, questionNumber)
	if parts, ok := r.bonuses[key]; ok {
		return parts, nil
	}
	parts, err := r.store.FindBonusParts(ctx, packetID, questionNumber)
	if err != nil {
		return nil, err
	}
	r.bonuses[key] = parts
	return parts, nil
}

func positionKey(packetID int64, questionNumber int) string {
	return strconv.FormatInt(packetID, 10) + "-" + strconv.Itoa(questionNumber)
}
