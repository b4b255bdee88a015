package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lol-sync/internal/db"
	"lol-sync/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type MatchRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// GetByRiotID returns the stored match for an external match id, or nil when
// none exists yet. This is the cheap idempotency pre-check; the UNIQUE
// constraint on riot_match_id is the final guarantor.
func (r *MatchRepository) GetByRiotID(ctx context.Context, riotMatchID string) (*domain.Match, error) {
	m, err := r.queries.GetMatchByRiotID(ctx, riotMatchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return matchToDomain(m), nil
}

// Create inserts a new match record. A uniqueness violation on
// riot_match_id comes back as ErrAlreadyExists.
func (r *MatchRepository) Create(ctx context.Context, match *domain.Match) error {
	if match.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate match id: %w", err)
		}
		match.ID = id
	}
	if match.CreatedAt.IsZero() {
		match.CreatedAt = time.Now()
	}

	victory := sql.NullBool{}
	if match.Victory != nil {
		victory = sql.NullBool{Bool: *match.Victory, Valid: true}
	}

	err := r.queries.CreateMatch(ctx, db.CreateMatchParams{
		ID:             match.ID,
		OrganizationID: match.OrganizationID,
		RiotMatchID:    match.RiotMatchID,
		MatchType:      match.MatchType,
		GameVersion:    match.GameVersion,
		GameStart:      match.GameStart,
		GameDuration:   int64(match.GameDuration),
		Victory:        victory,
		CreatedAt:      match.CreatedAt,
	})
	return mapUniqueViolation(err)
}

// AddParticipant inserts one participant stat row. A duplicate
// (match, player) pair comes back as ErrAlreadyExists.
func (r *MatchRepository) AddParticipant(ctx context.Context, stat *domain.ParticipantStat) error {
	if stat.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate stat id: %w", err)
		}
		stat.ID = id
	}
	if stat.CreatedAt.IsZero() {
		stat.CreatedAt = time.Now()
	}

	err := r.queries.CreateParticipantStat(ctx, db.CreateParticipantStatParams{
		ID:               stat.ID,
		MatchID:          stat.MatchID,
		PlayerID:         stat.PlayerID,
		Role:             stat.Role,
		Champion:         stat.Champion,
		Kills:            int64(stat.Kills),
		Deaths:           int64(stat.Deaths),
		Assists:          int64(stat.Assists),
		GoldEarned:       int64(stat.GoldEarned),
		DamageDealt:      int64(stat.DamageDealt),
		DamageTaken:      int64(stat.DamageTaken),
		MinionsKilled:    int64(stat.MinionsKilled),
		JungleMinions:    int64(stat.JungleMinions),
		VisionScore:      int64(stat.VisionScore),
		WardsPlaced:      int64(stat.WardsPlaced),
		WardsKilled:      int64(stat.WardsKilled),
		ChampionLevel:    int64(stat.ChampionLevel),
		FirstBloodKill:   stat.FirstBloodKill,
		DoubleKills:      int64(stat.DoubleKills),
		TripleKills:      int64(stat.TripleKills),
		QuadraKills:      int64(stat.QuadraKills),
		PentaKills:       int64(stat.PentaKills),
		Win:              stat.Win,
		CsPerMin:         stat.CSPerMin,
		DamageShare:      stat.DamageShare,
		PerformanceScore: stat.PerformanceScore,
		CreatedAt:        stat.CreatedAt,
	})
	return mapUniqueViolation(err)
}

func (r *MatchRepository) CountParticipants(ctx context.Context, matchID string) (int, error) {
	count, err := r.queries.CountParticipantStatsByMatch(ctx, matchID)
	return int(count), err
}

// ChampionHistory is one stored row of a player's history on a champion,
// reduced to the counters the aggregate recompute needs.
type ChampionHistory struct {
	Kills       int
	Deaths      int
	Assists     int
	CSPerMin    float64
	DamageShare float64
	Win         bool
	GameStart   time.Time
}

func (r *MatchRepository) HistoryForChampion(ctx context.Context, playerID, champion string) ([]ChampionHistory, error) {
	rows, err := r.queries.ListStatsByPlayerChampion(ctx, playerID, champion)
	if err != nil {
		return nil, err
	}
	history := make([]ChampionHistory, len(rows))
	for i, row := range rows {
		history[i] = ChampionHistory{
			Kills:       int(row.Kills),
			Deaths:      int(row.Deaths),
			Assists:     int(row.Assists),
			CSPerMin:    row.CsPerMin,
			DamageShare: row.DamageShare,
			Win:         row.Win,
			GameStart:   row.GameStart,
		}
	}
	return history, nil
}

func matchToDomain(m db.Match) *domain.Match {
	match := &domain.Match{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		RiotMatchID:    m.RiotMatchID,
		MatchType:      m.MatchType,
		GameVersion:    m.GameVersion,
		GameStart:      m.GameStart,
		GameDuration:   int(m.GameDuration),
		CreatedAt:      m.CreatedAt,
	}
	if m.Victory.Valid {
		v := m.Victory.Bool
		match.Victory = &v
	}
	return match
}
