package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"lol-sync/internal/db"
	"lol-sync/internal/domain"
	"lol-sync/internal/score"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type ChampionAggregateRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewChampionAggregateRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ChampionAggregateRepository {
	return &ChampionAggregateRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *ChampionAggregateRepository) Get(ctx context.Context, ownerID, champion string) (*domain.ChampionAggregate, error) {
	a, err := r.queries.GetChampionAggregate(ctx, db.GetChampionAggregateParams{
		OwnerID:  ownerID,
		Champion: champion,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return aggregateToDomain(a), nil
}

func (r *ChampionAggregateRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.ChampionAggregate, error) {
	rows, err := r.queries.ListChampionAggregatesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	aggregates := make([]*domain.ChampionAggregate, len(rows))
	for i, row := range rows {
		aggregates[i] = aggregateToDomain(row)
	}
	return aggregates, nil
}

// RecomputeStats rebuilds the (owner, champion) aggregate from the full
// stored history rather than folding a delta into the previous averages.
// Averages stay true means no matter how many times a match is replayed
// through the pipeline.
func (r *ChampionAggregateRepository) RecomputeStats(ctx context.Context, ownerID, champion string, history []ChampionHistory) error {
	if len(history) == 0 {
		return nil
	}

	var (
		wins                  int
		kdaSum, csSum, dmgSum float64
		lastPlayed            time.Time
	)
	for _, h := range history {
		if h.Win {
			wins++
		}
		kdaSum += score.KDA(h.Kills, h.Deaths, h.Assists)
		csSum += h.CSPerMin
		dmgSum += h.DamageShare
		if h.GameStart.After(lastPlayed) {
			lastPlayed = h.GameStart
		}
	}
	n := float64(len(history))

	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate aggregate id: %w", err)
	}
	now := time.Now()

	return r.queries.UpsertChampionAggregateStats(ctx, db.UpsertChampionAggregateStatsParams{
		ID:                 id,
		OwnerID:            ownerID,
		Champion:           champion,
		GamesPlayed:        int64(len(history)),
		GamesWon:           int64(wins),
		AverageKda:         round2(kdaSum / n),
		AverageCsPerMin:    round2(csSum / n),
		AverageDamageShare: round2(dmgSum / n),
		LastPlayed:         sql.NullTime{Time: lastPlayed, Valid: !lastPlayed.IsZero()},
		CreatedAt:          now,
		UpdatedAt:          now,
	})
}

// SetMastery writes the mastery columns for an (owner, champion) pair
// without touching the match-derived averages. The row is created if the
// champion has mastery but no stored games yet.
func (r *ChampionAggregateRepository) SetMastery(ctx context.Context, ownerID, champion string, level, points int, lastPlayed time.Time) error {
	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate aggregate id: %w", err)
	}
	now := time.Now()

	return r.queries.UpsertChampionAggregateMastery(ctx, db.UpsertChampionAggregateMasteryParams{
		ID:            id,
		OwnerID:       ownerID,
		Champion:      champion,
		MasteryLevel:  int64(level),
		MasteryPoints: int64(points),
		LastPlayed:    sql.NullTime{Time: lastPlayed, Valid: !lastPlayed.IsZero()},
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func aggregateToDomain(a db.ChampionAggregate) *domain.ChampionAggregate {
	agg := &domain.ChampionAggregate{
		ID:                 a.ID,
		OwnerID:            a.OwnerID,
		Champion:           a.Champion,
		GamesPlayed:        int(a.GamesPlayed),
		GamesWon:           int(a.GamesWon),
		AverageKDA:         a.AverageKda,
		AverageCSPerMin:    a.AverageCsPerMin,
		AverageDamageShare: a.AverageDamageShare,
		MasteryLevel:       int(a.MasteryLevel),
		MasteryPoints:      int(a.MasteryPoints),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
	if a.LastPlayed.Valid {
		agg.LastPlayed = a.LastPlayed.Time
	}
	return agg
}
