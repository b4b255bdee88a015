package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lol-sync/internal/db"
	"lol-sync/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type ScoutingTargetRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewScoutingTargetRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ScoutingTargetRepository {
	return &ScoutingTargetRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *ScoutingTargetRepository) Get(ctx context.Context, id string) (*domain.ScoutingTarget, error) {
	t, err := r.queries.GetScoutingTargetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return scoutingTargetToDomain(t), nil
}

func (r *ScoutingTargetRepository) Create(ctx context.Context, target *domain.ScoutingTarget) error {
	if target.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate scouting target id: %w", err)
		}
		target.ID = id
	}
	now := time.Now()
	if target.SyncStatus == "" {
		target.SyncStatus = domain.SyncPending
	}

	err := r.queries.CreateScoutingTarget(ctx, db.CreateScoutingTargetParams{
		ID:             target.ID,
		OrganizationID: target.OrganizationID,
		SummonerName:   target.SummonerName,
		Role:           target.Role,
		Region:         target.Region,
		Puuid:          target.Puuid,
		SummonerID:     target.SummonerID,
		SyncStatus:     string(target.SyncStatus),
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	return mapUniqueViolation(err)
}

func (r *ScoutingTargetRepository) UpdateIdentity(ctx context.Context, target *domain.ScoutingTarget) error {
	return r.queries.UpdateScoutingTargetIdentity(ctx, db.UpdateScoutingTargetIdentityParams{
		Puuid:        target.Puuid,
		SummonerID:   target.SummonerID,
		SummonerName: target.SummonerName,
		UpdatedAt:    time.Now(),
		ID:           target.ID,
	})
}

func (r *ScoutingTargetRepository) UpdateRanks(ctx context.Context, target *domain.ScoutingTarget) error {
	return r.queries.UpdateScoutingTargetRanks(ctx, db.UpdateScoutingTargetRanksParams{
		CurrentTier: target.CurrentTier,
		CurrentRank: target.CurrentRank,
		CurrentLp:   int64(target.CurrentLP),
		PeakTier:    target.PeakTier,
		PeakRank:    target.PeakRank,
		UpdatedAt:   time.Now(),
		ID:          target.ID,
	})
}

func (r *ScoutingTargetRepository) SetSyncStatus(ctx context.Context, id string, status domain.SyncStatus, syncErr string) error {
	now := time.Now()
	return r.queries.UpdateScoutingTargetSyncStatus(ctx, db.UpdateScoutingTargetSyncStatusParams{
		SyncStatus:    string(status),
		LastSyncAt:    now,
		LastSyncError: syncErr,
		UpdatedAt:     now,
		ID:            id,
	})
}

func scoutingTargetToDomain(t db.ScoutingTarget) *domain.ScoutingTarget {
	target := &domain.ScoutingTarget{
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
		SummonerName:   t.SummonerName,
		Role:           t.Role,
		Region:         t.Region,
		Puuid:          t.Puuid,
		SummonerID:     t.SummonerID,
		CurrentTier:    t.CurrentTier,
		CurrentRank:    t.CurrentRank,
		CurrentLP:      int(t.CurrentLp),
		PeakTier:       t.PeakTier,
		PeakRank:       t.PeakRank,
		SyncStatus:     domain.SyncStatus(t.SyncStatus),
		LastSyncError:  t.LastSyncError,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if t.LastSyncAt.Valid {
		target.LastSyncAt = t.LastSyncAt.Time
	}
	return target
}
