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

type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *PlayerRepository) Get(ctx context.Context, id string) (*domain.Player, error) {
	p, err := r.queries.GetPlayerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return playerToDomain(p), nil
}

func (r *PlayerRepository) Create(ctx context.Context, player *domain.Player) error {
	if player.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate player id: %w", err)
		}
		player.ID = id
	}
	now := time.Now()
	if player.SyncStatus == "" {
		player.SyncStatus = domain.SyncPending
	}

	err := r.queries.CreatePlayer(ctx, db.CreatePlayerParams{
		ID:             player.ID,
		OrganizationID: player.OrganizationID,
		SummonerName:   player.SummonerName,
		Role:           player.Role,
		Region:         player.Region,
		Puuid:          player.Puuid,
		SummonerID:     player.SummonerID,
		SyncStatus:     string(player.SyncStatus),
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	return mapUniqueViolation(err)
}

func (r *PlayerRepository) UpdateIdentity(ctx context.Context, player *domain.Player) error {
	return r.queries.UpdatePlayerIdentity(ctx, db.UpdatePlayerIdentityParams{
		Puuid:         player.Puuid,
		SummonerID:    player.SummonerID,
		SummonerName:  player.SummonerName,
		SummonerLevel: int64(player.SummonerLevel),
		UpdatedAt:     time.Now(),
		ID:            player.ID,
	})
}

func (r *PlayerRepository) UpdateRanks(ctx context.Context, player *domain.Player) error {
	return r.queries.UpdatePlayerRanks(ctx, db.UpdatePlayerRanksParams{
		SoloTier:   player.SoloTier,
		SoloRank:   player.SoloRank,
		SoloLp:     int64(player.SoloLP),
		SoloWins:   int64(player.SoloWins),
		SoloLosses: int64(player.SoloLosses),
		FlexTier:   player.FlexTier,
		FlexRank:   player.FlexRank,
		FlexLp:     int64(player.FlexLP),
		PeakTier:   player.PeakTier,
		PeakRank:   player.PeakRank,
		UpdatedAt:  time.Now(),
		ID:         player.ID,
	})
}

// SetSyncStatus records the outcome of a sync run. It is written on success
// and on failure alike so staleness detection keeps working after errors.
func (r *PlayerRepository) SetSyncStatus(ctx context.Context, id string, status domain.SyncStatus, syncErr string) error {
	now := time.Now()
	return r.queries.UpdatePlayerSyncStatus(ctx, db.UpdatePlayerSyncStatusParams{
		SyncStatus:    string(status),
		LastSyncAt:    now,
		LastSyncError: syncErr,
		UpdatedAt:     now,
		ID:            id,
	})
}

// PuuidsByOrganization maps puuid -> player id for every linked player of
// one organization.
func (r *PlayerRepository) PuuidsByOrganization(ctx context.Context, organizationID string) (map[string]string, error) {
	rows, err := r.queries.ListPlayerPuuidsByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	byPuuid := make(map[string]string, len(rows))
	for _, row := range rows {
		byPuuid[row.Puuid] = row.ID
	}
	return byPuuid, nil
}

func playerToDomain(p db.Player) *domain.Player {
	player := &domain.Player{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		SummonerName:   p.SummonerName,
		Role:           p.Role,
		Region:         p.Region,
		Puuid:          p.Puuid,
		SummonerID:     p.SummonerID,
		SummonerLevel:  int(p.SummonerLevel),
		SoloTier:       p.SoloTier,
		SoloRank:       p.SoloRank,
		SoloLP:         int(p.SoloLp),
		SoloWins:       int(p.SoloWins),
		SoloLosses:     int(p.SoloLosses),
		FlexTier:       p.FlexTier,
		FlexRank:       p.FlexRank,
		FlexLP:         int(p.FlexLp),
		PeakTier:       p.PeakTier,
		PeakRank:       p.PeakRank,
		SyncStatus:     domain.SyncStatus(p.SyncStatus),
		LastSyncError:  p.LastSyncError,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.LastSyncAt.Valid {
		player.LastSyncAt = p.LastSyncAt.Time
	}
	return player
}
