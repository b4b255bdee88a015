package db

import (
	"context"
	"time"
)

const createScoutingTarget = `
INSERT INTO scouting_targets (
    id, organization_id, summoner_name, role, region, puuid, summoner_id,
    sync_status, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateScoutingTargetParams struct {
	ID             string
	OrganizationID string
	SummonerName   string
	Role           string
	Region         string
	Puuid          string
	SummonerID     string
	SyncStatus     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (q *Queries) CreateScoutingTarget(ctx context.Context, arg CreateScoutingTargetParams) error {
	_, err := q.db.ExecContext(ctx, createScoutingTarget,
		arg.ID, arg.OrganizationID, arg.SummonerName, arg.Role, arg.Region,
		arg.Puuid, arg.SummonerID, arg.SyncStatus, arg.CreatedAt, arg.UpdatedAt,
	)
	return err
}

const getScoutingTargetByID = `
SELECT id, organization_id, summoner_name, role, region, puuid, summoner_id,
    current_tier, current_rank, current_lp, peak_tier, peak_rank,
    sync_status, last_sync_at, last_sync_error, created_at, updated_at
FROM scouting_targets WHERE id = ?
`

func (q *Queries) GetScoutingTargetByID(ctx context.Context, id string) (ScoutingTarget, error) {
	row := q.db.QueryRowContext(ctx, getScoutingTargetByID, id)
	var t ScoutingTarget
	err := row.Scan(
		&t.ID, &t.OrganizationID, &t.SummonerName, &t.Role, &t.Region,
		&t.Puuid, &t.SummonerID,
		&t.CurrentTier, &t.CurrentRank, &t.CurrentLp, &t.PeakTier, &t.PeakRank,
		&t.SyncStatus, &t.LastSyncAt, &t.LastSyncError, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

const updateScoutingTargetIdentity = `
UPDATE scouting_targets
SET puuid = ?, summoner_id = ?, summoner_name = ?, updated_at = ?
WHERE id = ?
`

type UpdateScoutingTargetIdentityParams struct {
	Puuid        string
	SummonerID   string
	SummonerName string
	UpdatedAt    time.Time
	ID           string
}

func (q *Queries) UpdateScoutingTargetIdentity(ctx context.Context, arg UpdateScoutingTargetIdentityParams) error {
	_, err := q.db.ExecContext(ctx, updateScoutingTargetIdentity,
		arg.Puuid, arg.SummonerID, arg.SummonerName, arg.UpdatedAt, arg.ID,
	)
	return err
}

const updateScoutingTargetRanks = `
UPDATE scouting_targets
SET current_tier = ?, current_rank = ?, current_lp = ?,
    peak_tier = ?, peak_rank = ?, updated_at = ?
WHERE id = ?
`

type UpdateScoutingTargetRanksParams struct {
	CurrentTier string
	CurrentRank string
	CurrentLp   int64
	PeakTier    string
	PeakRank    string
	UpdatedAt   time.Time
	ID          string
}

func (q *Queries) UpdateScoutingTargetRanks(ctx context.Context, arg UpdateScoutingTargetRanksParams) error {
	_, err := q.db.ExecContext(ctx, updateScoutingTargetRanks,
		arg.CurrentTier, arg.CurrentRank, arg.CurrentLp,
		arg.PeakTier, arg.PeakRank, arg.UpdatedAt, arg.ID,
	)
	return err
}

const updateScoutingTargetSyncStatus = `
UPDATE scouting_targets
SET sync_status = ?, last_sync_at = ?, last_sync_error = ?, updated_at = ?
WHERE id = ?
`

type UpdateScoutingTargetSyncStatusParams struct {
	SyncStatus    string
	LastSyncAt    time.Time
	LastSyncError string
	UpdatedAt     time.Time
	ID            string
}

func (q *Queries) UpdateScoutingTargetSyncStatus(ctx context.Context, arg UpdateScoutingTargetSyncStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateScoutingTargetSyncStatus,
		arg.SyncStatus, arg.LastSyncAt, arg.LastSyncError, arg.UpdatedAt, arg.ID,
	)
	return err
}
