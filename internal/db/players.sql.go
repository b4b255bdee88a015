package db

import (
	"context"
	"time"
)

const createPlayer = `
INSERT INTO players (
    id, organization_id, summoner_name, role, region, puuid, summoner_id,
    sync_status, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreatePlayerParams struct {
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

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) error {
	_, err := q.db.ExecContext(ctx, createPlayer,
		arg.ID, arg.OrganizationID, arg.SummonerName, arg.Role, arg.Region,
		arg.Puuid, arg.SummonerID, arg.SyncStatus, arg.CreatedAt, arg.UpdatedAt,
	)
	return err
}

const getPlayerByID = `
SELECT id, organization_id, summoner_name, role, region, puuid, summoner_id,
    summoner_level, solo_tier, solo_rank, solo_lp, solo_wins, solo_losses,
    flex_tier, flex_rank, flex_lp, peak_tier, peak_rank,
    sync_status, last_sync_at, last_sync_error, created_at, updated_at
FROM players WHERE id = ?
`

func (q *Queries) GetPlayerByID(ctx context.Context, id string) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayerByID, id)
	var p Player
	err := row.Scan(
		&p.ID, &p.OrganizationID, &p.SummonerName, &p.Role, &p.Region,
		&p.Puuid, &p.SummonerID, &p.SummonerLevel,
		&p.SoloTier, &p.SoloRank, &p.SoloLp, &p.SoloWins, &p.SoloLosses,
		&p.FlexTier, &p.FlexRank, &p.FlexLp, &p.PeakTier, &p.PeakRank,
		&p.SyncStatus, &p.LastSyncAt, &p.LastSyncError, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

const updatePlayerIdentity = `
UPDATE players
SET puuid = ?, summoner_id = ?, summoner_name = ?, summoner_level = ?, updated_at = ?
WHERE id = ?
`

type UpdatePlayerIdentityParams struct {
	Puuid         string
	SummonerID    string
	SummonerName  string
	SummonerLevel int64
	UpdatedAt     time.Time
	ID            string
}

func (q *Queries) UpdatePlayerIdentity(ctx context.Context, arg UpdatePlayerIdentityParams) error {
	_, err := q.db.ExecContext(ctx, updatePlayerIdentity,
		arg.Puuid, arg.SummonerID, arg.SummonerName, arg.SummonerLevel, arg.UpdatedAt, arg.ID,
	)
	return err
}

const updatePlayerRanks = `
UPDATE players
SET solo_tier = ?, solo_rank = ?, solo_lp = ?, solo_wins = ?, solo_losses = ?,
    flex_tier = ?, flex_rank = ?, flex_lp = ?,
    peak_tier = ?, peak_rank = ?, updated_at = ?
WHERE id = ?
`

type UpdatePlayerRanksParams struct {
	SoloTier   string
	SoloRank   string
	SoloLp     int64
	SoloWins   int64
	SoloLosses int64
	FlexTier   string
	FlexRank   string
	FlexLp     int64
	PeakTier   string
	PeakRank   string
	UpdatedAt  time.Time
	ID         string
}

func (q *Queries) UpdatePlayerRanks(ctx context.Context, arg UpdatePlayerRanksParams) error {
	_, err := q.db.ExecContext(ctx, updatePlayerRanks,
		arg.SoloTier, arg.SoloRank, arg.SoloLp, arg.SoloWins, arg.SoloLosses,
		arg.FlexTier, arg.FlexRank, arg.FlexLp,
		arg.PeakTier, arg.PeakRank, arg.UpdatedAt, arg.ID,
	)
	return err
}

const updatePlayerSyncStatus = `
UPDATE players
SET sync_status = ?, last_sync_at = ?, last_sync_error = ?, updated_at = ?
WHERE id = ?
`

type UpdatePlayerSyncStatusParams struct {
	SyncStatus    string
	LastSyncAt    time.Time
	LastSyncError string
	UpdatedAt     time.Time
	ID            string
}

func (q *Queries) UpdatePlayerSyncStatus(ctx context.Context, arg UpdatePlayerSyncStatusParams) error {
	_, err := q.db.ExecContext(ctx, updatePlayerSyncStatus,
		arg.SyncStatus, arg.LastSyncAt, arg.LastSyncError, arg.UpdatedAt, arg.ID,
	)
	return err
}

const listPlayerPuuidsByOrganization = `
SELECT id, puuid FROM players
WHERE organization_id = ? AND puuid != ''
`

type PlayerPuuid struct {
	ID    string
	Puuid string
}

func (q *Queries) ListPlayerPuuidsByOrganization(ctx context.Context, organizationID string) ([]PlayerPuuid, error) {
	rows, err := q.db.QueryContext(ctx, listPlayerPuuidsByOrganization, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []PlayerPuuid
	for rows.Next() {
		var p PlayerPuuid
		if err := rows.Scan(&p.ID, &p.Puuid); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
