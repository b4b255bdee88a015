package db

import (
	"context"
	"database/sql"
	"time"
)

const getChampionAggregate = `
SELECT id, owner_id, champion, games_played, games_won,
    average_kda, average_cs_per_min, average_damage_share,
    mastery_level, mastery_points, last_played, created_at, updated_at
FROM champion_aggregates WHERE owner_id = ? AND champion = ?
`

type GetChampionAggregateParams struct {
	OwnerID  string
	Champion string
}

func (q *Queries) GetChampionAggregate(ctx context.Context, arg GetChampionAggregateParams) (ChampionAggregate, error) {
	row := q.db.QueryRowContext(ctx, getChampionAggregate, arg.OwnerID, arg.Champion)
	var a ChampionAggregate
	err := row.Scan(
		&a.ID, &a.OwnerID, &a.Champion, &a.GamesPlayed, &a.GamesWon,
		&a.AverageKda, &a.AverageCsPerMin, &a.AverageDamageShare,
		&a.MasteryLevel, &a.MasteryPoints, &a.LastPlayed, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

const upsertChampionAggregateStats = `
INSERT INTO champion_aggregates (
    id, owner_id, champion, games_played, games_won,
    average_kda, average_cs_per_min, average_damage_share,
    last_played, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(owner_id, champion) DO UPDATE SET
    games_played = excluded.games_played,
    games_won = excluded.games_won,
    average_kda = excluded.average_kda,
    average_cs_per_min = excluded.average_cs_per_min,
    average_damage_share = excluded.average_damage_share,
    last_played = excluded.last_played,
    updated_at = excluded.updated_at
`

type UpsertChampionAggregateStatsParams struct {
	ID                 string
	OwnerID            string
	Champion           string
	GamesPlayed        int64
	GamesWon           int64
	AverageKda         float64
	AverageCsPerMin    float64
	AverageDamageShare float64
	LastPlayed         sql.NullTime
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (q *Queries) UpsertChampionAggregateStats(ctx context.Context, arg UpsertChampionAggregateStatsParams) error {
	_, err := q.db.ExecContext(ctx, upsertChampionAggregateStats,
		arg.ID, arg.OwnerID, arg.Champion, arg.GamesPlayed, arg.GamesWon,
		arg.AverageKda, arg.AverageCsPerMin, arg.AverageDamageShare,
		arg.LastPlayed, arg.CreatedAt, arg.UpdatedAt,
	)
	return err
}

const upsertChampionAggregateMastery = `
INSERT INTO champion_aggregates (
    id, owner_id, champion, mastery_level, mastery_points,
    last_played, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(owner_id, champion) DO UPDATE SET
    mastery_level = excluded.mastery_level,
    mastery_points = excluded.mastery_points,
    last_played = COALESCE(excluded.last_played, champion_aggregates.last_played),
    updated_at = excluded.updated_at
`

type UpsertChampionAggregateMasteryParams struct {
	ID            string
	OwnerID       string
	Champion      string
	MasteryLevel  int64
	MasteryPoints int64
	LastPlayed    sql.NullTime
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (q *Queries) UpsertChampionAggregateMastery(ctx context.Context, arg UpsertChampionAggregateMasteryParams) error {
	_, err := q.db.ExecContext(ctx, upsertChampionAggregateMastery,
		arg.ID, arg.OwnerID, arg.Champion, arg.MasteryLevel, arg.MasteryPoints,
		arg.LastPlayed, arg.CreatedAt, arg.UpdatedAt,
	)
	return err
}

const listChampionAggregatesByOwner = `
SELECT id, owner_id, champion, games_played, games_won,
    average_kda, average_cs_per_min, average_damage_share,
    mastery_level, mastery_points, last_played, created_at, updated_at
FROM champion_aggregates
WHERE owner_id = ?
ORDER BY games_played DESC, mastery_points DESC
`

func (q *Queries) ListChampionAggregatesByOwner(ctx context.Context, ownerID string) ([]ChampionAggregate, error) {
	rows, err := q.db.QueryContext(ctx, listChampionAggregatesByOwner, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ChampionAggregate
	for rows.Next() {
		var a ChampionAggregate
		if err := rows.Scan(
			&a.ID, &a.OwnerID, &a.Champion, &a.GamesPlayed, &a.GamesWon,
			&a.AverageKda, &a.AverageCsPerMin, &a.AverageDamageShare,
			&a.MasteryLevel, &a.MasteryPoints, &a.LastPlayed, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
