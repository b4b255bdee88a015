package db

import (
	"context"
	"database/sql"
	"time"
)

const getMatchByRiotID = `
SELECT id, organization_id, riot_match_id, match_type, game_version,
    game_start, game_duration, victory, created_at
FROM matches WHERE riot_match_id = ?
`

func (q *Queries) GetMatchByRiotID(ctx context.Context, riotMatchID string) (Match, error) {
	row := q.db.QueryRowContext(ctx, getMatchByRiotID, riotMatchID)
	var m Match
	err := row.Scan(
		&m.ID, &m.OrganizationID, &m.RiotMatchID, &m.MatchType, &m.GameVersion,
		&m.GameStart, &m.GameDuration, &m.Victory, &m.CreatedAt,
	)
	return m, err
}

const createMatch = `
INSERT INTO matches (
    id, organization_id, riot_match_id, match_type, game_version,
    game_start, game_duration, victory, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateMatchParams struct {
	ID             string
	OrganizationID string
	RiotMatchID    string
	MatchType      string
	GameVersion    string
	GameStart      time.Time
	GameDuration   int64
	Victory        sql.NullBool
	CreatedAt      time.Time
}

func (q *Queries) CreateMatch(ctx context.Context, arg CreateMatchParams) error {
	_, err := q.db.ExecContext(ctx, createMatch,
		arg.ID, arg.OrganizationID, arg.RiotMatchID, arg.MatchType, arg.GameVersion,
		arg.GameStart, arg.GameDuration, arg.Victory, arg.CreatedAt,
	)
	return err
}

const createParticipantStat = `
INSERT INTO participant_stats (
    id, match_id, player_id, role, champion,
    kills, deaths, assists, gold_earned, damage_dealt, damage_taken,
    minions_killed, jungle_minions, vision_score, wards_placed, wards_killed,
    champion_level, first_blood_kill, double_kills, triple_kills, quadra_kills,
    penta_kills, win, cs_per_min, damage_share, performance_score, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateParticipantStatParams struct {
	ID               string
	MatchID          string
	PlayerID         string
	Role             string
	Champion         string
	Kills            int64
	Deaths           int64
	Assists          int64
	GoldEarned       int64
	DamageDealt      int64
	DamageTaken      int64
	MinionsKilled    int64
	JungleMinions    int64
	VisionScore      int64
	WardsPlaced      int64
	WardsKilled      int64
	ChampionLevel    int64
	FirstBloodKill   bool
	DoubleKills      int64
	TripleKills      int64
	QuadraKills      int64
	PentaKills       int64
	Win              bool
	CsPerMin         float64
	DamageShare      float64
	PerformanceScore float64
	CreatedAt        time.Time
}

func (q *Queries) CreateParticipantStat(ctx context.Context, arg CreateParticipantStatParams) error {
	_, err := q.db.ExecContext(ctx, createParticipantStat,
		arg.ID, arg.MatchID, arg.PlayerID, arg.Role, arg.Champion,
		arg.Kills, arg.Deaths, arg.Assists, arg.GoldEarned, arg.DamageDealt, arg.DamageTaken,
		arg.MinionsKilled, arg.JungleMinions, arg.VisionScore, arg.WardsPlaced, arg.WardsKilled,
		arg.ChampionLevel, arg.FirstBloodKill, arg.DoubleKills, arg.TripleKills, arg.QuadraKills,
		arg.PentaKills, arg.Win, arg.CsPerMin, arg.DamageShare, arg.PerformanceScore, arg.CreatedAt,
	)
	return err
}

const countParticipantStatsByMatch = `
SELECT COUNT(*) FROM participant_stats WHERE match_id = ?
`

func (q *Queries) CountParticipantStatsByMatch(ctx context.Context, matchID string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countParticipantStatsByMatch, matchID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const listStatsByPlayerChampion = `
SELECT ps.kills, ps.deaths, ps.assists, ps.cs_per_min, ps.damage_share, ps.win, m.game_start
FROM participant_stats ps
JOIN matches m ON m.id = ps.match_id
WHERE ps.player_id = ? AND ps.champion = ?
ORDER BY m.game_start
`

type PlayerChampionStat struct {
	Kills       int64
	Deaths      int64
	Assists     int64
	CsPerMin    float64
	DamageShare float64
	Win         bool
	GameStart   time.Time
}

func (q *Queries) ListStatsByPlayerChampion(ctx context.Context, playerID, champion string) ([]PlayerChampionStat, error) {
	rows, err := q.db.QueryContext(ctx, listStatsByPlayerChampion, playerID, champion)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []PlayerChampionStat
	for rows.Next() {
		var s PlayerChampionStat
		if err := rows.Scan(&s.Kills, &s.Deaths, &s.Assists, &s.CsPerMin, &s.DamageShare, &s.Win, &s.GameStart); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}
