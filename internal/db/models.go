package db

import (
	"database/sql"
	"time"
)

type Player struct {
	ID             string
	OrganizationID string
	SummonerName   string
	Role           string
	Region         string
	Puuid          string
	SummonerID     string
	SummonerLevel  int64
	SoloTier       string
	SoloRank       string
	SoloLp         int64
	SoloWins       int64
	SoloLosses     int64
	FlexTier       string
	FlexRank       string
	FlexLp         int64
	PeakTier       string
	PeakRank       string
	SyncStatus     string
	LastSyncAt     sql.NullTime
	LastSyncError  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ScoutingTarget struct {
	ID             string
	OrganizationID string
	SummonerName   string
	Role           string
	Region         string
	Puuid          string
	SummonerID     string
	CurrentTier    string
	CurrentRank    string
	CurrentLp      int64
	PeakTier       string
	PeakRank       string
	SyncStatus     string
	LastSyncAt     sql.NullTime
	LastSyncError  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Match struct {
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

type ParticipantStat struct {
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

type ChampionAggregate struct {
	ID                 string
	OwnerID            string
	Champion           string
	GamesPlayed        int64
	GamesWon           int64
	AverageKda         float64
	AverageCsPerMin    float64
	AverageDamageShare float64
	MasteryLevel       int64
	MasteryPoints      int64
	LastPlayed         sql.NullTime
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
