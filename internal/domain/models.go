package domain

import (
	"time"
)

type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncRunning SyncStatus = "syncing"
	SyncSuccess SyncStatus = "success"
	SyncError   SyncStatus = "error"
)

type Player struct {
	ID             string // nanoid
	OrganizationID string
	SummonerName   string
	Role           string
	Region         string
	Puuid          string
	SummonerID     string
	SummonerLevel  int

	SoloTier   string
	SoloRank   string
	SoloLP     int
	SoloWins   int
	SoloLosses int
	FlexTier   string
	FlexRank   string
	FlexLP     int

	PeakTier string
	PeakRank string

	SyncStatus    SyncStatus
	LastSyncAt    time.Time
	LastSyncError string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ScoutingTarget struct {
	ID             string
	OrganizationID string
	SummonerName   string
	Role           string
	Region         string
	Puuid          string
	SummonerID     string

	CurrentTier string
	CurrentRank string
	CurrentLP   int
	PeakTier    string
	PeakRank    string

	SyncStatus    SyncStatus
	LastSyncAt    time.Time
	LastSyncError string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Match struct {
	ID             string
	OrganizationID string
	RiotMatchID    string
	MatchType      string // "official" or "scrim"
	GameVersion    string
	GameStart      time.Time
	GameDuration   int // seconds
	Victory        *bool
	CreatedAt      time.Time
}

type ParticipantStat struct {
	ID       string
	MatchID  string
	PlayerID string

	Role     string
	Champion string

	Kills   int
	Deaths  int
	Assists int

	GoldEarned       int
	DamageDealt      int
	DamageTaken      int
	MinionsKilled    int
	JungleMinions    int
	VisionScore      int
	WardsPlaced      int
	WardsKilled      int
	ChampionLevel    int
	FirstBloodKill   bool
	DoubleKills      int
	TripleKills      int
	QuadraKills      int
	PentaKills       int
	Win              bool
	CSPerMin         float64
	DamageShare      float64
	PerformanceScore float64

	CreatedAt time.Time
}

// ChampionAggregate is the running per-(owner, champion) record. Owner is a
// player or a scouting target; the averages are true means over every stored
// participant row for that pair.
type ChampionAggregate struct {
	ID      string
	OwnerID string

	Champion    string
	GamesPlayed int
	GamesWon    int

	AverageKDA         float64
	AverageCSPerMin    float64
	AverageDamageShare float64

	MasteryLevel  int
	MasteryPoints int

	LastPlayed time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
