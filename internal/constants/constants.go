package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	SyncJobTimeout     = 2 * time.Minute
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	// retry budget per failure kind
	RateLimitMaxAttempts = 5
	TransientMaxAttempts = 3
	TransientRetryDelay  = 1 * time.Minute
	RateLimitBackoffBase = 2 * time.Second
)

const (
	ChampionTableTTL = 7 * 24 * time.Hour
	MasteryTopN      = 10
)

const (
	ShutdownTimeout = 5 * time.Second
)
