package sync

import (
	"context"

	"lol-sync/internal/api"
)

// RiotAPI is the slice of the provider client the orchestrators call.
// *api.RiotClient satisfies it.
type RiotAPI interface {
	GetAccountByRiotID(ctx context.Context, cluster, gameName, tagLine string) (*api.Account, error)
	GetSummonerByPuuid(ctx context.Context, platform, puuid string) (*api.Summoner, error)
	GetLeagueEntriesByPuuid(ctx context.Context, platform, puuid string) ([]api.LeagueEntry, error)
	GetMatchByID(ctx context.Context, cluster, matchID string) (*api.Match, error)
	GetChampionMasteryByPuuid(ctx context.Context, platform, puuid string, top int) ([]api.ChampionMastery, error)
}

// ChampionNamer maps provider champion ids to display names.
// *api.ChampionTable satisfies it.
type ChampionNamer interface {
	Name(ctx context.Context, id int) (string, bool, error)
}
