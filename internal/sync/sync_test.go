package sync

import (
	"context"
	"database/sql"
	"testing"

	"lol-sync/internal/api"
	"lol-sync/internal/database"
	"lol-sync/internal/db"
	"lol-sync/internal/domain"
	"lol-sync/internal/repository"

	"github.com/rs/zerolog"
)

type syncEnv struct {
	sqlDB      *sql.DB
	players    *repository.PlayerRepository
	targets    *repository.ScoutingTargetRepository
	matches    *repository.MatchRepository
	aggregates *repository.ChampionAggregateRepository
}

func newSyncEnv(t *testing.T) *syncEnv {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	sqlDB.SetMaxOpenConns(1)

	logger := zerolog.Nop()
	if err := database.Migrate(sqlDB, logger); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	queries := db.New(sqlDB)
	return &syncEnv{
		sqlDB:      sqlDB,
		players:    repository.NewPlayerRepository(sqlDB, queries, logger),
		targets:    repository.NewScoutingTargetRepository(sqlDB, queries, logger),
		matches:    repository.NewMatchRepository(sqlDB, queries, logger),
		aggregates: repository.NewChampionAggregateRepository(sqlDB, queries, logger),
	}
}

func (e *syncEnv) count(t *testing.T, query string, args ...any) int {
	t.Helper()
	var n int
	if err := e.sqlDB.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return n
}

func (e *syncEnv) seedPlayer(t *testing.T, p *domain.Player) *domain.Player {
	t.Helper()
	if err := e.players.Create(context.Background(), p); err != nil {
		t.Fatalf("failed to seed player: %v", err)
	}
	return p
}

// fakeRiot is a canned provider. Account lookups hit the accounts map keyed
// by "name#tag"; everything else returns the stored value or error.
type fakeRiot struct {
	accounts       map[string]*api.Account
	accountLookups []string

	summoner    *api.Summoner
	summonerErr error

	entries    []api.LeagueEntry
	entriesErr error

	match    *api.Match
	matchErr error

	mastery    []api.ChampionMastery
	masteryErr error
}

func (f *fakeRiot) GetAccountByRiotID(_ context.Context, _, gameName, tagLine string) (*api.Account, error) {
	key := gameName + "#" + tagLine
	f.accountLookups = append(f.accountLookups, key)
	if a, ok := f.accounts[key]; ok {
		return a, nil
	}
	return nil, &api.Error{Kind: api.KindNotFound, Message: "account not found"}
}

func (f *fakeRiot) GetSummonerByPuuid(_ context.Context, _, _ string) (*api.Summoner, error) {
	return f.summoner, f.summonerErr
}

func (f *fakeRiot) GetLeagueEntriesByPuuid(_ context.Context, _, _ string) ([]api.LeagueEntry, error) {
	return f.entries, f.entriesErr
}

func (f *fakeRiot) GetMatchByID(_ context.Context, _, _ string) (*api.Match, error) {
	return f.match, f.matchErr
}

func (f *fakeRiot) GetChampionMasteryByPuuid(_ context.Context, _, _ string, _ int) ([]api.ChampionMastery, error) {
	return f.mastery, f.masteryErr
}

type fakeChampions map[int]string

func (f fakeChampions) Name(_ context.Context, id int) (string, bool, error) {
	name, ok := f[id]
	return name, ok, nil
}
