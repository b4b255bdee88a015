package fx

import (
	"database/sql"

	"lol-sync/internal/api"
	"lol-sync/internal/config"
	"lol-sync/internal/database"
	"lol-sync/internal/db"
	"lol-sync/internal/jobs"
	"lol-sync/internal/logger"
	"lol-sync/internal/repository"
	"lol-sync/internal/server"
	syncer "lol-sync/internal/sync"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideRiotAPI(client *api.RiotClient) syncer.RiotAPI {
	return client
}

func ProvideChampionNamer(table *api.ChampionTable) syncer.ChampionNamer {
	return table
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewScoutingTargetRepository),
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewChampionAggregateRepository),
	// provider clients
	fx.Provide(api.NewRiotClient),
	fx.Provide(api.NewChampionTable),
	fx.Provide(ProvideRiotAPI),
	fx.Provide(ProvideChampionNamer),
	// orchestrators
	fx.Provide(syncer.NewMatchSyncer),
	fx.Provide(syncer.NewPlayerSyncer),
	fx.Provide(syncer.NewScoutingTargetSyncer),
	// job host
	fx.Provide(jobs.NewExecutor),
	fx.Provide(jobs.NewPool),
	// server
	fx.Provide(server.NewSyncServer),
)
