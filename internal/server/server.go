package server

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"lol-sync/internal/api"
	"lol-sync/internal/config"
	"lol-sync/internal/jobs"
	"lol-sync/internal/middleware"
	"lol-sync/internal/region"
	"lol-sync/internal/repository"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

const maxMatchImport = 100

// Enqueuer hands a job to the worker pool. *jobs.Pool satisfies it.
type Enqueuer interface {
	Enqueue(jobs.Job) error
}

// MatchLister is the one provider call the trigger surface makes itself.
type MatchLister interface {
	GetMatchIDsByPuuid(ctx context.Context, cluster, puuid string, start, count int) ([]string, error)
}

// SyncServer exposes the enqueue endpoints. It never runs a sync inline:
// every trigger becomes a queued job and the response is 202.
type SyncServer struct {
	cfg        *config.Config
	pool       Enqueuer
	client     MatchLister
	players    *repository.PlayerRepository
	aggregates *repository.ChampionAggregateRepository
	db         *sql.DB
	logger     zerolog.Logger
}

func NewSyncServer(cfg *config.Config, pool *jobs.Pool, client *api.RiotClient, players *repository.PlayerRepository, aggregates *repository.ChampionAggregateRepository, sqlDB *sql.DB, logger zerolog.Logger) *SyncServer {
	return &SyncServer{
		cfg:        cfg,
		pool:       pool,
		client:     client,
		players:    players,
		aggregates: aggregates,
		db:         sqlDB,
		logger:     logger,
	}
}

// Handler builds the full middleware-wrapped mux.
func (s *SyncServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/sync/match", s.handleMatchSync)
	mux.HandleFunc("POST /v1/sync/player/{id}", s.handlePlayerSync)
	mux.HandleFunc("POST /v1/sync/player/{id}/matches", s.handleImportMatches)
	mux.HandleFunc("POST /v1/sync/target/{id}", s.handleTargetSync)
	mux.HandleFunc("GET /v1/players/{id}/champions", s.handleListChampions)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.RequestID(s.logger)(c.Handler(mux))
}

type championStats struct {
	Champion           string    `json:"champion"`
	GamesPlayed        int       `json:"gamesPlayed"`
	GamesWon           int       `json:"gamesWon"`
	AverageKDA         float64   `json:"averageKda"`
	AverageCSPerMin    float64   `json:"averageCsPerMin"`
	AverageDamageShare float64   `json:"averageDamageShare"`
	MasteryLevel       int       `json:"masteryLevel"`
	MasteryPoints      int       `json:"masteryPoints"`
	LastPlayed         time.Time `json:"lastPlayed"`
}

type matchSyncRequest struct {
	MatchID        string `json:"matchId"`
	OrganizationID string `json:"organizationId"`
	Region         string `json:"region"`
}

func (s *SyncServer) handleMatchSync(w http.ResponseWriter, r *http.Request) {
	var req matchSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MatchID == "" || req.OrganizationID == "" {
		writeError(w, http.StatusBadRequest, "matchId and organizationId are required")
		return
	}
	if req.Region == "" {
		req.Region = s.cfg.DefaultRegion
	}
	if _, err := region.Resolve(req.Region); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.enqueue(w, jobs.MatchSync{
		RiotMatchID:    req.MatchID,
		OrganizationID: req.OrganizationID,
		Region:         req.Region,
	})
}

func (s *SyncServer) handlePlayerSync(w http.ResponseWriter, r *http.Request) {
	s.enqueue(w, jobs.PlayerSync{PlayerID: r.PathValue("id")})
}

func (s *SyncServer) handleTargetSync(w http.ResponseWriter, r *http.Request) {
	s.enqueue(w, jobs.ScoutingTargetSync{TargetID: r.PathValue("id")})
}

// handleImportMatches lists a player's recent provider matches and enqueues
// one ingestion job per id. The listing happens inline because the response
// reports how many jobs were queued.
func (s *SyncServer) handleImportMatches(w http.ResponseWriter, r *http.Request) {
	player, err := s.players.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}
	if player.Puuid == "" {
		writeError(w, http.StatusConflict, "player has no resolved puuid, run a player sync first")
		return
	}

	route, err := region.Resolve(player.Region)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	count := intQuery(r, "count", 20)
	if count > maxMatchImport {
		count = maxMatchImport
	}

	matchIDs, err := s.client.GetMatchIDsByPuuid(r.Context(), route.Cluster, player.Puuid, 0, count)
	if err != nil {
		status := http.StatusBadGateway
		if api.KindOf(err) == api.KindRateLimited {
			status = http.StatusTooManyRequests
		}
		writeError(w, status, "failed to list matches from provider")
		s.logger.Error().Err(err).Str("player_id", player.ID).Msg("match id listing failed")
		return
	}

	queued := 0
	for _, matchID := range matchIDs {
		job := jobs.MatchSync{
			RiotMatchID:    matchID,
			OrganizationID: player.OrganizationID,
			Region:         player.Region,
		}
		if err := s.pool.Enqueue(job); err != nil {
			s.logger.Warn().Err(err).Str("riot_match_id", matchID).Msg("dropped match import job")
			break
		}
		queued++
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"status": "queued",
		"found":  len(matchIDs),
		"queued": queued,
	})
}

func (s *SyncServer) handleListChampions(w http.ResponseWriter, r *http.Request) {
	player, err := s.players.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}

	aggregates, err := s.aggregates.ListByOwner(r.Context(), player.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load champion stats")
		s.logger.Error().Err(err).Str("player_id", player.ID).Msg("champion aggregate listing failed")
		return
	}

	out := make([]championStats, 0, len(aggregates))
	for _, agg := range aggregates {
		out = append(out, championStats{
			Champion:           agg.Champion,
			GamesPlayed:        agg.GamesPlayed,
			GamesWon:           agg.GamesWon,
			AverageKDA:         agg.AverageKDA,
			AverageCSPerMin:    agg.AverageCSPerMin,
			AverageDamageShare: agg.AverageDamageShare,
			MasteryLevel:       agg.MasteryLevel,
			MasteryPoints:      agg.MasteryPoints,
			LastPlayed:         agg.LastPlayed,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"champions": out})
}

func (s *SyncServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *SyncServer) enqueue(w http.ResponseWriter, job jobs.Job) {
	if err := s.pool.Enqueue(job); err != nil {
		writeError(w, http.StatusServiceUnavailable, "sync queue is full, try again later")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued", "job": job.Name()})
}

func intQuery(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
