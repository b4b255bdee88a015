package server

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lol-sync/internal/config"
	"lol-sync/internal/database"
	"lol-sync/internal/db"
	"lol-sync/internal/domain"
	"lol-sync/internal/jobs"
	"lol-sync/internal/repository"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

type fakeQueue struct {
	jobs []jobs.Job
	full bool
}

func (f *fakeQueue) Enqueue(j jobs.Job) error {
	if f.full {
		return jobs.ErrQueueFull
	}
	f.jobs = append(f.jobs, j)
	return nil
}

type fakeLister struct {
	ids []string
	err error
}

func (f *fakeLister) GetMatchIDsByPuuid(_ context.Context, _, _ string, _, count int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if count < len(f.ids) {
		return f.ids[:count], nil
	}
	return f.ids, nil
}

type serverEnv struct {
	srv        *SyncServer
	queue      *fakeQueue
	lister     *fakeLister
	players    *repository.PlayerRepository
	aggregates *repository.ChampionAggregateRepository
	handler    http.Handler
}

func newServerEnv(t *testing.T) *serverEnv {
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
	players := repository.NewPlayerRepository(sqlDB, queries, logger)
	aggregates := repository.NewChampionAggregateRepository(sqlDB, queries, logger)
	queue := &fakeQueue{}
	lister := &fakeLister{}
	srv := &SyncServer{
		cfg:        &config.Config{DefaultRegion: "BR"},
		pool:       queue,
		client:     lister,
		players:    players,
		aggregates: aggregates,
		db:         sqlDB,
		logger:     logger,
	}
	return &serverEnv{
		srv:        srv,
		queue:      queue,
		lister:     lister,
		players:    players,
		aggregates: aggregates,
		handler:    srv.Handler(),
	}
}

func (e *serverEnv) post(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func TestMatchTriggerEnqueuesWithDefaultRegion(t *testing.T) {
	env := newServerEnv(t)

	rec := env.post(t, "/v1/sync/match", `{"matchId":"BR1_42","organizationId":"org-1"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202; body %s", rec.Code, rec.Body.String())
	}
	if len(env.queue.jobs) != 1 {
		t.Fatalf("queued jobs = %d, want 1", len(env.queue.jobs))
	}
	job, ok := env.queue.jobs[0].(jobs.MatchSync)
	if !ok {
		t.Fatalf("job type = %T, want MatchSync", env.queue.jobs[0])
	}
	if job.RiotMatchID != "BR1_42" || job.OrganizationID != "org-1" || job.Region != "BR" {
		t.Errorf("unexpected job: %+v", job)
	}
}

func TestMatchTriggerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing match id", `{"organizationId":"org-1"}`},
		{"missing organization", `{"matchId":"BR1_42"}`},
		{"unknown region", `{"matchId":"BR1_42","organizationId":"org-1","region":"MOON"}`},
		{"garbage body", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newServerEnv(t)
			rec := env.post(t, "/v1/sync/match", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if len(env.queue.jobs) != 0 {
				t.Errorf("queued jobs = %d, want 0", len(env.queue.jobs))
			}
		})
	}
}

func TestQueueFullReturnsServiceUnavailable(t *testing.T) {
	env := newServerEnv(t)
	env.queue.full = true

	rec := env.post(t, "/v1/sync/player/p-1", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestPlayerAndTargetTriggers(t *testing.T) {
	env := newServerEnv(t)

	if rec := env.post(t, "/v1/sync/player/p-9", ""); rec.Code != http.StatusAccepted {
		t.Fatalf("player trigger status = %d, want 202", rec.Code)
	}
	if rec := env.post(t, "/v1/sync/target/t-3", ""); rec.Code != http.StatusAccepted {
		t.Fatalf("target trigger status = %d, want 202", rec.Code)
	}

	if j, ok := env.queue.jobs[0].(jobs.PlayerSync); !ok || j.PlayerID != "p-9" {
		t.Errorf("job 0 = %+v, want PlayerSync p-9", env.queue.jobs[0])
	}
	if j, ok := env.queue.jobs[1].(jobs.ScoutingTargetSync); !ok || j.TargetID != "t-3" {
		t.Errorf("job 1 = %+v, want ScoutingTargetSync t-3", env.queue.jobs[1])
	}
}

func TestImportMatchesQueuesOnePerID(t *testing.T) {
	env := newServerEnv(t)
	player := &domain.Player{
		OrganizationID: "org-1",
		SummonerName:   "Faker",
		Region:         "KR",
		Puuid:          "puuid-faker",
	}
	if err := env.players.Create(context.Background(), player); err != nil {
		t.Fatalf("failed to seed player: %v", err)
	}
	env.lister.ids = []string{"KR_1", "KR_2", "KR_3"}

	rec := env.post(t, "/v1/sync/player/"+player.ID+"/matches", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202; body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Found  int `json:"found"`
		Queued int `json:"queued"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Found != 3 || resp.Queued != 3 {
		t.Errorf("found/queued = %d/%d, want 3/3", resp.Found, resp.Queued)
	}
	for i, id := range env.lister.ids {
		job, ok := env.queue.jobs[i].(jobs.MatchSync)
		if !ok || job.RiotMatchID != id || job.OrganizationID != "org-1" || job.Region != "KR" {
			t.Errorf("job %d = %+v, want MatchSync for %s", i, env.queue.jobs[i], id)
		}
	}
}

func TestImportMatchesRequiresResolvedPuuid(t *testing.T) {
	env := newServerEnv(t)
	player := &domain.Player{OrganizationID: "org-1", SummonerName: "NewGuy", Region: "KR"}
	if err := env.players.Create(context.Background(), player); err != nil {
		t.Fatalf("failed to seed player: %v", err)
	}

	rec := env.post(t, "/v1/sync/player/"+player.ID+"/matches", "")
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestImportMatchesUnknownPlayer(t *testing.T) {
	env := newServerEnv(t)
	rec := env.post(t, "/v1/sync/player/missing/matches", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListChampions(t *testing.T) {
	env := newServerEnv(t)
	player := &domain.Player{
		OrganizationID: "org-1",
		SummonerName:   "Faker",
		Region:         "KR",
		Puuid:          "puuid-faker",
	}
	if err := env.players.Create(context.Background(), player); err != nil {
		t.Fatalf("failed to seed player: %v", err)
	}
	history := []repository.ChampionHistory{
		{Kills: 8, Deaths: 2, Assists: 4, CSPerMin: 8.5, DamageShare: 0.3, Win: true, GameStart: time.Now()},
	}
	if err := env.aggregates.RecomputeStats(context.Background(), player.ID, "Ahri", history); err != nil {
		t.Fatalf("failed to seed aggregate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/players/"+player.ID+"/champions", nil)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Champions []struct {
			Champion    string  `json:"champion"`
			GamesPlayed int     `json:"gamesPlayed"`
			AverageKDA  float64 `json:"averageKda"`
		} `json:"champions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Champions) != 1 {
		t.Fatalf("champions = %d, want 1", len(resp.Champions))
	}
	if c := resp.Champions[0]; c.Champion != "Ahri" || c.GamesPlayed != 1 || c.AverageKDA != 6.0 {
		t.Errorf("unexpected champion row: %+v", c)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/players/missing/champions", nil)
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown player status = %d, want 404", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	env := newServerEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
