package api

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"lol-sync/internal/constants"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// ChampionTable resolves provider champion ids to names using the static
// Data Dragon dataset. The table is cached in process and refreshed after
// ChampionTableTTL; Data Dragon is a CDN and sits outside the API-key
// request budget.
type ChampionTable struct {
	client  *fasthttp.Client
	logger  zerolog.Logger
	baseURL string

	mu        sync.Mutex
	byID      map[int]string
	fetchedAt time.Time
	ttl       time.Duration
}

func NewChampionTable(logger zerolog.Logger) *ChampionTable {
	return &ChampionTable{
		client: &fasthttp.Client{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		logger:  logger,
		baseURL: "https://ddragon.leagueoflegends.com",
		ttl:     constants.ChampionTableTTL,
	}
}

// Name returns the champion name for id, refreshing the cached table when
// stale. An id missing from the dataset reports ok=false without error.
func (t *ChampionTable) Name(ctx context.Context, id int) (string, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.byID == nil || time.Since(t.fetchedAt) > t.ttl {
		if err := t.refreshLocked(ctx); err != nil {
			if t.byID == nil {
				return "", false, err
			}
			// keep serving the stale table rather than failing mastery sync
			t.logger.Warn().Err(err).Msg("champion table refresh failed, serving stale data")
		}
	}

	name, ok := t.byID[id]
	return name, ok, nil
}

func (t *ChampionTable) refreshLocked(ctx context.Context) error {
	var versions []string
	if err := t.getJSON(ctx, t.baseURL+"/api/versions.json", &versions); err != nil {
		return fmt.Errorf("failed to fetch data dragon versions: %w", err)
	}
	if len(versions) == 0 {
		return fmt.Errorf("data dragon returned no versions")
	}

	var payload struct {
		Data map[string]struct {
			Key  string `json:"key"`
			Name string `json:"name"`
		} `json:"data"`
	}
	championsURL := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", t.baseURL, versions[0])
	if err := t.getJSON(ctx, championsURL, &payload); err != nil {
		return fmt.Errorf("failed to fetch champion dataset: %w", err)
	}

	byID := make(map[int]string, len(payload.Data))
	for _, champion := range payload.Data {
		id, err := strconv.Atoi(champion.Key)
		if err != nil {
			continue
		}
		byID[id] = champion.Name
	}

	t.byID = byID
	t.fetchedAt = time.Now()
	t.logger.Info().Int("champions", len(byID)).Str("version", versions[0]).Msg("champion table refreshed")
	return nil
}

func (t *ChampionTable) getJSON(ctx context.Context, requestURL string, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = t.client.DoDeadline(req, resp, deadline)
	} else {
		err = t.client.Do(req, resp)
	}
	if err != nil {
		return err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return fmt.Errorf("data dragon returned %d", resp.StatusCode())
	}
	return json.Unmarshal(resp.Body(), out)
}
