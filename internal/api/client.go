package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"lol-sync/internal/config"
	"lol-sync/internal/constants"
	"lol-sync/internal/telemetry"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/valyala/fasthttp"
)

const defaultRetryAfter = 120 * time.Second

type rawResult struct {
	body []byte
}

// RiotClient issues rate-limited calls against the Riot API and maps every
// failure into the typed taxonomy in errors.go. All concurrent callers share
// one Limiter because the budget is enforced per API key, not per caller.
type RiotClient struct {
	apiKey  string
	client  *fasthttp.Client
	limiter *Limiter
	breaker *gobreaker.CircuitBreaker[rawResult]

	// baseURL overrides the provider host when set; tests point it at a
	// local server.
	baseURL string
}

func NewRiotClient(cfg *config.Config) *RiotClient {
	settings := gobreaker.Settings{
		Name:    "riot-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 10 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		// only transport-level trouble trips the circuit; 404/401/429 are
		// answers, not outages
		IsSuccessful: func(err error) bool {
			switch KindOf(err) {
			case KindServer, KindNetwork:
				return false
			}
			return true
		},
	}

	return &RiotClient{
		apiKey: cfg.RiotAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		limiter: NewLimiter(cfg.RequestsPerSecond, cfg.RequestsPerTwoMinutes),
		breaker: gobreaker.NewCircuitBreaker[rawResult](settings),
	}
}

func (c *RiotClient) GetAccountByRiotID(ctx context.Context, cluster, gameName, tagLine string) (*Account, error) {
	path := fmt.Sprintf("/riot/account/v1/accounts/by-riot-id/%s/%s",
		url.PathEscape(gameName), url.PathEscape(tagLine))
	return doRequest[Account](ctx, c, cluster, path, "account_by_riot_id")
}

func (c *RiotClient) GetSummonerByPuuid(ctx context.Context, platform, puuid string) (*Summoner, error) {
	path := fmt.Sprintf("/lol/summoner/v4/summoners/by-puuid/%s", url.PathEscape(puuid))
	return doRequest[Summoner](ctx, c, platform, path, "summoner_by_puuid")
}

func (c *RiotClient) GetLeagueEntriesByPuuid(ctx context.Context, platform, puuid string) ([]LeagueEntry, error) {
	path := fmt.Sprintf("/lol/league/v4/entries/by-puuid/%s", url.PathEscape(puuid))
	entries, err := doRequest[[]LeagueEntry](ctx, c, platform, path, "league_entries_by_puuid")
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

func (c *RiotClient) GetMatchIDsByPuuid(ctx context.Context, cluster, puuid string, start, count int) ([]string, error) {
	path := fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids?start=%d&count=%d",
		url.PathEscape(puuid), start, count)
	ids, err := doRequest[[]string](ctx, c, cluster, path, "match_ids_by_puuid")
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

func (c *RiotClient) GetMatchByID(ctx context.Context, cluster, matchID string) (*Match, error) {
	path := fmt.Sprintf("/lol/match/v5/matches/%s", url.PathEscape(matchID))
	return doRequest[Match](ctx, c, cluster, path, "match_by_id")
}

func (c *RiotClient) GetChampionMasteryByPuuid(ctx context.Context, platform, puuid string, top int) ([]ChampionMastery, error) {
	path := fmt.Sprintf("/lol/champion-mastery/v4/champion-masteries/by-puuid/%s/top?count=%d",
		url.PathEscape(puuid), top)
	masteries, err := doRequest[[]ChampionMastery](ctx, c, platform, path, "champion_mastery_by_puuid")
	if err != nil {
		return nil, err
	}
	return *masteries, nil
}

func (c *RiotClient) requestURL(host, path string) string {
	if c.baseURL != "" {
		return c.baseURL + path
	}
	return fmt.Sprintf("https://%s.api.riotgames.com%s", host, path)
}

func doRequest[T any](ctx context.Context, c *RiotClient, host, path, endpoint string) (*T, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	if err := c.limiter.Acquire(ctx); err != nil {
		telemetry.ProviderThrottled.WithLabelValues(endpoint).Inc()
		return nil, err
	}

	raw, err := c.breaker.Execute(func() (rawResult, error) {
		return c.do(ctx, c.requestURL(host, path))
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			err = &Error{Kind: KindNetwork, Message: "provider circuit open", cause: err}
		}
		telemetry.ProviderRequests.WithLabelValues(endpoint, KindOf(err).String()).Inc()
		return nil, err
	}
	telemetry.ProviderRequests.WithLabelValues(endpoint, "ok").Inc()

	var result T
	if err := json.Unmarshal(raw.body, &result); err != nil {
		return nil, &Error{Kind: KindServer, Message: "malformed provider response", cause: err}
	}
	return &result, nil
}

func (c *RiotClient) do(ctx context.Context, requestURL string) (rawResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Riot-Token", c.apiKey)

	deadline, _ := ctx.Deadline()
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return rawResult{}, &Error{Kind: KindNetwork, Message: "request failed", cause: err}
	}

	switch status := resp.StatusCode(); {
	case status == fasthttp.StatusOK:
		// the response buffer is pooled, copy before release
		body := make([]byte, len(resp.Body()))
		copy(body, resp.Body())
		return rawResult{body: body}, nil
	case status == fasthttp.StatusNotFound:
		return rawResult{}, &Error{Kind: KindNotFound, StatusCode: status, Message: "resource not found"}
	case status == fasthttp.StatusUnauthorized || status == fasthttp.StatusForbidden:
		return rawResult{}, &Error{Kind: KindUnauthorized, StatusCode: status, Message: "invalid api key or unauthorized"}
	case status == fasthttp.StatusTooManyRequests:
		return rawResult{}, &Error{
			Kind:       KindRateLimited,
			StatusCode: status,
			RetryAfter: parseRetryAfter(resp),
			Message:    "provider rate limit exceeded",
		}
	case status >= 500:
		return rawResult{}, &Error{Kind: KindServer, StatusCode: status, Message: "provider server error"}
	default:
		// remaining 4xx mean the request itself is wrong; retrying
		// cannot fix it
		return rawResult{}, &Error{Kind: KindUnknown, StatusCode: status, Message: "unexpected provider response"}
	}
}

func parseRetryAfter(resp *fasthttp.Response) time.Duration {
	if v := string(resp.Header.Peek("Retry-After")); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultRetryAfter
}
