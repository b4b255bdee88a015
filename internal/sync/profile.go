package sync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lol-sync/internal/api"
	"lol-sync/internal/constants"
	"lol-sync/internal/domain"
	"lol-sync/internal/region"
	"lol-sync/internal/repository"
	"lol-sync/internal/score"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// profileState is the working copy of a player or scouting target while a
// sync runs. The variant-specific closures read and persist it.
type profileState struct {
	ID            string
	SummonerName  string
	Region        string
	Puuid         string
	SummonerID    string
	SummonerLevel int
	PeakTier      string
	PeakRank      string
}

// profileOps binds one entity kind into the shared profile sync flow:
// players and scouting targets differ only in how they load and persist,
// never in the flow itself.
type profileOps struct {
	kind     string
	load     func(ctx context.Context) (*profileState, error)
	identity func(ctx context.Context, st *profileState) error
	ranks    func(ctx context.Context, solo, flex *api.LeagueEntry, peakTier, peakRank string) error
	status   func(ctx context.Context, status domain.SyncStatus, msg string) error
}

type profileSyncer struct {
	client     RiotAPI
	champions  ChampionNamer
	aggregates *repository.ChampionAggregateRepository
	logger     zerolog.Logger
}

// run executes the shared flow: resolve identity, refresh ranks, refresh
// mastery, and always record the outcome. The status write happens on
// success and failure alike so staleness detection survives broken syncs.
func (s *profileSyncer) run(ctx context.Context, ops profileOps) error {
	ctx, cancel := context.WithTimeout(ctx, constants.SyncJobTimeout)
	defer cancel()

	st, err := ops.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", ops.kind, err)
	}

	if err := ops.status(ctx, domain.SyncRunning, ""); err != nil {
		s.logger.Warn().Err(err).Str("kind", ops.kind).Str("id", st.ID).Msg("failed to mark sync as running")
	}

	if err := s.syncOnce(ctx, st, ops); err != nil {
		// the failure may be the context itself expiring; the status write
		// must still land or staleness detection goes blind
		statusCtx, statusCancel := context.WithTimeout(context.WithoutCancel(ctx), constants.DatabaseTimeout)
		defer statusCancel()
		if serr := ops.status(statusCtx, domain.SyncError, err.Error()); serr != nil {
			s.logger.Error().Err(serr).Str("kind", ops.kind).Str("id", st.ID).Msg("failed to record sync failure")
		}
		return err
	}
	return ops.status(ctx, domain.SyncSuccess, "")
}

func (s *profileSyncer) syncOnce(ctx context.Context, st *profileState, ops profileOps) error {
	route, err := region.Resolve(st.Region)
	if err != nil {
		return err
	}

	if st.Puuid == "" {
		account, err := s.resolveAccount(ctx, route, st.SummonerName, st.Region)
		if err != nil {
			return err
		}
		st.Puuid = account.Puuid
		st.SummonerName = account.GameName + "#" + account.TagLine
	}

	summoner, err := s.client.GetSummonerByPuuid(ctx, route.Platform, st.Puuid)
	if err != nil {
		return fmt.Errorf("failed to fetch summoner: %w", err)
	}
	st.SummonerID = summoner.ID
	st.SummonerLevel = summoner.SummonerLevel

	if err := ops.identity(ctx, st); err != nil {
		return fmt.Errorf("failed to persist identity: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	var entries []api.LeagueEntry
	var mastery []api.ChampionMastery

	g.Go(func() error {
		var err error
		entries, err = s.client.GetLeagueEntriesByPuuid(gCtx, route.Platform, st.Puuid)
		if err != nil {
			return fmt.Errorf("failed to fetch league entries: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		mastery, err = s.client.GetChampionMasteryByPuuid(gCtx, route.Platform, st.Puuid, constants.MasteryTopN)
		if api.KindOf(err) == api.KindNotFound {
			mastery = nil
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to fetch champion mastery: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	solo, flex := splitQueues(entries)
	peakTier, peakRank := st.PeakTier, st.PeakRank
	if solo != nil {
		observed := score.Rank{Tier: solo.Tier, Division: solo.Rank}
		stored := score.Rank{Tier: st.PeakTier, Division: st.PeakRank}
		if score.IsHigher(observed, stored) {
			peakTier, peakRank = solo.Tier, solo.Rank
		}
	}

	if err := ops.ranks(ctx, solo, flex, peakTier, peakRank); err != nil {
		return fmt.Errorf("failed to persist ranks: %w", err)
	}

	s.applyMastery(ctx, st.ID, mastery)

	s.logger.Info().
		Str("kind", ops.kind).
		Str("id", st.ID).
		Str("puuid", st.Puuid).
		Bool("ranked_solo", solo != nil).
		Int("mastery_rows", len(mastery)).
		Msg("profile synced")
	return nil
}

type riotID struct {
	gameName string
	tagLine  string
}

// accountCandidates returns the ordered riot-id lookups to try for a stored
// display name. The canonical tag line is frequently unknown up front, so
// after an explicit "Name#TAG" we fall back to region-derived tags.
func accountCandidates(summonerName, regionCode string, route region.Route) []riotID {
	if name, tag, ok := strings.Cut(summonerName, "#"); ok && tag != "" {
		return []riotID{{gameName: name, tagLine: tag}}
	}
	candidates := []riotID{{gameName: summonerName, tagLine: strings.ToUpper(regionCode)}}
	if platformTag := strings.ToUpper(route.Platform); platformTag != candidates[0].tagLine {
		candidates = append(candidates, riotID{gameName: summonerName, tagLine: platformTag})
	}
	return candidates
}

// resolveAccount walks the candidate list, stopping at the first hit.
// NotFound moves on to the next candidate; every other failure aborts.
func (s *profileSyncer) resolveAccount(ctx context.Context, route region.Route, summonerName, regionCode string) (*api.Account, error) {
	candidates := accountCandidates(summonerName, regionCode, route)
	for _, candidate := range candidates {
		account, err := s.client.GetAccountByRiotID(ctx, route.Cluster, candidate.gameName, candidate.tagLine)
		if err == nil {
			return account, nil
		}
		if api.KindOf(err) != api.KindNotFound {
			return nil, fmt.Errorf("failed to resolve account: %w", err)
		}
		s.logger.Debug().
			Str("game_name", candidate.gameName).
			Str("tag_line", candidate.tagLine).
			Msg("no account for candidate riot id")
	}
	return nil, &api.Error{
		Kind:    api.KindNotFound,
		Message: fmt.Sprintf("no account found for %q in %s", summonerName, regionCode),
	}
}

func splitQueues(entries []api.LeagueEntry) (solo, flex *api.LeagueEntry) {
	for i := range entries {
		switch entries[i].QueueType {
		case api.QueueSolo:
			solo = &entries[i]
		case api.QueueFlex:
			flex = &entries[i]
		}
	}
	return solo, flex
}

// applyMastery upserts the top-N mastery rows. A single bad champion never
// fails the whole sync.
func (s *profileSyncer) applyMastery(ctx context.Context, ownerID string, mastery []api.ChampionMastery) {
	for _, m := range mastery {
		name, ok, err := s.champions.Name(ctx, m.ChampionID)
		if err != nil {
			s.logger.Warn().Err(err).Int("champion_id", m.ChampionID).Msg("champion table lookup failed")
			continue
		}
		if !ok {
			s.logger.Warn().Int("champion_id", m.ChampionID).Msg("unknown champion id in mastery response")
			continue
		}
		lastPlayed := time.UnixMilli(m.LastPlayTime)
		if err := s.aggregates.SetMastery(ctx, ownerID, name, m.ChampionLevel, m.ChampionPoints, lastPlayed); err != nil {
			s.logger.Error().Err(err).Str("owner_id", ownerID).Str("champion", name).Msg("failed to upsert mastery")
		}
	}
}
