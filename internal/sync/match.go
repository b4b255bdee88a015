package sync

import (
	"context"
	"errors"
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
)

type MatchSyncer struct {
	client     RiotAPI
	matches    *repository.MatchRepository
	players    *repository.PlayerRepository
	aggregates *repository.ChampionAggregateRepository
	logger     zerolog.Logger
}

func NewMatchSyncer(client RiotAPI, matches *repository.MatchRepository, players *repository.PlayerRepository, aggregates *repository.ChampionAggregateRepository, logger zerolog.Logger) *MatchSyncer {
	return &MatchSyncer{
		client:     client,
		matches:    matches,
		players:    players,
		aggregates: aggregates,
		logger:     logger,
	}
}

// Sync ingests one provider match for an organization. Running it twice for
// the same match id leaves exactly one stored match: a pre-check catches the
// common case and the riot_match_id uniqueness constraint catches the race.
func (s *MatchSyncer) Sync(ctx context.Context, riotMatchID, organizationID, regionCode string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.SyncJobTimeout)
	defer cancel()

	existing, err := s.matches.GetByRiotID(ctx, riotMatchID)
	if err != nil {
		return fmt.Errorf("failed to check for existing match: %w", err)
	}
	if existing != nil {
		s.logger.Debug().Str("riot_match_id", riotMatchID).Msg("match already ingested")
		return nil
	}

	route, err := region.Resolve(regionCode)
	if err != nil {
		return err
	}

	detail, err := s.client.GetMatchByID(ctx, route.Cluster, riotMatchID)
	if err != nil {
		if api.KindOf(err) == api.KindNotFound {
			// expired from the provider's retention window
			s.logger.Warn().Str("riot_match_id", riotMatchID).Msg("match no longer available from provider, skipping")
			return nil
		}
		return fmt.Errorf("failed to fetch match: %w", err)
	}

	orgPlayers, err := s.players.PuuidsByOrganization(ctx, organizationID)
	if err != nil {
		return fmt.Errorf("failed to list organization players: %w", err)
	}

	match := &domain.Match{
		OrganizationID: organizationID,
		RiotMatchID:    riotMatchID,
		MatchType:      classifyMatch(detail.Info.GameMode),
		GameVersion:    detail.Info.GameVersion,
		GameStart:      time.UnixMilli(detail.Info.GameCreation),
		GameDuration:   detail.Info.GameDuration,
		Victory:        victoryFor(detail.Info.Participants, orgPlayers),
	}
	if err := s.matches.Create(ctx, match); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			// lost a race against a concurrent sync of the same match;
			// the winner owns the participant rows
			s.logger.Debug().Str("riot_match_id", riotMatchID).Msg("match inserted concurrently, skipping")
			return nil
		}
		return fmt.Errorf("failed to store match: %w", err)
	}

	teamDamage := damageByTeam(detail.Info.Participants)
	stored := 0
	for _, part := range detail.Info.Participants {
		playerID, ok := orgPlayers[part.Puuid]
		if !ok {
			continue
		}
		if err := s.ingestParticipant(ctx, match, playerID, part, teamDamage[part.TeamID]); err != nil {
			// one bad row aborts that participant only, never the batch
			s.logger.Error().Err(err).
				Str("riot_match_id", riotMatchID).
				Str("player_id", playerID).
				Msg("failed to store participant stats")
			continue
		}
		stored++
	}

	s.logger.Info().
		Str("riot_match_id", riotMatchID).
		Str("organization_id", organizationID).
		Str("match_type", match.MatchType).
		Int("participants_stored", stored).
		Msg("match ingested")
	return nil
}

func (s *MatchSyncer) ingestParticipant(ctx context.Context, match *domain.Match, playerID string, part api.Participant, teamDamage int) error {
	csPerMin := score.CSPerMin(part.TotalMinionsKilled, part.NeutralMinionsKilled, match.GameDuration)
	damageShare := 0.0
	if teamDamage > 0 {
		damageShare = float64(part.TotalDamageDealtToChampions) / float64(teamDamage)
	}

	stat := &domain.ParticipantStat{
		MatchID:        match.ID,
		PlayerID:       playerID,
		Role:           score.NormalizeRole(part.TeamPosition),
		Champion:       part.ChampionName,
		Kills:          part.Kills,
		Deaths:         part.Deaths,
		Assists:        part.Assists,
		GoldEarned:     part.GoldEarned,
		DamageDealt:    part.TotalDamageDealtToChampions,
		DamageTaken:    part.TotalDamageTaken,
		MinionsKilled:  part.TotalMinionsKilled,
		JungleMinions:  part.NeutralMinionsKilled,
		VisionScore:    part.VisionScore,
		WardsPlaced:    part.WardsPlaced,
		WardsKilled:    part.WardsKilled,
		ChampionLevel:  part.ChampLevel,
		FirstBloodKill: part.FirstBloodKill,
		DoubleKills:    part.DoubleKills,
		TripleKills:    part.TripleKills,
		QuadraKills:    part.QuadraKills,
		PentaKills:     part.PentaKills,
		Win:            part.Win,
		CSPerMin:       csPerMin,
		DamageShare:    damageShare,
		PerformanceScore: score.Performance(score.PerformanceInput{
			Kills:       part.Kills,
			Deaths:      part.Deaths,
			Assists:     part.Assists,
			CSPerMin:    csPerMin,
			DamageShare: damageShare,
			VisionScore: part.VisionScore,
			Victory:     part.Win,
		}),
	}

	if err := s.matches.AddParticipant(ctx, stat); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil
		}
		return err
	}

	history, err := s.matches.HistoryForChampion(ctx, playerID, stat.Champion)
	if err != nil {
		return fmt.Errorf("failed to load champion history: %w", err)
	}
	if err := s.aggregates.RecomputeStats(ctx, playerID, stat.Champion, history); err != nil {
		return fmt.Errorf("failed to recompute champion aggregate: %w", err)
	}
	return nil
}

// classifyMatch buckets a provider game mode into the categories the org
// tracks. Summoner's Rift queues count as official play; everything else
// (ARAM, arena, customs) is treated as practice.
func classifyMatch(gameMode string) string {
	if strings.EqualFold(gameMode, "CLASSIC") {
		return "official"
	}
	return "scrim"
}

// victoryFor derives the match outcome from the organization's own
// participants. A match with no known players keeps a nil outcome.
func victoryFor(participants []api.Participant, orgPlayers map[string]string) *bool {
	for _, p := range participants {
		if _, ok := orgPlayers[p.Puuid]; ok {
			v := p.Win
			return &v
		}
	}
	return nil
}

func damageByTeam(participants []api.Participant) map[int]int {
	totals := make(map[int]int)
	for _, p := range participants {
		totals[p.TeamID] += p.TotalDamageDealtToChampions
	}
	return totals
}
