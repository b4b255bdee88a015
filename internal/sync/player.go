package sync

import (
	"context"
	"fmt"

	"lol-sync/internal/api"
	"lol-sync/internal/domain"
	"lol-sync/internal/repository"

	"github.com/rs/zerolog"
)

type PlayerSyncer struct {
	profiles *profileSyncer
	players  *repository.PlayerRepository
}

func NewPlayerSyncer(client RiotAPI, champions ChampionNamer, players *repository.PlayerRepository, aggregates *repository.ChampionAggregateRepository, logger zerolog.Logger) *PlayerSyncer {
	return &PlayerSyncer{
		profiles: &profileSyncer{
			client:     client,
			champions:  champions,
			aggregates: aggregates,
			logger:     logger,
		},
		players: players,
	}
}

// Sync refreshes one roster player's identity, ranked state and mastery.
func (s *PlayerSyncer) Sync(ctx context.Context, playerID string) error {
	var player *domain.Player

	return s.profiles.run(ctx, profileOps{
		kind: "player",
		load: func(ctx context.Context) (*profileState, error) {
			p, err := s.players.Get(ctx, playerID)
			if err != nil {
				return nil, fmt.Errorf("player %s: %w", playerID, err)
			}
			player = p
			return &profileState{
				ID:           p.ID,
				SummonerName: p.SummonerName,
				Region:       p.Region,
				Puuid:        p.Puuid,
				SummonerID:   p.SummonerID,
				PeakTier:     p.PeakTier,
				PeakRank:     p.PeakRank,
			}, nil
		},
		identity: func(ctx context.Context, st *profileState) error {
			player.Puuid = st.Puuid
			player.SummonerID = st.SummonerID
			player.SummonerName = st.SummonerName
			player.SummonerLevel = st.SummonerLevel
			return s.players.UpdateIdentity(ctx, player)
		},
		ranks: func(ctx context.Context, solo, flex *api.LeagueEntry, peakTier, peakRank string) error {
			if solo != nil {
				player.SoloTier = solo.Tier
				player.SoloRank = solo.Rank
				player.SoloLP = solo.LeaguePoints
				player.SoloWins = solo.Wins
				player.SoloLosses = solo.Losses
			}
			if flex != nil {
				player.FlexTier = flex.Tier
				player.FlexRank = flex.Rank
				player.FlexLP = flex.LeaguePoints
			}
			player.PeakTier = peakTier
			player.PeakRank = peakRank
			return s.players.UpdateRanks(ctx, player)
		},
		status: func(ctx context.Context, status domain.SyncStatus, msg string) error {
			return s.players.SetSyncStatus(ctx, playerID, status, msg)
		},
	})
}
