package sync

import (
	"context"
	"fmt"

	"lol-sync/internal/api"
	"lol-sync/internal/domain"
	"lol-sync/internal/repository"

	"github.com/rs/zerolog"
)

type ScoutingTargetSyncer struct {
	profiles *profileSyncer
	targets  *repository.ScoutingTargetRepository
}

func NewScoutingTargetSyncer(client RiotAPI, champions ChampionNamer, targets *repository.ScoutingTargetRepository, aggregates *repository.ChampionAggregateRepository, logger zerolog.Logger) *ScoutingTargetSyncer {
	return &ScoutingTargetSyncer{
		profiles: &profileSyncer{
			client:     client,
			champions:  champions,
			aggregates: aggregates,
			logger:     logger,
		},
		targets: targets,
	}
}

// Sync refreshes one scouting target. Targets track only the solo queue
// snapshot; flex entries are ignored.
func (s *ScoutingTargetSyncer) Sync(ctx context.Context, targetID string) error {
	var target *domain.ScoutingTarget

	return s.profiles.run(ctx, profileOps{
		kind: "scouting_target",
		load: func(ctx context.Context) (*profileState, error) {
			t, err := s.targets.Get(ctx, targetID)
			if err != nil {
				return nil, fmt.Errorf("scouting target %s: %w", targetID, err)
			}
			target = t
			return &profileState{
				ID:           t.ID,
				SummonerName: t.SummonerName,
				Region:       t.Region,
				Puuid:        t.Puuid,
				SummonerID:   t.SummonerID,
				PeakTier:     t.PeakTier,
				PeakRank:     t.PeakRank,
			}, nil
		},
		identity: func(ctx context.Context, st *profileState) error {
			target.Puuid = st.Puuid
			target.SummonerID = st.SummonerID
			target.SummonerName = st.SummonerName
			return s.targets.UpdateIdentity(ctx, target)
		},
		ranks: func(ctx context.Context, solo, _ *api.LeagueEntry, peakTier, peakRank string) error {
			if solo != nil {
				target.CurrentTier = solo.Tier
				target.CurrentRank = solo.Rank
				target.CurrentLP = solo.LeaguePoints
			}
			target.PeakTier = peakTier
			target.PeakRank = peakRank
			return s.targets.UpdateRanks(ctx, target)
		},
		status: func(ctx context.Context, status domain.SyncStatus, msg string) error {
			return s.targets.SetSyncStatus(ctx, targetID, status, msg)
		},
	})
}
