package jobs

// Job is one enqueued unit of sync work. The concrete types carry exactly
// the arguments their orchestrator needs.
type Job interface {
	Name() string
}

// MatchSync ingests one provider match for an organization.
type MatchSync struct {
	RiotMatchID    string
	OrganizationID string
	Region         string
}

func (MatchSync) Name() string { return "match_sync" }

// PlayerSync refreshes one roster player.
type PlayerSync struct {
	PlayerID string
}

func (PlayerSync) Name() string { return "player_sync" }

// ScoutingTargetSync refreshes one scouting target.
type ScoutingTargetSync struct {
	TargetID string
}

func (ScoutingTargetSync) Name() string { return "scouting_target_sync" }
