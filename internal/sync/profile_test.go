package sync

import (
	"context"
	"testing"

	"lol-sync/internal/api"
	"lol-sync/internal/domain"

	"github.com/rs/zerolog"
)

func soloEntry(tier, rank string, lp, wins, losses int) api.LeagueEntry {
	return api.LeagueEntry{
		QueueType:    api.QueueSolo,
		Tier:         tier,
		Rank:         rank,
		LeaguePoints: lp,
		Wins:         wins,
		Losses:       losses,
	}
}

func flexEntry(tier, rank string, lp int) api.LeagueEntry {
	return api.LeagueEntry{QueueType: api.QueueFlex, Tier: tier, Rank: rank, LeaguePoints: lp}
}

func rankedRiot(entries ...api.LeagueEntry) *fakeRiot {
	return &fakeRiot{
		summoner: &api.Summoner{ID: "summ-1", Puuid: "puuid-faker", SummonerLevel: 450},
		entries:  entries,
	}
}

func TestPlayerSyncUpdatesRanks(t *testing.T) {
	env := newSyncEnv(t)
	player := env.seedPlayer(t, rosterPlayer("puuid-faker"))

	riot := rankedRiot(soloEntry("GOLD", "IV", 55, 120, 90), flexEntry("SILVER", "I", 20))
	syncer := NewPlayerSyncer(riot, fakeChampions{}, env.players, env.aggregates, zerolog.Nop())

	if err := syncer.Sync(context.Background(), player.ID); err != nil {
		t.Fatalf("sync returned error: %v", err)
	}

	got, err := env.players.Get(context.Background(), player.ID)
	if err != nil {
		t.Fatalf("failed to reload player: %v", err)
	}
	if got.SoloTier != "GOLD" || got.SoloRank != "IV" || got.SoloLP != 55 {
		t.Errorf("solo rank = %s/%s %d LP, want GOLD/IV 55", got.SoloTier, got.SoloRank, got.SoloLP)
	}
	if got.SoloWins != 120 || got.SoloLosses != 90 {
		t.Errorf("solo record = %d/%d, want 120/90", got.SoloWins, got.SoloLosses)
	}
	if got.FlexTier != "SILVER" || got.FlexRank != "I" {
		t.Errorf("flex rank = %s/%s, want SILVER/I", got.FlexTier, got.FlexRank)
	}
	if got.SummonerLevel != 450 || got.SummonerID != "summ-1" {
		t.Errorf("identity = level %d id %s, want 450 summ-1", got.SummonerLevel, got.SummonerID)
	}
	if got.SyncStatus != domain.SyncSuccess {
		t.Errorf("sync status = %s, want success", got.SyncStatus)
	}
	if got.LastSyncAt.IsZero() {
		t.Error("last sync time not recorded")
	}
}

func TestPlayerSyncPeakIsMonotonic(t *testing.T) {
	env := newSyncEnv(t)
	player := env.seedPlayer(t, rosterPlayer("puuid-faker"))

	// SILVER/II then GOLD/IV then SILVER/I: peak must settle on GOLD/IV
	observations := []api.LeagueEntry{
		soloEntry("SILVER", "II", 10, 1, 1),
		soloEntry("GOLD", "IV", 0, 2, 1),
		soloEntry("SILVER", "I", 80, 2, 2),
	}

	for _, entry := range observations {
		syncer := NewPlayerSyncer(rankedRiot(entry), fakeChampions{}, env.players, env.aggregates, zerolog.Nop())
		if err := syncer.Sync(context.Background(), player.ID); err != nil {
			t.Fatalf("sync returned error: %v", err)
		}
	}

	got, err := env.players.Get(context.Background(), player.ID)
	if err != nil {
		t.Fatalf("failed to reload player: %v", err)
	}
	if got.PeakTier != "GOLD" || got.PeakRank != "IV" {
		t.Errorf("peak = %s/%s, want GOLD/IV", got.PeakTier, got.PeakRank)
	}
	if got.SoloTier != "SILVER" || got.SoloRank != "I" {
		t.Errorf("current solo = %s/%s, want SILVER/I", got.SoloTier, got.SoloRank)
	}
}

func TestPlayerSyncResolvesPuuidFromCandidates(t *testing.T) {
	env := newSyncEnv(t)
	player := rosterPlayer("")
	player.SummonerName = "Hide on bush"
	player.Region = "NA"
	env.seedPlayer(t, player)

	riot := rankedRiot(soloEntry("CHALLENGER", "I", 1200, 300, 150))
	// the first candidate (region tag) misses, the platform tag hits
	riot.accounts = map[string]*api.Account{
		"Hide on bush#NA1": {Puuid: "puuid-faker", GameName: "Hide on bush", TagLine: "NA1"},
	}
	syncer := NewPlayerSyncer(riot, fakeChampions{}, env.players, env.aggregates, zerolog.Nop())

	if err := syncer.Sync(context.Background(), player.ID); err != nil {
		t.Fatalf("sync returned error: %v", err)
	}

	wantLookups := []string{"Hide on bush#NA", "Hide on bush#NA1"}
	if len(riot.accountLookups) != len(wantLookups) {
		t.Fatalf("account lookups = %v, want %v", riot.accountLookups, wantLookups)
	}
	for i, want := range wantLookups {
		if riot.accountLookups[i] != want {
			t.Errorf("lookup %d = %q, want %q", i, riot.accountLookups[i], want)
		}
	}

	got, err := env.players.Get(context.Background(), player.ID)
	if err != nil {
		t.Fatalf("failed to reload player: %v", err)
	}
	if got.Puuid != "puuid-faker" {
		t.Errorf("puuid = %q, want puuid-faker", got.Puuid)
	}
	if got.SummonerName != "Hide on bush#NA1" {
		t.Errorf("summoner name = %q, want canonical riot id", got.SummonerName)
	}
}

func TestPlayerSyncExplicitTagIsOnlyCandidate(t *testing.T) {
	env := newSyncEnv(t)
	player := rosterPlayer("")
	player.SummonerName = "Faker#T1"
	env.seedPlayer(t, player)

	riot := rankedRiot(soloEntry("CHALLENGER", "I", 1000, 200, 100))
	riot.accounts = map[string]*api.Account{
		"Faker#T1": {Puuid: "puuid-faker", GameName: "Faker", TagLine: "T1"},
	}
	syncer := NewPlayerSyncer(riot, fakeChampions{}, env.players, env.aggregates, zerolog.Nop())

	if err := syncer.Sync(context.Background(), player.ID); err != nil {
		t.Fatalf("sync returned error: %v", err)
	}
	if len(riot.accountLookups) != 1 || riot.accountLookups[0] != "Faker#T1" {
		t.Errorf("account lookups = %v, want exactly [Faker#T1]", riot.accountLookups)
	}
}

func TestPlayerSyncRecordsFailure(t *testing.T) {
	env := newSyncEnv(t)
	player := env.seedPlayer(t, rosterPlayer("puuid-faker"))

	riot := &fakeRiot{summonerErr: &api.Error{Kind: api.KindServer, StatusCode: 503, Message: "provider down"}}
	syncer := NewPlayerSyncer(riot, fakeChampions{}, env.players, env.aggregates, zerolog.Nop())

	if err := syncer.Sync(context.Background(), player.ID); err == nil {
		t.Fatal("expected sync to fail")
	}

	got, err := env.players.Get(context.Background(), player.ID)
	if err != nil {
		t.Fatalf("failed to reload player: %v", err)
	}
	if got.SyncStatus != domain.SyncError {
		t.Errorf("sync status = %s, want error", got.SyncStatus)
	}
	if got.LastSyncError == "" {
		t.Error("failure reason not recorded")
	}
	if got.LastSyncAt.IsZero() {
		t.Error("failed sync must still stamp last sync time")
	}
}

func TestPlayerSyncUpsertsMastery(t *testing.T) {
	env := newSyncEnv(t)
	player := env.seedPlayer(t, rosterPlayer("puuid-faker"))

	riot := rankedRiot(soloEntry("DIAMOND", "II", 40, 400, 350))
	riot.mastery = []api.ChampionMastery{
		{ChampionID: 103, ChampionLevel: 7, ChampionPoints: 250000, LastPlayTime: 1700000000000},
		{ChampionID: 999, ChampionLevel: 5, ChampionPoints: 40000}, // unknown id, skipped
	}
	champions := fakeChampions{103: "Ahri"}
	syncer := NewPlayerSyncer(riot, champions, env.players, env.aggregates, zerolog.Nop())

	if err := syncer.Sync(context.Background(), player.ID); err != nil {
		t.Fatalf("sync returned error: %v", err)
	}

	agg, err := env.aggregates.Get(context.Background(), player.ID, "Ahri")
	if err != nil {
		t.Fatalf("failed to load aggregate: %v", err)
	}
	if agg == nil {
		t.Fatal("mastery aggregate row missing")
	}
	if agg.MasteryLevel != 7 || agg.MasteryPoints != 250000 {
		t.Errorf("mastery = level %d points %d, want 7/250000", agg.MasteryLevel, agg.MasteryPoints)
	}
	if got := env.count(t, "SELECT COUNT(*) FROM champion_aggregates WHERE owner_id = ?", player.ID); got != 1 {
		t.Errorf("aggregate rows = %d, want 1 (unknown champion id skipped)", got)
	}
}

func TestScoutingTargetSyncTracksCurrentRank(t *testing.T) {
	env := newSyncEnv(t)
	target := &domain.ScoutingTarget{
		OrganizationID: "org-1",
		SummonerName:   "Prospect",
		Role:           "jungle",
		Region:         "EUW",
		Puuid:          "puuid-prospect",
	}
	if err := env.targets.Create(context.Background(), target); err != nil {
		t.Fatalf("failed to seed target: %v", err)
	}

	riot := &fakeRiot{
		summoner: &api.Summoner{ID: "summ-p", Puuid: "puuid-prospect", SummonerLevel: 200},
		entries: []api.LeagueEntry{
			soloEntry("MASTER", "I", 120, 500, 420),
			flexEntry("GOLD", "II", 30), // targets ignore flex
		},
	}
	syncer := NewScoutingTargetSyncer(riot, fakeChampions{}, env.targets, env.aggregates, zerolog.Nop())

	if err := syncer.Sync(context.Background(), target.ID); err != nil {
		t.Fatalf("sync returned error: %v", err)
	}

	got, err := env.targets.Get(context.Background(), target.ID)
	if err != nil {
		t.Fatalf("failed to reload target: %v", err)
	}
	if got.CurrentTier != "MASTER" || got.CurrentLP != 120 {
		t.Errorf("current rank = %s %d LP, want MASTER 120", got.CurrentTier, got.CurrentLP)
	}
	if got.PeakTier != "MASTER" {
		t.Errorf("peak tier = %s, want MASTER", got.PeakTier)
	}
	if got.SyncStatus != domain.SyncSuccess {
		t.Errorf("sync status = %s, want success", got.SyncStatus)
	}
}
