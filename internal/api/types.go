package api

// Provider response shapes, limited to the fields ingestion reads.

type Account struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type Summoner struct {
	ID            string `json:"id"`
	Puuid         string `json:"puuid"`
	SummonerLevel int    `json:"summonerLevel"`
	ProfileIconID int    `json:"profileIconId"`
}

type LeagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

const (
	QueueSolo = "RANKED_SOLO_5x5"
	QueueFlex = "RANKED_FLEX_SR"
)

type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID string `json:"matchId"`
}

type MatchInfo struct {
	GameCreation int64         `json:"gameCreation"` // unix millis
	GameDuration int           `json:"gameDuration"` // seconds
	GameMode     string        `json:"gameMode"`
	GameVersion  string        `json:"gameVersion"`
	Participants []Participant `json:"participants"`
}

type Participant struct {
	Puuid        string `json:"puuid"`
	SummonerName string `json:"summonerName"`
	ChampionName string `json:"championName"`
	ChampionID   int    `json:"championId"`
	TeamID       int    `json:"teamId"`
	TeamPosition string `json:"teamPosition"`

	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`

	GoldEarned                  int  `json:"goldEarned"`
	TotalDamageDealtToChampions int  `json:"totalDamageDealtToChampions"`
	TotalDamageTaken            int  `json:"totalDamageTaken"`
	TotalMinionsKilled          int  `json:"totalMinionsKilled"`
	NeutralMinionsKilled        int  `json:"neutralMinionsKilled"`
	VisionScore                 int  `json:"visionScore"`
	WardsPlaced                 int  `json:"wardsPlaced"`
	WardsKilled                 int  `json:"wardsKilled"`
	ChampLevel                  int  `json:"champLevel"`
	FirstBloodKill              bool `json:"firstBloodKill"`
	DoubleKills                 int  `json:"doubleKills"`
	TripleKills                 int  `json:"tripleKills"`
	QuadraKills                 int  `json:"quadraKills"`
	PentaKills                  int  `json:"pentaKills"`
	Win                         bool `json:"win"`
}

type ChampionMastery struct {
	ChampionID     int   `json:"championId"`
	ChampionLevel  int   `json:"championLevel"`
	ChampionPoints int   `json:"championPoints"`
	LastPlayTime   int64 `json:"lastPlayTime"` // unix millis
}
