package score

import "math"

// PerformanceInput carries the raw counters of one participant in one match.
// The score is a pure function of these fields so it can be replayed from
// stored rows at any time.
type PerformanceInput struct {
	Kills       int
	Deaths      int
	Assists     int
	CSPerMin    float64
	DamageShare float64 // 0..1 share of the team's champion damage
	VisionScore int
	Victory     bool
}

// KDA returns (kills+assists)/deaths, treating a deathless game as a
// straight kills+assists sum.
func KDA(kills, deaths, assists int) float64 {
	if deaths == 0 {
		return float64(kills + assists)
	}
	return float64(kills+assists) / float64(deaths)
}

// CSPerMin returns creep score per minute for a game of the given duration.
func CSPerMin(minions, jungleMinions, durationSeconds int) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	return float64(minions+jungleMinions) / (float64(durationSeconds) / 60.0)
}

// Performance computes the 0-100 performance score:
// up to 40 from KDA, 20 from CS/min, 20 from damage share, 10 from vision,
// plus a flat 10 for a win. Rounded to 2 decimals.
func Performance(in PerformanceInput) float64 {
	s := clamp(KDA(in.Kills, in.Deaths, in.Assists)*10, 0, 40)
	s += clamp(in.CSPerMin*2.5, 0, 20)
	s += clamp(in.DamageShare*100*0.8, 0, 20)
	s += clamp(float64(in.VisionScore)/100*10, 0, 10)
	if in.Victory {
		s += 10
	}
	return round2(clamp(s, 0, 100))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
