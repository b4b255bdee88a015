package region

import (
	"fmt"
	"strings"
)

// Route pairs the platform host (summoner/league/mastery endpoints) with the
// regional cluster host (account/match endpoints) for one logical region.
type Route struct {
	Platform string
	Cluster  string
}

var ErrUnknownRegion = fmt.Errorf("unknown region")

var routes = map[string]Route{
	"BR":   {Platform: "br1", Cluster: "americas"},
	"NA":   {Platform: "na1", Cluster: "americas"},
	"EUW":  {Platform: "euw1", Cluster: "europe"},
	"EUNE": {Platform: "eun1", Cluster: "europe"},
	"KR":   {Platform: "kr", Cluster: "asia"},
	"JP":   {Platform: "jp1", Cluster: "asia"},
	"OCE":  {Platform: "oc1", Cluster: "sea"},
	"LAN":  {Platform: "la1", Cluster: "americas"},
	"LAS":  {Platform: "la2", Cluster: "americas"},
	"RU":   {Platform: "ru", Cluster: "europe"},
	"TR":   {Platform: "tr1", Cluster: "europe"},
}

func Resolve(code string) (Route, error) {
	route, ok := routes[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownRegion, code)
	}
	return route, nil
}

// Codes returns every known logical region code.
func Codes() []string {
	codes := make([]string, 0, len(routes))
	for code := range routes {
		codes = append(codes, code)
	}
	return codes
}
