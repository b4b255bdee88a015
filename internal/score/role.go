package score

import "strings"

// the five canonical lanes
const (
	RoleTop     = "top"
	RoleJungle  = "jungle"
	RoleMid     = "mid"
	RoleADC     = "adc"
	RoleSupport = "support"
)

var roleAliases = map[string]string{
	"top":     RoleTop,
	"jungle":  RoleJungle,
	"middle":  RoleMid,
	"mid":     RoleMid,
	"bottom":  RoleADC,
	"adc":     RoleADC,
	"utility": RoleSupport,
	"support": RoleSupport,
}

// NormalizeRole maps a provider team position onto the canonical lanes.
// Anything unrecognized (including empty) falls back to mid.
func NormalizeRole(role string) string {
	if canonical, ok := roleAliases[strings.ToLower(strings.TrimSpace(role))]; ok {
		return canonical
	}
	return RoleMid
}
