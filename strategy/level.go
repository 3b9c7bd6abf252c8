package strategy

import "strings"

// Level is the closed set of candidate levels. Free-text inputs are
// collapsed onto it by substring matching; anything unrecognized is treated
// as Intern so difficulty never overshoots.
type Level string

const (
	LevelIntern  Level = "Intern"
	LevelFresher Level = "Fresher"
	LevelJunior  Level = "Junior"
	LevelMid     Level = "Mid-level"
	LevelSenior  Level = "Senior"
	LevelLead    Level = "Lead"
)

// NormalizeLevel collapses a free-text level onto the closed set. Matching
// is ordered most-senior-first so "senior lead" resolves to Lead.
func NormalizeLevel(raw string) Level {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return LevelIntern
	}

	switch {
	case containsAny(lower, "lead", "principal", "staff"):
		return LevelLead
	case containsAny(lower, "senior", "sr."), lower == "sr":
		return LevelSenior
	case containsAny(lower, "mid", "middle", "intermediate"):
		return LevelMid
	case containsAny(lower, "junior", "jr."), lower == "jr":
		return LevelJunior
	case strings.Contains(lower, "fresher"):
		return LevelFresher
	case strings.Contains(lower, "intern"):
		return LevelIntern
	default:
		return LevelIntern
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// guidanceTier groups levels that share difficulty guidance: Intern and
// Fresher read the same table row, as do Senior and Lead.
type guidanceTier int

const (
	tierEntry guidanceTier = iota
	tierJunior
	tierMid
	tierSenior
)

func tierOf(level Level) guidanceTier {
	switch level {
	case LevelJunior:
		return tierJunior
	case LevelMid:
		return tierMid
	case LevelSenior, LevelLead:
		return tierSenior
	default:
		return tierEntry
	}
}
