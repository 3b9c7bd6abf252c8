package strategy

import "math"

// Phase is one of the five ordered interview stages. Which phase a question
// falls into is pure arithmetic on its index; the guidance text attached to
// a phase lives in the lookup table, not here.
type Phase string

const (
	PhaseOpening       Phase = "OPENING"
	PhaseCoreTechnical Phase = "CORE_TECHNICAL"
	PhaseDeepDive      Phase = "DEEP_DIVE"
	PhaseChallenging   Phase = "CHALLENGING"
	PhaseWrapUp        Phase = "WRAP_UP"
)

// collapsed phase ladders for very short interviews, keyed by total count.
// The first question is always an opener and the last always wraps up.
var collapsedLadders = map[int][]Phase{
	1: {PhaseWrapUp},
	2: {PhaseOpening, PhaseWrapUp},
	3: {PhaseOpening, PhaseCoreTechnical, PhaseWrapUp},
	4: {PhaseOpening, PhaseCoreTechnical, PhaseDeepDive, PhaseWrapUp},
	5: {PhaseOpening, PhaseCoreTechnical, PhaseDeepDive, PhaseChallenging, PhaseWrapUp},
}

// PhaseFor maps a 1-based question index onto its phase for an interview of
// the given planned total. Interviews at or below the collapsed threshold
// map each question onto a single phase; at or below the coarse threshold a
// 4-bucket split is used; longer interviews follow the 20/30/25/15/10 split
// with every phase guaranteed at least one question.
func (c Config) PhaseFor(index, total int) Phase {
	if total < 1 {
		total = 1
	}
	if index < 1 {
		index = 1
	}
	if index >= total {
		return PhaseWrapUp
	}

	// The collapsed threshold is a config knob; ladders only exist up to
	// len(collapsedLadders) questions, so longer interviews fall through to
	// the proportional splits even when the threshold is set higher.
	if total <= c.CollapsedThreshold && total <= len(collapsedLadders) {
		return collapsedLadders[total][index-1]
	}

	if index == 1 {
		return PhaseOpening
	}

	if total <= c.CoarseThreshold {
		// Coarse split: one opener, ~40% core, the rest deep dive, one
		// wrap-up. CHALLENGING is folded into DEEP_DIVE at this length.
		coreEnd := 1 + int(math.Ceil(0.4*float64(total)))
		if index <= coreEnd {
			return PhaseCoreTechnical
		}
		return PhaseDeepDive
	}

	// Full five-phase split, cumulative 20/30/25/15/10.
	openEnd := atLeast(1, int(math.Round(0.20*float64(total))))
	coreEnd := openEnd + atLeast(1, int(math.Round(0.30*float64(total))))
	deepEnd := coreEnd + atLeast(1, int(math.Round(0.25*float64(total))))
	challengeEnd := deepEnd + atLeast(1, int(math.Round(0.15*float64(total))))
	if challengeEnd >= total {
		challengeEnd = total - 1
	}

	switch {
	case index <= openEnd:
		return PhaseOpening
	case index <= coreEnd:
		return PhaseCoreTechnical
	case index <= deepEnd:
		return PhaseDeepDive
	case index <= challengeEnd:
		return PhaseChallenging
	default:
		return PhaseWrapUp
	}
}

func atLeast(minimum, v int) int {
	if v < minimum {
		return minimum
	}
	return v
}
