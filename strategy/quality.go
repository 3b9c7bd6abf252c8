package strategy

import "strings"

// AnswerQuality classifies how well the previous answer went. It is derived
// state: computed from evaluation scores when they exist, re-derived
// heuristically from the raw answer text when they do not, and consumed
// only when choosing the next question.
type AnswerQuality string

const (
	QualityUnknown AnswerQuality = ""
	QualityPoor    AnswerQuality = "POOR"
	QualityAverage AnswerQuality = "AVERAGE"
	QualityGood    AnswerQuality = "GOOD"
)

// heuristicFullMarkWords is the answer length that maps to a full heuristic
// score when no evaluation is available yet.
const heuristicFullMarkWords = 120

var giveUpPhrases = []string{
	"i don't know", "i dont know", "no idea", "not sure", "i have no",
}

// QualityFromScore maps a normalized 0-1 final score onto a quality band.
func (c Config) QualityFromScore(score float64) AnswerQuality {
	switch {
	case score < c.PoorBand:
		return QualityPoor
	case score < c.GoodBand:
		return QualityAverage
	default:
		return QualityGood
	}
}

// QualityFromText estimates quality from the raw answer when evaluation has
// not run yet, which is the common case since scoring is asynchronous. The
// word count maps onto the same 0-1 scale the score bands use.
func (c Config) QualityFromText(answer string) AnswerQuality {
	trimmed := strings.ToLower(strings.TrimSpace(answer))
	if trimmed == "" {
		return QualityPoor
	}

	for _, phrase := range giveUpPhrases {
		if strings.HasPrefix(trimmed, phrase) {
			return QualityPoor
		}
	}

	score := float64(len(strings.Fields(trimmed))) / heuristicFullMarkWords
	if score > 1 {
		score = 1
	}

	return c.QualityFromScore(score)
}

// ResolveQuality applies the one-probe rule: an AVERAGE answer earns exactly
// one clarifying follow-up on the same topic. If the probing question was
// already spent and the answer is still not GOOD, the quality hardens to
// POOR so the engine pivots instead of probing again.
func ResolveQuality(current AnswerQuality, probePending bool) (effective AnswerQuality, nextProbePending bool) {
	if probePending {
		if current == QualityGood {
			return QualityGood, false
		}
		return QualityPoor, false
	}

	if current == QualityAverage {
		return QualityAverage, true
	}

	return current, false
}
