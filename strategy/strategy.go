package strategy

// Config holds the tunable knobs of the strategy engine. Zero values are
// replaced with the documented defaults.
type Config struct {
	// Totals at or below CollapsedThreshold map each question onto a
	// single phase; at or below CoarseThreshold a 4-bucket split is used.
	CollapsedThreshold int
	CoarseThreshold    int

	// Quality bands on the normalized 0-1 final score.
	PoorBand float64
	GoodBand float64
}

func (c Config) withDefaults() Config {
	if c.CollapsedThreshold == 0 {
		c.CollapsedThreshold = 5
	}
	if c.CoarseThreshold == 0 {
		c.CoarseThreshold = 10
	}
	if c.PoorBand == 0 {
		c.PoorBand = 0.4
	}
	if c.GoodBand == 0 {
		c.GoodBand = 0.7
	}
	return c
}

// Directive tells the prompt builder what kind of question to ask next.
type Directive struct {
	Phase       Phase
	Difficulty  string
	Topic       string
	SwitchTopic bool
	Guidance    string
}

// Engine computes the next-question directive from interview progress and
// the quality of the immediately preceding answer.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// NextDirective computes the directive for the question at index (1-based)
// of an interview with the given planned total. prevQuality is the quality
// of the answer just submitted (QualityUnknown for the first question) and
// prevTopic the skill tag of the question it answered.
func (e *Engine) NextDirective(rawLevel string, index, total int, prevQuality AnswerQuality, prevTopic string, skills []string) Directive {
	level := NormalizeLevel(rawLevel)
	phase := e.cfg.PhaseFor(index, total)
	base := GuidanceFor(phase, level)

	directive := Directive{
		Phase:      phase,
		Difficulty: base.Difficulty,
		Topic:      stayTopic(prevTopic, skills, index),
		Guidance:   base.Guidance,
	}

	// The adaptive pivot overrides local difficulty: never spend more than
	// one probe confirming a knowledge gap, never linger where the
	// candidate is clearly strong.
	switch prevQuality {
	case QualityPoor:
		directive.SwitchTopic = true
		directive.Topic = pivotTopic(prevTopic, skills)
		directive.Difficulty = "basic"
		directive.Guidance = "The candidate struggled with the previous topic. Switch to a different skill area (" +
			directive.Topic + ") and start with a basic question there. Do not revisit the failed topic. " + base.Guidance
	case QualityGood:
		if directive.Difficulty != "advanced" {
			directive.Difficulty = escalate(directive.Difficulty)
		}
		directive.Guidance = "The candidate answered well. Stay on the same topic (" + directive.Topic +
			") and escalate to a harder or edge-case follow-up. " + base.Guidance
	case QualityAverage:
		directive.Guidance = "The previous answer was partially correct. Ask exactly one clarifying follow-up on the same topic (" +
			directive.Topic + ") to confirm understanding. " + base.Guidance
	}

	return directive
}

// stayTopic keeps the current topic, falling back to a round-robin walk of
// the profile's skills before any question has a topic.
func stayTopic(prevTopic string, skills []string, index int) string {
	if prevTopic != "" {
		return prevTopic
	}
	if len(skills) == 0 {
		return ""
	}
	return skills[(index-1)%len(skills)]
}

// pivotTopic returns the next skill after prevTopic in the profile's
// ordered skill list, wrapping around. A pivot away from the only skill
// keeps that skill: there is nowhere else to go.
func pivotTopic(prevTopic string, skills []string) string {
	if len(skills) == 0 {
		return ""
	}

	for i, skill := range skills {
		if skill == prevTopic {
			return skills[(i+1)%len(skills)]
		}
	}

	return skills[0]
}

func escalate(difficulty string) string {
	switch difficulty {
	case "basic":
		return "intermediate"
	default:
		return "advanced"
	}
}
