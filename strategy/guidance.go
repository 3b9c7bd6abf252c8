package strategy

// PhaseGuidance is the difficulty/guidance pair fed into the follow-up
// prompt for a given phase and candidate tier.
type PhaseGuidance struct {
	Difficulty string
	Guidance   string
}

// guidanceTable maps (phase, tier) onto prompt guidance. Keeping this as
// data means adding a phase or tier is a table edit, not new branching.
var guidanceTable = map[Phase]map[guidanceTier]PhaseGuidance{
	PhaseOpening: {
		tierEntry: {
			Difficulty: "basic",
			Guidance:   "Warm-up question about coursework, personal projects or internships. Example depth: explain what a REST API is.",
		},
		tierJunior: {
			Difficulty: "basic",
			Guidance:   "Warm-up question about their first professional projects and day-to-day work. Example depth: describe how you debug a failing request.",
		},
		tierMid: {
			Difficulty: "intermediate",
			Guidance:   "Warm-up question about a recent project they owned end to end. Example depth: walk through a feature you shipped and its trade-offs.",
		},
		tierSenior: {
			Difficulty: "intermediate",
			Guidance:   "Warm-up question about systems they designed or teams they led. Example depth: describe an architecture decision you drove and its outcome.",
		},
	},
	PhaseCoreTechnical: {
		tierEntry: {
			Difficulty: "basic",
			Guidance:   "Fundamentals of the skill area: definitions, basic usage, simple comparisons. Example depth: difference between a list and a map.",
		},
		tierJunior: {
			Difficulty: "intermediate",
			Guidance:   "Applied fundamentals: how they used the skill in practice, common pitfalls. Example depth: when would an index make a query slower.",
		},
		tierMid: {
			Difficulty: "intermediate",
			Guidance:   "Practical depth: trade-offs, debugging stories, performance basics. Example depth: how to find and fix an N+1 query in production.",
		},
		tierSenior: {
			Difficulty: "advanced",
			Guidance:   "Design-level technical questions: consistency models, failure modes, scaling strategies. Example depth: how to keep two datastores in sync.",
		},
	},
	PhaseDeepDive: {
		tierEntry: {
			Difficulty: "intermediate",
			Guidance:   "Go one level below the surface of their strongest topic. Example depth: what actually happens when you await a promise.",
		},
		tierJunior: {
			Difficulty: "intermediate",
			Guidance:   "Probe internals and reasoning, not recall. Example depth: how a hash map degrades and what to do about it.",
		},
		tierMid: {
			Difficulty: "advanced",
			Guidance:   "Dig into internals and production war stories. Example depth: diagnose a memory leak you cannot reproduce locally.",
		},
		tierSenior: {
			Difficulty: "advanced",
			Guidance:   "Expect authoritative depth: internals, guarantees, operational limits. Example depth: reason about tail latency under partial failure.",
		},
	},
	PhaseChallenging: {
		tierEntry: {
			Difficulty: "intermediate",
			Guidance:   "A stretch question slightly above their level; grade generously. Example depth: sketch how you would rate limit an API.",
		},
		tierJunior: {
			Difficulty: "advanced",
			Guidance:   "An edge-case or design question above day-to-day work. Example depth: design a retry policy that will not melt a downstream service.",
		},
		tierMid: {
			Difficulty: "advanced",
			Guidance:   "A hard open-ended problem with competing constraints. Example depth: design an idempotent payment flow across unreliable services.",
		},
		tierSenior: {
			Difficulty: "advanced",
			Guidance:   "A genuinely hard systems problem with no clean answer. Example depth: migrate a live sharded datastore with zero downtime.",
		},
	},
	PhaseWrapUp: {
		tierEntry: {
			Difficulty: "basic",
			Guidance:   "Close the interview: reflection, learning goals, or questions for the interviewer.",
		},
		tierJunior: {
			Difficulty: "basic",
			Guidance:   "Close the interview: what they would improve in their last project, growth direction.",
		},
		tierMid: {
			Difficulty: "basic",
			Guidance:   "Close the interview: reflection on trade-offs made in the discussed work, what they would do differently.",
		},
		tierSenior: {
			Difficulty: "basic",
			Guidance:   "Close the interview: leadership reflection, technical direction they would set, open questions.",
		},
	},
}

// GuidanceFor returns the table entry for a phase and normalized level.
func GuidanceFor(phase Phase, level Level) PhaseGuidance {
	return guidanceTable[phase][tierOf(level)]
}
