package recommend

import (
	"fmt"
	"sort"
	"time"

	"github.com/felixgeelhaar/pathway/internal/affect"
	"github.com/felixgeelhaar/pathway/internal/domain"
	"github.com/felixgeelhaar/pathway/internal/engagement"
	"github.com/felixgeelhaar/pathway/internal/memory"
	"github.com/felixgeelhaar/pathway/internal/struggle"
)

const (
	confidenceBreak       = 0.85
	confidenceFlowRescue  = 0.8
	confidenceSpaced      = 0.7
	confidenceGoalStep    = 0.9
	confidenceWeakness    = 0.6
	confidenceExploration = 0.5

	// masteryGoalReady is the level at which a goal concept counts as done.
	masteryGoalReady = 2.0
	// masteryDrillCeiling is the level above which weakness drills stop.
	masteryDrillCeiling = 3.0
	// flowRescueMastery is the minimum mastery a flow-trigger concept
	// needs to serve as frustration relief.
	flowRescueMastery = 2.0

	// thresholdTuneStep is how far one hot frustration observation lowers
	// the learner's threshold.
	thresholdTuneStep = 0.02
	// hotFrustration is the observation level that tightens the threshold.
	hotFrustration = 0.7

	fastSolve = 60 * time.Second
)

// Session is the live, in-session state for one learner. It is rebuilt at
// session start and never persisted.
type Session struct {
	StartedAt  time.Time
	Challenges int // challenges attempted this session

	CurrentConcept   string
	ConceptStartedAt time.Time
	CurrentStyle     engagement.Style
}

// Context bundles everything one recommendation decision reads: the
// learner's aggregate state plus live affect and session signals. The
// engine mutates it only where a matched branch specifies a side effect.
type Context struct {
	Profile    *domain.LearnerProfile
	Deck       *memory.Deck
	Struggle   *struggle.Tracker
	Engagement *engagement.Tracker
	Affect     *affect.Monitor
	Session    *Session
	Now        time.Time
}

// rule is one tier of the priority cascade. A nil result passes control to
// the next tier; the final tier always produces a recommendation.
type rule struct {
	name  string
	apply func(*Engine, *Context) *domain.Recommendation
}

// Engine turns learner state into exactly one prioritized recommendation
// per call. The cascade is an ordered rule list so inserting or reordering
// a tier stays a localized change.
type Engine struct {
	graph *domain.Graph
	rules []rule
}

// NewEngine creates an engine over the shared concept graph.
func NewEngine(graph *domain.Graph) *Engine {
	return &Engine{
		graph: graph,
		rules: []rule{
			{name: "break", apply: (*Engine).ruleBreak},
			{name: "frustration_relief", apply: (*Engine).ruleFrustrationRelief},
			{name: "spaced_review", apply: (*Engine).ruleSpacedReview},
			{name: "goal_progress", apply: (*Engine).ruleGoalProgress},
			{name: "weakness_drill", apply: (*Engine).ruleWeaknessDrill},
			{name: "exploration", apply: (*Engine).ruleExploration},
		},
	}
}

// RecommendNext evaluates the cascade and returns the first match. The
// exploration tier always matches, so every call yields a recommendation.
func (e *Engine) RecommendNext(ctx *Context) domain.Recommendation {
	for _, r := range e.rules {
		if rec := r.apply(e, ctx); rec != nil {
			return *rec
		}
	}
	// Unreachable: the exploration tier has no guard.
	rec := domain.NewRecommendation(domain.ActionChallenge, "", "Pick anything that looks interesting.", confidenceExploration, ctx.Now)
	return rec
}

func (e *Engine) ruleBreak(ctx *Context) *domain.Recommendation {
	elapsed := ctx.Now.Sub(ctx.Session.StartedAt)

	var reason string
	switch {
	case elapsed > ctx.Profile.Pacing.SessionSweetSpot:
		reason = fmt.Sprintf("You've been at it for %s, past your usual sweet spot.", elapsed.Round(time.Minute))
	case ctx.Profile.Pacing.BreakCadence > 0 && ctx.Session.Challenges >= ctx.Profile.Pacing.BreakCadence:
		reason = fmt.Sprintf("That's %d challenges in a row; a pause will help them stick.", ctx.Session.Challenges)
	case ctx.Affect.NeedsBreak():
		reason = "Your recent signals suggest fatigue; a short break resets them."
	default:
		return nil
	}

	rec := domain.NewRecommendation(domain.ActionBreak, "", reason, confidenceBreak, ctx.Now)
	return &rec
}

func (e *Engine) ruleFrustrationRelief(ctx *Context) *domain.Recommendation {
	level := ctx.Affect.Level(affect.DimensionFrustration)
	if level <= ctx.Profile.Pacing.FrustrationThreshold {
		return nil
	}

	// Most recently confirmed flow trigger first.
	for i := len(ctx.Profile.FlowTriggers) - 1; i >= 0; i-- {
		concept := ctx.Profile.FlowTriggers[i]
		if ctx.Profile.MasteryOf(concept) >= flowRescueMastery {
			rec := domain.NewRecommendation(
				domain.ActionChallenge,
				concept,
				fmt.Sprintf("Things feel rough right now; %s usually puts you in the zone.", concept),
				confidenceFlowRescue,
				ctx.Now,
			)
			return &rec
		}
	}
	return nil
}

func (e *Engine) ruleSpacedReview(ctx *Context) *domain.Recommendation {
	card, ok := ctx.Deck.NextDue(ctx.Now)
	if !ok {
		return nil
	}

	reason := fmt.Sprintf("Time to refresh %s before it fades.", card.ConceptID)
	if card.Due != nil {
		reason = fmt.Sprintf("%s has been waiting %s for review.", card.ConceptID, ctx.Now.Sub(*card.Due).Round(time.Hour))
	}
	rec := domain.NewRecommendation(domain.ActionSpacedReview, card.ConceptID, reason, confidenceSpaced, ctx.Now)
	return &rec
}

func (e *Engine) ruleGoalProgress(ctx *Context) *domain.Recommendation {
	if ctx.Profile.Goal == "" || len(ctx.Profile.GoalConcepts) == 0 {
		// A declared goal with an empty concept list falls through to
		// the exploration tier rather than erroring.
		return nil
	}

	for _, concept := range ctx.Profile.GoalConcepts {
		if ctx.Profile.MasteryOf(concept) < masteryGoalReady {
			rec := domain.NewRecommendation(
				domain.ActionGoalStep,
				concept,
				fmt.Sprintf("Next step toward %q: %s.", ctx.Profile.Goal, concept),
				confidenceGoalStep,
				ctx.Now,
			)
			rec.ChallengeID = fmt.Sprintf("goal/%s", concept)
			return &rec
		}
	}
	return nil
}

func (e *Engine) ruleWeaknessDrill(ctx *Context) *domain.Recommendation {
	var candidates []string
	for concept, failures := range ctx.Profile.StruggleCounts {
		if failures >= 2 && ctx.Profile.MasteryOf(concept) < masteryDrillCeiling {
			candidates = append(candidates, concept)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		fi, fj := ctx.Profile.StruggleCounts[candidates[i]], ctx.Profile.StruggleCounts[candidates[j]]
		if fi != fj {
			return fi > fj
		}
		return candidates[i] < candidates[j]
	})
	target := candidates[0]

	reason := fmt.Sprintf("%s keeps tripping you up; a focused rep will help.", target)
	if plan, ok := ctx.Struggle.PlanResurface(target, ctx.Now, struggle.DefaultCooldown); ok {
		switch plan.Approach {
		case struggle.ApproachDisguised:
			reason = fmt.Sprintf("A fresh kind of challenge (it quietly revisits %s).", target)
		case struggle.ApproachScaffolded:
			reason = fmt.Sprintf("%s again, but broken into smaller steps this time.", target)
		case struggle.ApproachFunIntegrated:
			reason = fmt.Sprintf("Another look at %s, blended with what you enjoy.", target)
		}
	}

	rec := domain.NewRecommendation(domain.ActionChallenge, target, reason, confidenceWeakness, ctx.Now)
	return &rec
}

func (e *Engine) ruleExploration(ctx *Context) *domain.Recommendation {
	style := ctx.Engagement.RecommendStyle()
	rec := domain.NewRecommendation(
		domain.ActionChallenge,
		"",
		fmt.Sprintf("Nothing is urgent. Try something new that leans %s.", style),
		confidenceExploration,
		ctx.Now,
	)
	return &rec
}

// ExpectedTime is the baseline solve time for a concept of the given
// difficulty level, used to grade recall quality from telemetry.
func ExpectedTime(level int) time.Duration {
	return time.Duration(60+30*level) * time.Second
}

// ApplyAttempt folds one observed attempt into every tracker the engine
// reads: struggle statistics, the memory deck, mastery, the legacy
// last-seen/interval pair, session counters, and flow detection. It
// returns the updated memory card.
func (e *Engine) ApplyAttempt(ctx *Context, conceptID string, success bool, elapsed time.Duration, hints int) memory.Card {
	concept := e.graph.Get(conceptID)

	ctx.Struggle.RecordAttempt(conceptID, success, elapsed, hints, ctx.Now)

	quality := memory.QualityFromTelemetry(success, elapsed, ExpectedTime(concept.Level), hints)
	card := ctx.Deck.Review(conceptID, quality, ctx.Now)

	if success {
		if hints == 0 && elapsed < fastSolve {
			ctx.Profile.RaiseMastery(conceptID, 1)
		} else {
			ctx.Profile.RaiseMastery(conceptID, 0.5)
		}
	} else {
		ctx.Profile.RecordStruggle(conceptID)
	}
	ctx.Profile.TouchConcept(conceptID, success, ctx.Now)

	ctx.Session.Challenges++
	engaged := elapsed
	if ctx.Session.CurrentConcept == conceptID && !ctx.Session.ConceptStartedAt.IsZero() {
		if onConcept := ctx.Now.Sub(ctx.Session.ConceptStartedAt); onConcept > engaged {
			engaged = onConcept
		}
	}
	ctx.Session.CurrentConcept = conceptID
	ctx.Session.ConceptStartedAt = ctx.Now

	signal := engagement.FlowSignal{
		EngagedTime: engaged,
		Stability:   ctx.Affect.Stability(),
		Balance:     challengeSkillBalance(concept.Level, ctx.Profile.MasteryOf(conceptID)),
	}
	if ctx.Engagement.ObserveFlow(signal, conceptID, ctx.Now) {
		ctx.Profile.AddFlowTrigger(conceptID)
	}

	return card
}

// ApplyAffect folds one live affect observation into the monitor and
// applies its side effects: hot frustration tightens the learner's
// threshold (modeling rising sensitivity), and once both channels carry
// signal the current challenge style receives a derived enjoyment nudge.
func (e *Engine) ApplyAffect(ctx *Context, dim affect.Dimension, value float64, context string) {
	ctx.Affect.Observe(dim, value, ctx.Now)

	if dim == affect.DimensionFrustration && value > hotFrustration {
		ctx.Profile.LowerFrustrationThreshold(thresholdTuneStep)
	}

	if ctx.Session.CurrentStyle != "" &&
		ctx.Affect.SampleCount(affect.DimensionEngagement) > 0 &&
		ctx.Affect.SampleCount(affect.DimensionFrustration) > 0 {
		ctx.Engagement.ObserveSignals(
			ctx.Session.CurrentStyle,
			ctx.Affect.Level(affect.DimensionEngagement),
			ctx.Affect.Level(affect.DimensionFrustration),
			context,
			ctx.Now,
		)
	}
}

// challengeSkillBalance grades how well a concept's difficulty matches the
// learner's mastery, 1 for a perfect match.
func challengeSkillBalance(level int, mastery float64) float64 {
	diff := float64(level)/float64(domain.MaxConceptLevel) - mastery/domain.MaxMastery
	if diff < 0 {
		diff = -diff
	}
	return 1 - diff
}
