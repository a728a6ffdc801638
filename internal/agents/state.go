package agents

import (
	"sync"

	"hermes/internal/domain/analysis"
	"hermes/pkg/errors"
)

// runState guards the per-run AnalysisState. Stage workers never touch it
// directly: they post their report to the engine, and the engine merges it
// here. The single mutex makes report writes and join-barrier checks atomic
// with respect to each other.
type runState struct {
	mu   sync.Mutex
	st   *analysis.State
	done map[Stage]bool
}

func newRunState(st *analysis.State) *runState {
	return &runState{
		st:   st,
		done: make(map[Stage]bool, len(AllStages)),
	}
}

// setReport records a completed stage's report. Each stage writes exactly
// once per run.
func (r *runState) setReport(stage Stage, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done[stage] {
		return errors.Wrapf(errors.ErrReportExists, "stage %s", stage)
	}

	switch stage {
	case StageResearcher:
		r.st.ResearcherReport = text
	case StageSentiment:
		r.st.SentimentReport = text
	case StageNews:
		r.st.NewsReport = text
	case StageMacro:
		r.st.MacroReport = text
	case StageBull:
		r.st.BullReport = text
	case StageBear:
		r.st.BearReport = text
	case StageTrader:
		r.st.TraderReport = text
	default:
		return errors.Wrapf(errors.ErrUnknownStage, "%q", stage)
	}

	r.done[stage] = true
	return nil
}

// ready reports whether every declared predecessor of stage has completed.
func (r *runState) ready(stage Stage) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, dep := range stage.Deps() {
		if !r.done[dep] {
			return false
		}
	}
	return true
}

// snapshot returns a copy of the state consistent with all reports merged so
// far. Stage workers read from snapshots, never from the live state.
func (r *runState) snapshot() analysis.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.st
}

// setDecision records the extracted decision and price range.
func (r *runState) setDecision(decision analysis.Decision, priceRange string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.st.FinalDecision = decision
	r.st.PredictedPriceRange = priceRange
}
