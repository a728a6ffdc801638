package agents

import (
	"context"
	"time"

	"hermes/internal/adapters/ai"
	"hermes/internal/adapters/search"
	"hermes/internal/domain/analysis"
	"hermes/internal/metrics"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

// Engine executes the seven-stage dependency graph over one AnalysisState
// exactly once per invocation. Stage workers run concurrently where the graph
// allows; only the engine's scheduler goroutine mutates the run state, so
// join-barrier checks are atomic with respect to sibling completions.
type Engine struct {
	completer    ai.Completer
	search       search.Lookup
	repo         analysis.Repository
	prompts      *Prompts
	fallback     ai.FallbackFunc
	stageTimeout time.Duration
	log          *logger.Logger
}

// EngineDeps carries the engine's collaborators.
type EngineDeps struct {
	Completer    ai.Completer
	Search       search.Lookup
	Repo         analysis.Repository
	Prompts      *Prompts
	Fallback     ai.FallbackFunc
	StageTimeout time.Duration
}

// NewEngine creates an orchestration engine.
func NewEngine(deps EngineDeps) *Engine {
	if deps.Prompts == nil {
		deps.Prompts = NewPrompts(nil)
	}
	if deps.Fallback == nil {
		deps.Fallback = ai.DefaultFallback
	}
	if deps.StageTimeout <= 0 {
		deps.StageTimeout = 2 * time.Minute
	}

	return &Engine{
		completer:    deps.Completer,
		search:       deps.Search,
		repo:         deps.Repo,
		prompts:      deps.Prompts,
		fallback:     deps.Fallback,
		stageTimeout: deps.StageTimeout,
		log:          logger.Get().With("component", "engine"),
	}
}

type stageResult struct {
	stage  Stage
	report string
}

// Run executes the full stage graph for a session and persists the result.
// Per-stage failures are absorbed into fallback reports; only an unknown
// session or a persistence failure aborts the run.
func (e *Engine) Run(ctx context.Context, sessionID string) (*analysis.State, error) {
	start := time.Now()

	rec, err := e.repo.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	e.log.Infof("Starting analysis run for %s (session %s)", rec.AssetPair, sessionID)

	st := &analysis.State{
		AssetPair:  rec.AssetPair,
		Historical: e.fetchMemory(ctx, rec.AssetPair),
	}
	rs := newRunState(st)

	results := make(chan stageResult, len(AllStages))
	launched := make(map[Stage]bool, len(AllStages))

	// Workers read an immutable snapshot taken at launch time, after every
	// dependency has already been merged, and post their report back here.
	launch := func(stage Stage) {
		launched[stage] = true
		snap := rs.snapshot()
		go func() {
			results <- stageResult{stage: stage, report: e.executeStage(ctx, stage, &snap)}
		}()
	}

	for _, stage := range AllStages {
		if len(stage.Deps()) == 0 {
			launch(stage)
		}
	}

	for remaining := len(AllStages); remaining > 0; remaining-- {
		res := <-results
		if err := rs.setReport(res.stage, res.report); err != nil {
			e.log.Errorf("Dropping duplicate report for stage %s: %v", res.stage, err)
			continue
		}

		for _, stage := range AllStages {
			if !launched[stage] && rs.ready(stage) {
				launch(stage)
			}
		}
	}

	rs.setDecision(ExtractDecision(st.TraderReport), ExtractPriceRange(st.TraderReport))

	if err := e.repo.SaveState(ctx, sessionID, st); err != nil {
		metrics.RunsCompleted.WithLabelValues("error").Inc()
		return st, errors.Wrapf(err, "session %s", sessionID)
	}

	metrics.RunsCompleted.WithLabelValues("success").Inc()
	metrics.RunDuration.Observe(time.Since(start).Seconds())
	e.log.Infof("Analysis run complete for %s: %s (duration %v)",
		rec.AssetPair, st.FinalDecision, time.Since(start))

	return st, nil
}

// RunStage executes one named stage against whatever upstream fields already
// exist in storage, substituting placeholders for missing ones. It does not
// enforce the join barriers; it is a convenience for re-running one stage.
func (e *Engine) RunStage(ctx context.Context, sessionID string, stage Stage) (string, error) {
	rec, err := e.repo.GetBySession(ctx, sessionID)
	if err != nil {
		return "", err
	}

	st := stateFromRecord(rec)
	report := e.executeStage(ctx, stage, st)

	if err := e.repo.SaveReport(ctx, sessionID, string(stage), report); err != nil {
		return "", err
	}

	if stage == StageTrader {
		decision := ExtractDecision(report)
		if err := e.repo.SaveDecision(ctx, sessionID, decision, ExtractPriceRange(report)); err != nil {
			return "", err
		}
	}

	return report, nil
}

// executeStage performs one stage's lookups and completion call and returns
// its report text. It never fails: prompt or upstream errors produce the
// stage's fallback report.
func (e *Engine) executeStage(ctx context.Context, stage Stage, snap *analysis.State) string {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, e.stageTimeout)
	defer cancel()

	system, err := e.prompts.System(stage)
	if err != nil {
		e.log.Errorf("No system prompt for stage %s: %v", stage, err)
		return e.fallback(string(stage), snap.AssetPair)
	}

	var user string
	switch {
	case stage.IsResearch():
		snippets := e.search.Search(ctx, search.BuildQuery(string(stage), snap.AssetPair))
		user, err = e.prompts.Research(stage, snap.AssetPair, snippets)
	case stage == StageTrader:
		user, err = e.prompts.Trader(snap)
	default:
		user, err = e.prompts.Opinion(stage, snap)
	}
	if err != nil {
		e.log.Errorf("Prompt rendering failed for stage %s: %v", stage, err)
		return e.fallback(string(stage), snap.AssetPair)
	}

	report := e.completer.Complete(ctx, string(stage), system, user)

	metrics.StageRuns.WithLabelValues(string(stage)).Inc()
	metrics.StageDuration.WithLabelValues(string(stage)).Observe(time.Since(start).Seconds())

	return report
}

// fetchMemory looks up the most recent completed analysis for the asset pair.
// Lookup failure is treated as "no memory found" and never blocks the run.
func (e *Engine) fetchMemory(ctx context.Context, assetPair string) *analysis.Analysis {
	prior, err := e.repo.LatestCompletedByAsset(ctx, assetPair)
	if err != nil {
		if !errors.Is(err, errors.ErrNotFound) {
			e.log.Warnf("Memory lookup failed for %s: %v", assetPair, err)
		}
		e.log.Debugf("No prior analysis for %s", assetPair)
		return nil
	}

	e.log.Infof("Found prior analysis for %s from %s", assetPair, prior.CreatedAt.Format(time.RFC3339))
	return prior
}

// stateFromRecord builds a run state view over a persisted record for the
// single-stage entry point.
func stateFromRecord(rec *analysis.Analysis) *analysis.State {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}

	return &analysis.State{
		AssetPair:        rec.AssetPair,
		ResearcherReport: deref(rec.ResearcherReport),
		SentimentReport:  deref(rec.SentimentReport),
		NewsReport:       deref(rec.NewsReport),
		MacroReport:      deref(rec.MacroReport),
		BullReport:       deref(rec.BullReport),
		BearReport:       deref(rec.BearReport),
		TraderReport:     deref(rec.TraderReport),
	}
}
