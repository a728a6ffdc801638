package agents

import (
	"hermes/pkg/errors"
)

// Stage identifies one prompt-driven unit of work producing exactly one
// report field.
type Stage string

const (
	StageResearcher Stage = "researcher"
	StageSentiment  Stage = "sentiment"
	StageNews       Stage = "news"
	StageMacro      Stage = "macro"
	StageBull       Stage = "bull"
	StageBear       Stage = "bear"
	StageTrader     Stage = "trader"
)

// ResearchStages are the independent first-wave stages. They depend only on
// the memory fetch, never on each other.
var ResearchStages = []Stage{StageResearcher, StageSentiment, StageNews, StageMacro}

// OpinionStages consume all four research reports; neither sees the other's
// output.
var OpinionStages = []Stage{StageBull, StageBear}

// AllStages lists every stage in a full run, in dependency order.
var AllStages = []Stage{
	StageResearcher, StageSentiment, StageNews, StageMacro,
	StageBull, StageBear,
	StageTrader,
}

// stageDeps declares the dependency graph: a stage becomes runnable only once
// every listed predecessor has written its report. The graph is a fixed DAG,
// interpreted by the engine's scheduler.
var stageDeps = map[Stage][]Stage{
	StageResearcher: {},
	StageSentiment:  {},
	StageNews:       {},
	StageMacro:      {},
	StageBull:       {StageResearcher, StageSentiment, StageNews, StageMacro},
	StageBear:       {StageResearcher, StageSentiment, StageNews, StageMacro},
	StageTrader:     {StageResearcher, StageSentiment, StageNews, StageMacro, StageBull, StageBear},
}

// Deps returns the declared predecessor stages for a stage.
func (s Stage) Deps() []Stage {
	return stageDeps[s]
}

// IsResearch reports whether the stage performs a snippet lookup before its
// completion call.
func (s Stage) IsResearch() bool {
	switch s {
	case StageResearcher, StageSentiment, StageNews, StageMacro:
		return true
	}
	return false
}

// ParseStage validates a stage name from an external caller.
func ParseStage(name string) (Stage, error) {
	s := Stage(name)
	if _, ok := stageDeps[s]; !ok {
		return "", errors.Wrapf(errors.ErrUnknownStage, "%q", name)
	}
	return s, nil
}
