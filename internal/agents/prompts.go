package agents

import (
	"strings"

	"hermes/internal/domain/analysis"
	"hermes/pkg/errors"
	"hermes/pkg/templates"
)

// NotAvailable is substituted for any upstream report that is absent when a
// composite prompt is rendered. With the join barriers in place it should
// never appear during a full run; the single-stage entry point relies on it.
const NotAvailable = "Not available"

// Prompts renders agent prompts from the embedded template registry.
type Prompts struct {
	reg *templates.Registry
}

// NewPrompts creates a prompt renderer over a template registry.
func NewPrompts(reg *templates.Registry) *Prompts {
	if reg == nil {
		reg = templates.Get()
	}
	return &Prompts{reg: reg}
}

// System returns the fixed persona instruction for a stage. It never varies
// per call.
func (p *Prompts) System(stage Stage) (string, error) {
	tmpl, err := p.reg.GetTemplate("agents/" + string(stage))
	if err != nil {
		return "", errors.Wrapf(errors.ErrUnknownStage, "no system prompt for %q", stage)
	}
	return strings.TrimSpace(tmpl.Content), nil
}

// Research renders the user prompt for a research stage from the asset pair
// and looked-up snippets, joined on sentence boundaries.
func (p *Prompts) Research(stage Stage, assetPair string, snippets []string) (string, error) {
	if !stage.IsResearch() {
		return "", errors.Wrapf(errors.ErrUnknownStage, "%q is not a research stage", stage)
	}

	out, err := p.reg.Render("prompts/"+string(stage), map[string]string{
		"AssetPair": assetPair,
		"Snippets":  strings.Join(snippets, ". "),
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

// Opinion renders the bull or bear user prompt embedding all four research
// reports plus historical context. The sibling opinion report is never
// included.
func (p *Prompts) Opinion(stage Stage, st *analysis.State) (string, error) {
	var side string
	switch stage {
	case StageBull:
		side = "bullish"
	case StageBear:
		side = "bearish"
	default:
		return "", errors.Wrapf(errors.ErrUnknownStage, "%q is not an opinion stage", stage)
	}

	out, err := p.reg.Render("prompts/opinion", map[string]string{
		"AssetPair":  st.AssetPair,
		"Case":       side,
		"Researcher": orNotAvailable(st.ResearcherReport),
		"Sentiment":  orNotAvailable(st.SentimentReport),
		"News":       orNotAvailable(st.NewsReport),
		"Macro":      orNotAvailable(st.MacroReport),
		"Historical": st.Historical.PromptContext(),
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

// Trader renders the synthesis prompt embedding all six prior reports plus
// historical context.
func (p *Prompts) Trader(st *analysis.State) (string, error) {
	out, err := p.reg.Render("prompts/trader", map[string]string{
		"AssetPair":  st.AssetPair,
		"Researcher": orNotAvailable(st.ResearcherReport),
		"Sentiment":  orNotAvailable(st.SentimentReport),
		"News":       orNotAvailable(st.NewsReport),
		"Macro":      orNotAvailable(st.MacroReport),
		"Bull":       orNotAvailable(st.BullReport),
		"Bear":       orNotAvailable(st.BearReport),
		"Historical": st.Historical.PromptContext(),
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

func orNotAvailable(report string) string {
	if report == "" {
		return NotAvailable
	}
	return report
}
