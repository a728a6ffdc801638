package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"hermes/internal/adapters/ai"
	"hermes/internal/adapters/config"
	"hermes/internal/adapters/search"
	"hermes/internal/agents"
	"hermes/internal/domain/analysis"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

// AnalysisHandler serves the analysis session endpoints. Provider credentials
// arrive per request, so the completion client and engine are built per run.
type AnalysisHandler struct {
	repo      analysis.Repository
	searchSvc search.Lookup
	prompts   *agents.Prompts
	aiCfg     config.AIConfig
	engineCfg config.EngineConfig
	log       *logger.Logger
}

// NewAnalysisHandler creates the analysis endpoint handler.
func NewAnalysisHandler(
	repo analysis.Repository,
	searchSvc search.Lookup,
	aiCfg config.AIConfig,
	engineCfg config.EngineConfig,
) *AnalysisHandler {
	return &AnalysisHandler{
		repo:      repo,
		searchSvc: searchSvc,
		prompts:   agents.NewPrompts(nil),
		aiCfg:     aiCfg,
		engineCfg: engineCfg,
		log:       logger.Get().With("component", "analysis_api"),
	}
}

type createRequest struct {
	AssetPair string `json:"assetPair"`
}

type credentialsRequest struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey"`
}

// HandleCreate creates a new analysis session for an asset pair.
// POST /api/analysis
func (h *AnalysisHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AssetPair == "" {
		writeError(w, http.StatusBadRequest, "asset pair is required")
		return
	}

	sessionID := uuid.NewString()
	if err := h.repo.Create(r.Context(), sessionID, req.AssetPair); err != nil {
		h.log.ErrorWithContext(r.Context(), err, map[string]string{"endpoint": "create"})
		writeError(w, http.StatusInternalServerError, "failed to create analysis session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"sessionId": sessionID,
		"assetPair": req.AssetPair,
	})
}

// HandleRun executes the full orchestration for a session.
// POST /api/analysis/{sessionId}/run
func (h *AnalysisHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")

	engine, ok := h.buildEngine(w, r)
	if !ok {
		return
	}

	st, err := engine.Run(r.Context(), sessionID)
	if err != nil {
		h.log.ErrorWithContext(r.Context(), err, map[string]string{
			"endpoint": "run",
			"session":  sessionID,
		})
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":             true,
		"sessionId":           sessionID,
		"finalDecision":       st.FinalDecision,
		"predictedPriceRange": st.PredictedPriceRange,
	})
}

// HandleRunStage executes a single named stage for a session.
// POST /api/analysis/{sessionId}/agents/{agent}
func (h *AnalysisHandler) HandleRunStage(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")

	stage, err := agents.ParseStage(r.PathValue("agent"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	engine, ok := h.buildEngine(w, r)
	if !ok {
		return
	}

	report, err := engine.RunStage(r.Context(), sessionID, stage)
	if err != nil {
		h.log.ErrorWithContext(r.Context(), err, map[string]string{
			"endpoint": "run_stage",
			"session":  sessionID,
			"stage":    string(stage),
		})
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"sessionId": sessionID,
		"agent":     string(stage),
		"report":    report,
	})
}

// HandleGet returns the persisted analysis record for a session.
// GET /api/analysis/{sessionId}
func (h *AnalysisHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := h.repo.GetBySession(r.Context(), r.PathValue("sessionId"))
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// buildEngine validates request credentials and assembles a per-request
// engine. On failure it writes the error response and returns ok=false.
func (h *AnalysisHandler) buildEngine(w http.ResponseWriter, r *http.Request) (*agents.Engine, bool) {
	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	if creds.Provider == "" || creds.APIKey == "" {
		writeError(w, http.StatusBadRequest, errors.ErrMissingCredentials.Error())
		return nil, false
	}

	completer, err := ai.BuildClient(r.Context(), h.aiCfg, creds.Provider, creds.APIKey)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return nil, false
	}

	return agents.NewEngine(agents.EngineDeps{
		Completer:    completer,
		Search:       h.searchSvc,
		Repo:         h.repo,
		Prompts:      h.prompts,
		StageTimeout: h.engineCfg.StageTimeout,
	}), true
}
