package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/authorityshow/editor-api/internal/models"
	"github.com/authorityshow/editor-api/internal/services/aicut"
	"github.com/authorityshow/editor-api/internal/services/artifacts"
	"github.com/authorityshow/editor-api/internal/services/credits"
	"github.com/authorityshow/editor-api/internal/services/edits"
	"github.com/authorityshow/editor-api/internal/services/segments"
	"github.com/authorityshow/editor-api/internal/services/sfx"
	"github.com/authorityshow/editor-api/internal/services/soundgen"
	"github.com/authorityshow/editor-api/internal/services/textgen"
	"github.com/authorityshow/editor-api/internal/services/transcriber"
	apperrors "github.com/authorityshow/editor-api/pkg/errors"
)

// Deps are the collaborators one orchestrator needs
type Deps struct {
	Ledger      credits.Ledger
	Artifacts   artifacts.Store
	EditLog     edits.EditLog
	Runs        RunRecorder
	Transcriber transcriber.Transcriber
	TextGen     textgen.Generator
	Images      textgen.ImageGenerator
	Speech      textgen.SpeechGenerator
	SoundGen    soundgen.Generator
	Enhancer    VoiceEnhancer
	Extractor   segments.Extractor
	Cuts        CutAnalyzer
	Planner     SfxPlanner
	Mixer       SfxMixer
}

// Request is one pipeline invocation. Steps may arrive in any order and
// with duplicates; execution always follows the canonical order.
type Request struct {
	UserID         string
	EpisodeID      string
	Audio          []byte
	Steps          []string
	Cuts           []segments.Interval
	TargetLanguage string
	VoiceID        string
	EditID         string
}

// Report is the response body for one run. Optional fields are present
// only if their producing step ran; on failure FailedStep and Error carry
// the partial outcome alongside whatever StepsApplied accumulated.
type Report struct {
	FinalAudioURL        string                 `json:"finalAudioUrl,omitempty"`
	StepsApplied         []string               `json:"stepsApplied"`
	FailedStep           string                 `json:"failedStep,omitempty"`
	Error                string                 `json:"error,omitempty"`
	Details              map[string]interface{} `json:"details,omitempty"`
	Transcript           string                 `json:"transcript,omitempty"`
	TranslatedTranscript string                 `json:"translatedTranscript,omitempty"`
	Cuts                 []aicut.CertaintyEntry `json:"cuts,omitempty"`
	SentenceClips        []aicut.SentenceClip   `json:"sentenceClips,omitempty"`
	AISuggestions        string                 `json:"aiSuggestions,omitempty"`
	Quotes               []string               `json:"quotes,omitempty"`
	ShowNotes            string                 `json:"showNotes,omitempty"`
	CleanTranscript      string                 `json:"cleanTranscript,omitempty"`
	SfxPlan              []textgen.SfxPlanEntry `json:"sfxPlan,omitempty"`
	SfxClips             []sfx.Clip             `json:"sfxClips,omitempty"`
	QuoteImages          []string               `json:"quoteImages,omitempty"`
	Osint                string                 `json:"osint,omitempty"`
	IntroOutroScript     string                 `json:"introOutroScript,omitempty"`
	IntroOutroAudioURL   string                 `json:"introOutroAudioUrl,omitempty"`
	TranslatedClipURL    string                 `json:"translatedClipUrl,omitempty"`
}

// Orchestrator runs caller-selected steps in canonical order against one
// shared State, gating each through the credit ledger.
type Orchestrator struct {
	registry  *Registry
	ledger    credits.Ledger
	artifacts artifacts.Store
	editLog   edits.EditLog
	runs      RunRecorder
	tempDir   string
}

func New(deps Deps, tempDir string) *Orchestrator {
	return &Orchestrator{
		registry:  newRegistry(buildSteps(deps)),
		ledger:    deps.Ledger,
		artifacts: deps.Artifacts,
		editLog:   deps.EditLog,
		runs:      deps.Runs,
		tempDir:   tempDir,
	}
}

// Run executes the request and returns the report plus the HTTP status to
// serve it with. Validation failures reject before any side effect; a step
// failure stops the run and reports the partial progress. Credits debited
// for earlier successful steps are never refunded.
func (o *Orchestrator) Run(ctx context.Context, req *Request) (*Report, int) {
	steps, err := o.validate(req)
	if err != nil {
		return failureReport(nil, "", err), httpCode(err)
	}

	runID := uuid.New().String()

	if err := os.MkdirAll(o.tempDir, 0755); err != nil {
		return failureReport(nil, "", err), http.StatusInternalServerError
	}
	workDir, err := os.MkdirTemp(o.tempDir, "run_")
	if err != nil {
		return failureReport(nil, "", err), http.StatusInternalServerError
	}
	defer os.RemoveAll(workDir)

	audioPath := filepath.Join(workDir, "source.mp3")
	if err := os.WriteFile(audioPath, req.Audio, 0644); err != nil {
		return failureReport(nil, "", err), http.StatusInternalServerError
	}

	state := &State{
		WorkDir:        workDir,
		AudioPath:      audioPath,
		ArtifactPrefix: "runs/" + runID,
		UserID:         req.UserID,
		EpisodeID:      req.EpisodeID,
		TargetLanguage: req.TargetLanguage,
		VoiceID:        req.VoiceID,
		ManualCuts:     req.Cuts,
		StepsApplied:   []string{},
	}

	for _, step := range steps {
		if err := o.runStep(ctx, step, state); err != nil {
			return o.fail(ctx, state, runID, step.Name, err)
		}
		state.StepsApplied = append(state.StepsApplied, step.Name)
	}

	final, err := os.Open(state.AudioPath)
	if err != nil {
		return o.fail(ctx, state, runID, "", apperrors.StorageError("upload", err))
	}
	finalURL, err := o.artifacts.Upload(ctx, final, state.ArtifactPrefix+"/final.mp3")
	final.Close()
	if err != nil {
		return o.fail(ctx, state, runID, "", err)
	}

	record := &models.EditRecord{
		EpisodeID:   req.EpisodeID,
		UserID:      req.UserID,
		EditType:    "pipeline",
		ArtifactURL: finalURL,
		DisplayName: fmt.Sprintf("Edited episode %s", req.EpisodeID),
		Metadata: models.JSONMap{
			"steps":   state.StepsApplied,
			"edit_id": req.EditID,
		},
	}
	if err := o.editLog.Append(ctx, record); err != nil {
		log.Printf("[WARN] edit record append failed for run %s: %v", runID, err)
	}

	o.recordRun(ctx, runID, state, models.RunStatusCompleted, "", "", finalURL)

	report := buildReport(state)
	report.FinalAudioURL = finalURL
	return report, http.StatusOK
}

// runStep applies the step's charging policy around its preconditions and
// body. Pre-charge debits before the body runs; post-charge only after it
// succeeded.
func (o *Orchestrator) runStep(ctx context.Context, step *Step, state *State) error {
	if err := step.Preconditions(state); err != nil {
		return err
	}

	if step.Policy == PreCharge {
		if err := o.ledger.TryDebit(ctx, state.UserID, step.Meter); err != nil {
			return err
		}
	}

	if err := step.Run(ctx, state); err != nil {
		return err
	}

	if step.Policy == PostCharge {
		if err := o.ledger.TryDebit(ctx, state.UserID, step.Meter); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) validate(req *Request) ([]*Step, error) {
	if req.UserID == "" {
		return nil, apperrors.MissingFieldError("userId")
	}
	if req.EpisodeID == "" {
		return nil, apperrors.MissingFieldError("episodeId")
	}
	if len(req.Steps) == 0 {
		return nil, apperrors.ValidationError("steps", "at least one step is required")
	}

	steps, err := o.registry.Resolve(req.Steps)
	if err != nil {
		return nil, err
	}

	if len(req.Audio) == 0 {
		return nil, apperrors.MissingFieldError("audio")
	}

	for _, step := range steps {
		if step.Name != StepManualCut {
			continue
		}
		if len(req.Cuts) == 0 {
			return nil, apperrors.MissingFieldError("cuts")
		}
		if err := segments.ValidateAll(req.Cuts); err != nil {
			return nil, apperrors.ValidationError("cuts", err.Error())
		}
	}

	if req.TargetLanguage == "" {
		req.TargetLanguage = "English"
	}
	return steps, nil
}

func (o *Orchestrator) fail(ctx context.Context, state *State, runID, stepName string, err error) (*Report, int) {
	log.Printf("[ERROR] pipeline run %s failed at step '%s': %v", runID, stepName, err)
	o.recordRun(ctx, runID, state, models.RunStatusFailed, stepName, err.Error(), "")
	return failureReport(state, stepName, err), httpCode(err)
}

func (o *Orchestrator) recordRun(ctx context.Context, runID string, state *State, status, failedStep, message, finalURL string) {
	run := &models.PipelineRun{
		UUID:          runID,
		UserID:        state.UserID,
		EpisodeID:     state.EpisodeID,
		Status:        status,
		StepsApplied:  models.StringList(state.StepsApplied),
		FailedStep:    failedStep,
		ErrorMessage:  message,
		FinalAudioURL: finalURL,
	}
	if err := o.runs.Record(ctx, run); err != nil {
		log.Printf("[WARN] pipeline run record failed for %s: %v", runID, err)
	}
}

// buildReport projects the accumulated state into the response shape
func buildReport(state *State) *Report {
	report := &Report{StepsApplied: state.StepsApplied}
	if report.StepsApplied == nil {
		report.StepsApplied = []string{}
	}

	report.Transcript = state.transcriptText()
	report.TranslatedTranscript = state.TranslatedText
	report.AISuggestions = state.Suggestions
	report.Quotes = state.Quotes
	report.ShowNotes = state.ShowNotes
	report.CleanTranscript = state.CleanTranscript
	report.SfxPlan = state.SfxPlan
	report.SfxClips = state.SfxClips
	report.QuoteImages = state.QuoteImageURLs
	report.Osint = state.Osint
	report.IntroOutroScript = state.IntroOutroScript
	report.IntroOutroAudioURL = state.IntroOutroAudioURL
	report.TranslatedClipURL = state.TranslatedClipURL

	if state.Analysis != nil {
		report.Cuts = state.Analysis.SuggestedCuts
		report.SentenceClips = state.Analysis.SentenceClips
	}
	return report
}

func failureReport(state *State, stepName string, err error) *Report {
	report := &Report{StepsApplied: []string{}}
	if state != nil {
		report = buildReport(state)
	}
	report.FailedStep = stepName
	report.Error = err.Error()

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && len(appErr.Details) > 0 {
		report.Details = appErr.Details
	}
	return report
}

// httpCode maps an error to the status the report is served with
func httpCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.GetHTTPCode()
	}
	return http.StatusInternalServerError
}
