package pipeline

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authorityshow/editor-api/internal/models"
	"github.com/authorityshow/editor-api/internal/services/segments"
	"github.com/authorityshow/editor-api/internal/services/sfx"
	"github.com/authorityshow/editor-api/internal/services/textgen"
	apperrors "github.com/authorityshow/editor-api/pkg/errors"
	"github.com/authorityshow/editor-api/pkg/transcript"
)

type fakeLedger struct {
	debits []string
	failOn map[string]bool
}

func (f *fakeLedger) TryDebit(ctx context.Context, userID, meter string) error {
	if f.failOn[meter] {
		return apperrors.InsufficientCreditsError(meter)
	}
	f.debits = append(f.debits, meter)
	return nil
}

func (f *fakeLedger) Balance(ctx context.Context, userID string) (int64, error) { return 0, nil }
func (f *fakeLedger) Grant(ctx context.Context, userID string, amount int64) error {
	return nil
}

type fakeStore struct {
	uploads    []string
	failUpload bool
}

func (f *fakeStore) Upload(ctx context.Context, data io.Reader, path string) (string, error) {
	if f.failUpload {
		return "", apperrors.StorageError("upload", errors.New("disk full"))
	}
	f.uploads = append(f.uploads, path)
	return "http://artifacts.local/" + path, nil
}

func (f *fakeStore) UploadBytes(ctx context.Context, data []byte, path string) (string, error) {
	return f.Upload(ctx, nil, path)
}

type fakeEditLog struct {
	records []*models.EditRecord
}

func (f *fakeEditLog) Append(ctx context.Context, record *models.EditRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeEditLog) History(ctx context.Context, userID string, limit int) ([]models.EditRecord, error) {
	return nil, nil
}

type fakeRuns struct {
	runs []*models.PipelineRun
}

func (f *fakeRuns) Record(ctx context.Context, run *models.PipelineRun) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRuns) last() *models.PipelineRun {
	if len(f.runs) == 0 {
		return nil
	}
	return f.runs[len(f.runs)-1]
}

type fakeTranscriber struct {
	err error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath, language string) (*transcript.Transcript, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &transcript.Transcript{
		Text:     "Hello world. This is a test.",
		Duration: 10,
		Words: []transcript.Word{
			{Text: "Hello", Start: 0, End: 0.5},
			{Text: "world.", Start: 0.5, End: 1.0},
			{Text: "This", Start: 2.0, End: 2.4},
			{Text: "is", Start: 2.4, End: 2.6},
			{Text: "a", Start: 2.6, End: 2.7},
			{Text: "test.", Start: 2.7, End: 3.2},
		},
	}, nil
}

// stubGenerator satisfies textgen.Generator with canned responses
type stubGenerator struct {
	cleanErr     error
	translateErr error
}

func (g *stubGenerator) CleanTranscript(ctx context.Context, tr string) (string, error) {
	if g.cleanErr != nil {
		return "", g.cleanErr
	}
	return "cleaned transcript", nil
}

func (g *stubGenerator) ShowNotes(ctx context.Context, tr string) (string, error) {
	return "show notes", nil
}

func (g *stubGenerator) Suggestions(ctx context.Context, tr string) (string, error) {
	return "suggestions", nil
}

func (g *stubGenerator) Quotes(ctx context.Context, tr string) ([]string, error) {
	return []string{"a quote"}, nil
}

func (g *stubGenerator) IntroOutroScript(ctx context.Context, tr string) (string, error) {
	return "intro outro script", nil
}

func (g *stubGenerator) Translate(ctx context.Context, tr, targetLanguage string) (string, error) {
	if g.translateErr != nil {
		return "", g.translateErr
	}
	return "translated transcript", nil
}

func (g *stubGenerator) Sentiment(ctx context.Context, tr string) (string, error) {
	return "neutral", nil
}

func (g *stubGenerator) BackgroundLookup(ctx context.Context, tr string) (string, error) {
	return "background", nil
}

func (g *stubGenerator) SentenceCertainty(ctx context.Context, tr string) ([]textgen.SentenceCertainty, error) {
	return nil, nil
}

func (g *stubGenerator) SfxPlan(ctx context.Context, tr string, maxEntries int) ([]textgen.SfxPlanEntry, error) {
	return nil, nil
}

type stubPlanner struct{}

func (stubPlanner) Plan(ctx context.Context, tr *transcript.Transcript, audioDuration float64) []textgen.SfxPlanEntry {
	return nil
}

type stubMixer struct{}

func (stubMixer) Apply(ctx context.Context, inputPath string, plan []textgen.SfxPlanEntry, workDir, artifactPrefix, outputPath string) ([]sfx.Clip, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, err
	}
	return nil, os.WriteFile(outputPath, data, 0644)
}

type harness struct {
	orch    *Orchestrator
	ledger  *fakeLedger
	store   *fakeStore
	editLog *fakeEditLog
	runs    *fakeRuns
	tempDir string
}

func newHarness(t *testing.T, mutate func(*Deps)) *harness {
	t.Helper()
	h := &harness{
		ledger:  &fakeLedger{failOn: map[string]bool{}},
		store:   &fakeStore{},
		editLog: &fakeEditLog{},
		runs:    &fakeRuns{},
		tempDir: t.TempDir(),
	}
	deps := Deps{
		Ledger:      h.ledger,
		Artifacts:   h.store,
		EditLog:     h.editLog,
		Runs:        h.runs,
		Transcriber: &fakeTranscriber{},
		TextGen:     &stubGenerator{},
		Planner:     stubPlanner{},
		Mixer:       stubMixer{},
	}
	if mutate != nil {
		mutate(&deps)
	}
	h.orch = New(deps, h.tempDir)
	return h
}

func validRequest(steps ...string) *Request {
	return &Request{
		UserID:    "user-1",
		EpisodeID: "ep-1",
		Audio:     []byte("audio bytes"),
		Steps:     steps,
	}
}

func assertNoScratchLeft(t *testing.T, tempDir string) {
	t.Helper()
	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "run scratch directories must be removed")
}

func TestRunExecutesInCanonicalOrder(t *testing.T) {
	permutations := [][]string{
		{StepTranscribe, StepShowNotes, StepCleanTranscript},
		{StepShowNotes, StepCleanTranscript, StepTranscribe},
		{StepCleanTranscript, StepTranscribe, StepShowNotes},
		{StepShowNotes, StepTranscribe, StepCleanTranscript, StepTranscribe}, // duplicate
	}
	want := []string{StepTranscribe, StepCleanTranscript, StepShowNotes}

	for _, perm := range permutations {
		h := newHarness(t, nil)
		report, status := h.orch.Run(context.Background(), validRequest(perm...))
		require.Equal(t, http.StatusOK, status, "permutation %v: %s", perm, report.Error)
		assert.Equal(t, want, report.StepsApplied, "permutation %v", perm)
	}
}

func TestRunRejectsUnknownStep(t *testing.T) {
	h := newHarness(t, nil)

	report, status := h.orch.Run(context.Background(), validRequest(StepTranscribe, "defragment"))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, report.Error, "defragment")
	assert.Empty(t, report.StepsApplied)
	assert.Empty(t, h.ledger.debits)
	assert.Empty(t, h.runs.runs, "rejected requests must leave no run record")
	assertNoScratchLeft(t, h.tempDir)
}

func TestRunRejectsEmptySteps(t *testing.T) {
	h := newHarness(t, nil)

	_, status := h.orch.Run(context.Background(), validRequest())

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Empty(t, h.ledger.debits)
}

func TestRunRejectsMissingAudio(t *testing.T) {
	h := newHarness(t, nil)
	req := validRequest(StepTranscribe)
	req.Audio = nil

	report, status := h.orch.Run(context.Background(), req)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, report.Error, "audio")
	assert.Empty(t, h.ledger.debits)
}

func TestRunRejectsMalformedCuts(t *testing.T) {
	h := newHarness(t, nil)
	req := validRequest(StepManualCut)
	req.Cuts = []segments.Interval{{Start: 5, End: 2}}

	report, status := h.orch.Run(context.Background(), req)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Empty(t, report.StepsApplied)
	assert.Empty(t, h.ledger.debits)
	assert.Empty(t, h.store.uploads, "no artifact may be created")
	assertNoScratchLeft(t, h.tempDir)
}

func TestRunRequiresCutsForManualCut(t *testing.T) {
	h := newHarness(t, nil)

	report, status := h.orch.Run(context.Background(), validRequest(StepManualCut))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, report.Error, "cuts")
	assert.Empty(t, h.ledger.debits)
}

func TestCleanTranscriptAloneFailsPrecondition(t *testing.T) {
	h := newHarness(t, nil)

	report, status := h.orch.Run(context.Background(), validRequest(StepCleanTranscript))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, StepCleanTranscript, report.FailedStep)
	assert.Contains(t, report.Error, "transcript")
	assert.Empty(t, report.StepsApplied)
	assert.Empty(t, h.ledger.debits, "precondition failures must not charge")

	require.NotNil(t, h.runs.last())
	assert.Equal(t, models.RunStatusFailed, h.runs.last().Status)
	assertNoScratchLeft(t, h.tempDir)
}

func TestTranscribeThenCleanTranscript(t *testing.T) {
	h := newHarness(t, nil)

	report, status := h.orch.Run(context.Background(), validRequest(StepTranscribe, StepCleanTranscript))

	require.Equal(t, http.StatusOK, status, report.Error)
	assert.Equal(t, []string{StepTranscribe, StepCleanTranscript}, report.StepsApplied)
	assert.Equal(t, []string{StepTranscribe, StepCleanTranscript}, h.ledger.debits)
	assert.Equal(t, "Hello world. This is a test.", report.Transcript)
	assert.Equal(t, "cleaned transcript", report.CleanTranscript)
	assert.NotEmpty(t, report.FinalAudioURL)

	require.Len(t, h.editLog.records, 1)
	assert.Equal(t, "ep-1", h.editLog.records[0].EpisodeID)

	require.NotNil(t, h.runs.last())
	assert.Equal(t, models.RunStatusCompleted, h.runs.last().Status)
	assertNoScratchLeft(t, h.tempDir)
}

func TestStepFailureReportsPartialProgress(t *testing.T) {
	h := newHarness(t, func(d *Deps) {
		d.TextGen = &stubGenerator{translateErr: errors.New("model down")}
	})

	report, status := h.orch.Run(context.Background(), validRequest(StepTranslate, StepTranscribe))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, StepTranslate, report.FailedStep)
	assert.Equal(t, []string{StepTranscribe}, report.StepsApplied)
	assert.Equal(t, []string{StepTranscribe, StepTranslate}, h.ledger.debits,
		"translate is pre-charged; its debit stands even though the body failed")
	assert.Empty(t, report.FinalAudioURL)

	require.NotNil(t, h.runs.last())
	assert.Equal(t, models.RunStatusFailed, h.runs.last().Status)
	assert.Equal(t, StepTranslate, h.runs.last().FailedStep)
	assertNoScratchLeft(t, h.tempDir)
}

func TestPostChargeStepNotDebitedOnFailure(t *testing.T) {
	h := newHarness(t, func(d *Deps) {
		d.TextGen = &stubGenerator{cleanErr: errors.New("model down")}
	})

	report, status := h.orch.Run(context.Background(), validRequest(StepTranscribe, StepCleanTranscript))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, StepCleanTranscript, report.FailedStep)
	assert.Equal(t, []string{StepTranscribe}, h.ledger.debits,
		"post-charge steps must not be debited when the body fails")
}

func TestInsufficientCreditsDistinguishable(t *testing.T) {
	h := newHarness(t, nil)
	h.ledger.failOn[StepTranscribe] = true

	report, status := h.orch.Run(context.Background(), validRequest(StepTranscribe, StepShowNotes))

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, StepTranscribe, report.FailedStep)
	assert.Empty(t, report.StepsApplied)
	require.NotNil(t, report.Details)
	assert.Equal(t, "/store/credits", report.Details["purchase_url"])
}

func TestSfxPlanFailureStillSucceeds(t *testing.T) {
	// The stub planner returns an empty plan and the stub mixer copies the
	// input through untouched, which is exactly the degraded path
	h := newHarness(t, nil)

	report, status := h.orch.Run(context.Background(), validRequest(StepTranscribe, StepPlanAndMixSfx))

	require.Equal(t, http.StatusOK, status, report.Error)
	assert.Equal(t, []string{StepTranscribe, StepPlanAndMixSfx}, report.StepsApplied)
	assert.Empty(t, report.SfxPlan)
	assert.Empty(t, report.SfxClips)
	assert.NotEmpty(t, report.FinalAudioURL)
}

func TestFinalUploadFailureReportedAsRunFailure(t *testing.T) {
	h := newHarness(t, nil)
	h.store.failUpload = true

	report, status := h.orch.Run(context.Background(), validRequest(StepTranscribe))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, []string{StepTranscribe}, report.StepsApplied)
	assert.Empty(t, report.FinalAudioURL, "no artifact reference on upload failure")

	require.NotNil(t, h.runs.last())
	assert.Equal(t, models.RunStatusFailed, h.runs.last().Status)
	assertNoScratchLeft(t, h.tempDir)
}
