package sfx

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/authorityshow/editor-api/internal/services/textgen"
	"github.com/authorityshow/editor-api/pkg/transcript"
)

// maxPlanEntries caps how many effects a single episode receives
const maxPlanEntries = 5

// Planner asks the text model where sound effects belong and sanitizes the
// answer against the audio's real bounds.
type Planner struct {
	source PlanSource
}

func NewPlanner(source PlanSource) *Planner {
	return &Planner{source: source}
}

// Plan returns at most maxPlanEntries placements, each clamped to
// [0, audioDuration]. The transcript is segmented into sentences and sent
// with their time windows so placements come from real timings. Entries the
// model produced with an empty description or an empty window after
// clamping are dropped. A planning failure yields an empty plan rather than
// an error; the episode simply gets no effects.
func (p *Planner) Plan(ctx context.Context, tr *transcript.Transcript, audioDuration float64) []textgen.SfxPlanEntry {
	raw, err := p.source.SfxPlan(ctx, timestampedTranscript(tr), maxPlanEntries)
	if err != nil {
		log.Printf("[WARN] sfx planning failed, continuing without effects: %v", err)
		return nil
	}

	var plan []textgen.SfxPlanEntry
	for _, entry := range raw {
		if strings.TrimSpace(entry.Description) == "" {
			continue
		}
		if entry.Start < 0 {
			entry.Start = 0
		}
		if audioDuration > 0 && entry.End > audioDuration {
			entry.End = audioDuration
		}
		if entry.End <= entry.Start {
			continue
		}
		plan = append(plan, entry)
		if len(plan) == maxPlanEntries {
			break
		}
	}
	return plan
}

// timestampedTranscript lays the transcript out one sentence per line with
// its time window. A transcript without word timestamps falls back to its
// bare text.
func timestampedTranscript(tr *transcript.Transcript) string {
	sentences := transcript.SegmentSentences(tr.Words)
	if len(sentences) == 0 {
		return tr.Text
	}

	var b strings.Builder
	for _, s := range sentences {
		fmt.Fprintf(&b, "[%.1fs-%.1fs] %s\n", s.Start, s.End, s.Text)
	}
	return b.String()
}
