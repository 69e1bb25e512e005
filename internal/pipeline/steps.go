package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	apperrors "github.com/authorityshow/editor-api/pkg/errors"
)

func noPreconditions(*State) error { return nil }

func requireTranscript(step string) func(*State) error {
	return func(s *State) error {
		if s.Transcript == nil {
			return apperrors.PreconditionError(step, "a transcript")
		}
		return nil
	}
}

// buildSteps wires the production dispatch table against the injected
// collaborators. Each step's meter key equals its name.
func buildSteps(d Deps) []*Step {
	return []*Step{
		{
			Name: StepTranscribe, Meter: StepTranscribe, Policy: PreCharge,
			Preconditions: noPreconditions,
			Run: func(ctx context.Context, s *State) error {
				tr, err := d.Transcriber.Transcribe(ctx, s.AudioPath, "")
				if err != nil {
					return apperrors.ProviderError("transcription", err)
				}
				s.Transcript = tr
				return nil
			},
		},
		{
			Name: StepTranslate, Meter: StepTranslate, Policy: PreCharge,
			Preconditions: requireTranscript(StepTranslate),
			Run: func(ctx context.Context, s *State) error {
				text, err := d.TextGen.Translate(ctx, s.Transcript.Text, s.TargetLanguage)
				if err != nil {
					return apperrors.ProviderError("translation", err)
				}
				s.TranslatedText = text
				return nil
			},
		},
		{
			Name: StepVoiceClone, Meter: StepVoiceClone, Policy: PreCharge,
			Preconditions: noPreconditions,
			Run: func(ctx context.Context, s *State) error {
				if s.VoiceID != "" {
					// Caller already supplied a voice reference
					return nil
				}
				sample, err := os.ReadFile(s.AudioPath)
				if err != nil {
					return err
				}
				voiceID, err := d.SoundGen.CloneVoice(ctx, "episode_"+s.EpisodeID, sample)
				if err != nil {
					return apperrors.ProviderError("voice_clone", err)
				}
				s.VoiceID = voiceID
				return nil
			},
		},
		{
			Name: StepSynthesizeClip, Meter: StepSynthesizeClip, Policy: PreCharge,
			Preconditions: requireTranscript(StepSynthesizeClip),
			Run: func(ctx context.Context, s *State) error {
				text := s.TranslatedText
				if text == "" {
					text = s.Transcript.Text
				}
				audio, err := d.Speech.Synthesize(ctx, text, s.VoiceID)
				if err != nil {
					return apperrors.ProviderError("speech_synthesis", err)
				}
				url, err := d.Artifacts.UploadBytes(ctx, audio, s.ArtifactPrefix+"/synthesized_clip.mp3")
				if err != nil {
					return err
				}
				s.TranslatedClipURL = url
				return nil
			},
		},
		{
			Name: StepIsolateVoice, Meter: StepIsolateVoice, Policy: PreCharge,
			Preconditions: noPreconditions,
			Run: func(ctx context.Context, s *State) error {
				audio, err := os.ReadFile(s.AudioPath)
				if err != nil {
					return err
				}
				isolated, err := d.SoundGen.IsolateVoice(ctx, audio)
				if err != nil {
					return apperrors.ProviderError("voice_isolation", err)
				}
				out := filepath.Join(s.WorkDir, "isolated.mp3")
				if err := os.WriteFile(out, isolated, 0644); err != nil {
					return err
				}
				s.AudioPath = out
				return nil
			},
		},
		{
			Name: StepEnhance, Meter: StepEnhance, Policy: PreCharge,
			Preconditions: noPreconditions,
			Run: func(ctx context.Context, s *State) error {
				out := filepath.Join(s.WorkDir, "enhanced.mp3")
				if err := d.Enhancer.EnhanceVoice(ctx, s.AudioPath, out); err != nil {
					return err
				}
				s.AudioPath = out
				return nil
			},
		},
		{
			Name: StepAnalyze, Meter: StepAnalyze, Policy: PreCharge,
			Preconditions: noPreconditions,
			Run: func(ctx context.Context, s *State) error {
				analysis, err := d.Cuts.Analyze(ctx, s.AudioPath, s.Transcript)
				if err != nil {
					return apperrors.ProviderError("analysis", err)
				}
				s.Analysis = analysis
				s.Transcript = analysis.Transcript
				return nil
			},
		},
		{
			Name: StepAICut, Meter: StepAICut, Policy: PreCharge,
			Preconditions: noPreconditions,
			Run: func(ctx context.Context, s *State) error {
				analysis, err := d.Cuts.AnalyzeAndCut(ctx, s.AudioPath, s.WorkDir, s.ArtifactPrefix, s.Transcript)
				if err != nil {
					return apperrors.ProviderError("ai_cut", err)
				}
				s.Analysis = analysis
				s.Transcript = analysis.Transcript
				return nil
			},
		},
		{
			Name: StepCleanTranscript, Meter: StepCleanTranscript, Policy: PostCharge,
			Preconditions: requireTranscript(StepCleanTranscript),
			Run: func(ctx context.Context, s *State) error {
				text, err := d.TextGen.CleanTranscript(ctx, s.Transcript.Text)
				if err != nil {
					return apperrors.ProviderError("clean_transcript", err)
				}
				s.CleanTranscript = text
				return nil
			},
		},
		{
			Name: StepShowNotes, Meter: StepShowNotes, Policy: PostCharge,
			Preconditions: requireTranscript(StepShowNotes),
			Run: func(ctx context.Context, s *State) error {
				text, err := d.TextGen.ShowNotes(ctx, s.Transcript.Text)
				if err != nil {
					return apperrors.ProviderError("show_notes", err)
				}
				s.ShowNotes = text
				return nil
			},
		},
		{
			Name: StepSuggestions, Meter: StepSuggestions, Policy: PostCharge,
			Preconditions: requireTranscript(StepSuggestions),
			Run: func(ctx context.Context, s *State) error {
				text, err := d.TextGen.Suggestions(ctx, s.Transcript.Text)
				if err != nil {
					return apperrors.ProviderError("suggestions", err)
				}
				s.Suggestions = text
				return nil
			},
		},
		{
			Name: StepQuotes, Meter: StepQuotes, Policy: PostCharge,
			Preconditions: requireTranscript(StepQuotes),
			Run: func(ctx context.Context, s *State) error {
				quotes, err := d.TextGen.Quotes(ctx, s.Transcript.Text)
				if err != nil {
					return apperrors.ProviderError("quotes", err)
				}
				s.Quotes = quotes
				return nil
			},
		},
		{
			Name: StepQuoteImages, Meter: StepQuoteImages, Policy: PostCharge,
			Preconditions: func(s *State) error {
				if len(s.Quotes) == 0 {
					return apperrors.PreconditionError(StepQuoteImages, "extracted quotes")
				}
				return nil
			},
			Run: func(ctx context.Context, s *State) error {
				for i, quote := range s.Quotes {
					url, err := d.Images.GenerateImage(ctx, quote)
					if err != nil {
						log.Printf("[WARN] skipping quote image %d: %v", i, err)
						continue
					}
					s.QuoteImageURLs = append(s.QuoteImageURLs, url)
				}
				return nil
			},
		},
		{
			Name: StepBackgroundLookup, Meter: StepBackgroundLookup, Policy: PostCharge,
			Preconditions: requireTranscript(StepBackgroundLookup),
			Run: func(ctx context.Context, s *State) error {
				text, err := d.TextGen.BackgroundLookup(ctx, s.Transcript.Text)
				if err != nil {
					return apperrors.ProviderError("background_lookup", err)
				}
				s.Osint = text
				return nil
			},
		},
		{
			Name: StepIntroOutroScript, Meter: StepIntroOutroScript, Policy: PostCharge,
			Preconditions: requireTranscript(StepIntroOutroScript),
			Run: func(ctx context.Context, s *State) error {
				text, err := d.TextGen.IntroOutroScript(ctx, s.Transcript.Text)
				if err != nil {
					return apperrors.ProviderError("intro_outro_script", err)
				}
				s.IntroOutroScript = text
				return nil
			},
		},
		{
			Name: StepIntroOutroSpeech, Meter: StepIntroOutroSpeech, Policy: PostCharge,
			Preconditions: func(s *State) error {
				if s.IntroOutroScript == "" {
					return apperrors.PreconditionError(StepIntroOutroSpeech, "an intro/outro script")
				}
				return nil
			},
			Run: func(ctx context.Context, s *State) error {
				audio, err := d.Speech.Synthesize(ctx, s.IntroOutroScript, s.VoiceID)
				if err != nil {
					return apperrors.ProviderError("speech_synthesis", err)
				}
				url, err := d.Artifacts.UploadBytes(ctx, audio, s.ArtifactPrefix+"/intro_outro.mp3")
				if err != nil {
					return err
				}
				s.IntroOutroAudioURL = url
				return nil
			},
		},
		{
			Name: StepManualCut, Meter: StepManualCut, Policy: PreCharge,
			Preconditions: func(s *State) error {
				if len(s.ManualCuts) == 0 {
					return apperrors.MissingFieldError("cuts")
				}
				return nil
			},
			Run: func(ctx context.Context, s *State) error {
				out := filepath.Join(s.WorkDir, "manual_cut.mp3")
				if err := d.Extractor.Apply(ctx, s.AudioPath, s.ManualCuts, out); err != nil {
					return err
				}
				s.AudioPath = out
				return nil
			},
		},
		{
			Name: StepPlanAndMixSfx, Meter: StepPlanAndMixSfx, Policy: PostCharge,
			Preconditions: requireTranscript(StepPlanAndMixSfx),
			Run: func(ctx context.Context, s *State) error {
				_, end := s.Transcript.Bounds()
				plan := d.Planner.Plan(ctx, s.Transcript, end)

				out := filepath.Join(s.WorkDir, "sfx_mixed.mp3")
				clips, err := d.Mixer.Apply(ctx, s.AudioPath, plan, s.WorkDir, s.ArtifactPrefix, out)
				if err != nil {
					return fmt.Errorf("sfx mix: %w", err)
				}
				s.SfxPlan = plan
				s.SfxClips = clips
				s.AudioPath = out
				return nil
			},
		},
	}
}
