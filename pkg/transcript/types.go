package transcript

// Word is a single transcribed word with its time window
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"` // Seconds from the beginning of the audio
	End   float64 `json:"end"`
}

// Sentence is a sentence-level span of the transcript
type Sentence struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Transcript is a transcription with word-level timestamps
type Transcript struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Words    []Word  `json:"words"`
}

// Bounds returns the first start and last end time of the word list.
// Zero values are returned for an empty transcript.
func (t *Transcript) Bounds() (start, end float64) {
	if len(t.Words) == 0 {
		return 0, t.Duration
	}
	return t.Words[0].Start, t.Words[len(t.Words)-1].End
}
