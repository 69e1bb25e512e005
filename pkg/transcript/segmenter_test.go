package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordSeq(texts []string, step float64) []Word {
	words := make([]Word, len(texts))
	for i, t := range texts {
		words[i] = Word{Text: t, Start: float64(i) * step, End: float64(i+1) * step}
	}
	return words
}

func TestSegmentSentences(t *testing.T) {
	words := wordSeq([]string{"Hello", "world.", "How", "are", "you?", "Fine"}, 0.5)

	sentences := SegmentSentences(words)
	require.Len(t, sentences, 3)

	assert.Equal(t, "Hello world.", sentences[0].Text)
	assert.InDelta(t, 0.0, sentences[0].Start, 0.001)
	assert.InDelta(t, 1.0, sentences[0].End, 0.001)

	assert.Equal(t, "How are you?", sentences[1].Text)
	assert.InDelta(t, 1.0, sentences[1].Start, 0.001)
	assert.InDelta(t, 2.5, sentences[1].End, 0.001)

	// Trailing words without boundary punctuation still form a sentence
	assert.Equal(t, "Fine", sentences[2].Text)
}

func TestSegmentSentencesEmpty(t *testing.T) {
	assert.Nil(t, SegmentSentences(nil))
}

func TestSegmentSentencesClosingQuote(t *testing.T) {
	words := wordSeq([]string{"He", "said", `"stop."`, "Then", "left."}, 1)
	sentences := SegmentSentences(words)
	require.Len(t, sentences, 2)
	assert.Equal(t, `He said "stop."`, sentences[0].Text)
}
