package transcript

import "strings"

// SegmentSentences groups a word-timestamp list into sentence spans using
// boundary punctuation. A sentence ends at a word whose text terminates in
// '.', '!' or '?'; any trailing words without a boundary form a final
// sentence.
func SegmentSentences(words []Word) []Sentence {
	if len(words) == 0 {
		return nil
	}

	var sentences []Sentence
	var parts []string
	start := words[0].Start

	flush := func(end float64) {
		text := strings.TrimSpace(strings.Join(parts, " "))
		if text != "" {
			sentences = append(sentences, Sentence{Text: text, Start: start, End: end})
		}
		parts = parts[:0]
	}

	for i, w := range words {
		if len(parts) == 0 {
			start = w.Start
		}
		parts = append(parts, w.Text)

		if endsSentence(w.Text) {
			flush(w.End)
		} else if i == len(words)-1 {
			flush(w.End)
		}
	}

	return sentences
}

func endsSentence(word string) bool {
	trimmed := strings.TrimRight(word, `"')]`)
	if trimmed == "" {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}
