package transcript

import (
	"strings"
	"unicode"
)

// minConfidentScore is the token-overlap ratio below which a window match is
// considered unreliable and the positional estimate is used instead.
const minConfidentScore = 0.6

// AlignSentence finds the contiguous window in the word-timestamp list that
// best matches the sentence text and returns its time bounds. When no window
// scores confidently, a best-effort estimate based on the sentence's position
// in the full text is returned; alignment never fails outright.
func AlignSentence(sentence string, words []Word) (start, end float64) {
	if len(words) == 0 {
		return 0, 0
	}

	target := tokenize(sentence)
	if len(target) == 0 {
		return words[0].Start, words[0].End
	}

	n := len(target)
	if n > len(words) {
		n = len(words)
	}

	bestScore := -1.0
	bestIdx := 0
	for i := 0; i+n <= len(words); i++ {
		score := windowScore(target, words[i:i+n])
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestScore >= minConfidentScore {
		return words[bestIdx].Start, words[bestIdx+n-1].End
	}

	return estimateByPosition(sentence, words)
}

// windowScore is the fraction of target tokens matched in order by the window
func windowScore(target []string, window []Word) float64 {
	matched := 0
	for i, tok := range target {
		if i >= len(window) {
			break
		}
		if tokenizeWord(window[i].Text) == tok {
			matched++
		}
	}
	return float64(matched) / float64(len(target))
}

// estimateByPosition locates the sentence proportionally: if its first token
// appears anywhere in the word list, that occurrence anchors the start;
// otherwise the window is centered on the midpoint of the audio.
func estimateByPosition(sentence string, words []Word) (float64, float64) {
	target := tokenize(sentence)
	first := target[0]

	for i, w := range words {
		if tokenizeWord(w.Text) == first {
			endIdx := i + len(target) - 1
			if endIdx >= len(words) {
				endIdx = len(words) - 1
			}
			return words[i].Start, words[endIdx].End
		}
	}

	mid := len(words) / 2
	endIdx := mid + len(target) - 1
	if endIdx >= len(words) {
		endIdx = len(words) - 1
	}
	return words[mid].Start, words[endIdx].End
}

// tokenize lowercases and strips punctuation, dropping empty tokens
func tokenize(s string) []string {
	fields := strings.Fields(s)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := tokenizeWord(f); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func tokenizeWord(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}
