package aicut

// SuggestionThreshold is the minimum certainty score for an entry to surface
// as a suggested cut. Entries below it stay in the full certainty list for
// later apply-cuts operations.
const SuggestionThreshold = 0.1

// Certainty bands, from least to most removable
const (
	BandVeryUnlikely  = "very_unlikely_removable"
	BandUnlikely      = "unlikely_removable"
	BandPossible      = "possibly_removable"
	BandLikely        = "likely_removable"
	BandVeryLikely    = "very_likely_removable"
	BandAlmostCertain = "almost_certain_removable"
)

// BandFor buckets a certainty score into one of six bands. The mapping is
// monotone: a higher score never maps to a lower band.
func BandFor(score float64) string {
	switch {
	case score < 0.1:
		return BandVeryUnlikely
	case score < 0.3:
		return BandUnlikely
	case score < 0.5:
		return BandPossible
	case score < 0.7:
		return BandLikely
	case score < 0.9:
		return BandVeryLikely
	default:
		return BandAlmostCertain
	}
}
