package credits

// Cost per meter key, in credits. Meter keys match pipeline step names.
var meterCosts = map[string]int64{
	"transcribe":         200,
	"translate":          300,
	"voice_clone":        500,
	"synthesize_clip":    400,
	"isolate_voice":      300,
	"enhance":            200,
	"analyze":            400,
	"ai_cut":             500,
	"clean_transcript":   100,
	"show_notes":         100,
	"suggestions":        100,
	"quotes":             100,
	"quote_images":       300,
	"background_lookup":  200,
	"intro_outro_script": 100,
	"intro_outro_speech": 400,
	"manual_cut":         100,
	"plan_and_mix_sfx":   600,
}

// defaultCost applies to meters without an explicit entry
const defaultCost int64 = 100

// CostOf returns the credit cost of a meter key
func CostOf(meter string) int64 {
	if cost, ok := meterCosts[meter]; ok {
		return cost
	}
	return defaultCost
}
