package textgen

// System and user prompt templates for the text-side pipeline steps.
// Prompts that feed structured steps demand JSON-only output and are parsed
// with a JSON-object response format.

const cleanTranscriptSystem = "You are a professional podcast editor. Clean the transcript you are given: " +
	"remove filler words (um, uh, like, you know), false starts, and stutters, and fix obvious " +
	"transcription mistakes. Preserve the speaker's meaning, tone, and every substantive sentence. " +
	"Return only the cleaned transcript text."

const showNotesSystem = "You are a podcast producer writing show notes. From the transcript, produce " +
	"concise show notes: a two-sentence summary, followed by a bulleted list of the main topics in " +
	"the order discussed. Return only the show notes."

const suggestionsSystem = "You are a podcast coach. From the transcript, give the host specific, " +
	"actionable suggestions to improve future episodes: pacing, structure, audience engagement, and " +
	"delivery. Return a short numbered list only."

const quotesSystem = "You select shareable quotes from podcast transcripts. Pick up to 5 short, " +
	"self-contained, quotable passages, verbatim from the transcript. " +
	`Respond with JSON only: {"quotes": ["...", "..."]}`

const introOutroSystem = "You write spoken intros and outros for podcast episodes. From the " +
	"transcript, write a warm 2-3 sentence intro teasing the episode's content and a 1-2 sentence " +
	"outro thanking listeners. Label them 'INTRO:' and 'OUTRO:'. Return only the script."

const translateSystem = "You are a professional translator. Translate the transcript into the " +
	"target language, preserving tone and meaning. Return only the translated text."

const sentimentSystem = "Classify the overall sentiment of the transcript as exactly one word: " +
	"positive, negative, or neutral. Return only that word."

const backgroundLookupSystem = "You are a research assistant. From the transcript, identify the " +
	"people, organizations, products, and events mentioned, and summarize the publicly known " +
	"background for each in one or two sentences. Return a short bulleted brief."

const certaintySystem = "You review podcast transcripts for removable content. Split the transcript " +
	"into sentences. For each sentence, estimate how likely it could be cut without losing " +
	"substance: 0.0 means essential, 1.0 means certainly removable filler (greetings, tangents, " +
	"repeated points, dead air talk). " +
	`Respond with JSON only: {"sentences": [{"sentence": "...", "certainty_score": 0.0}]}`

const sfxPlanSystem = "You are a sound designer for podcasts. Given a transcript with sentence " +
	"timestamps, choose at most %d moments where a short background sound effect would heighten " +
	"the story. For each, describe the sound concretely (e.g. 'soft rain on a window', 'distant " +
	"crowd cheering') and give start and end times in seconds that lie within the transcript. " +
	`Respond with JSON only: {"effects": [{"description": "...", "start": 0.0, "end": 0.0}]}`
