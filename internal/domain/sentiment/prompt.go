package sentiment

import "strconv"

// Prompt asks for a single-word classification of text. The text is
// embedded between double quotes as is.
func Prompt(text string) string {
	return `Analyze the sentiment of this text and respond with only one word (positive/negative/neutral): "` + text + `"`
}

// ScoredPrompt asks for a JSON object carrying a label and a score in [-1, 1].
func ScoredPrompt(text string) string {
	return `Respond only with a JSON object with the following keys, without explanations or additional comments. ` +
		`In "sentiment" put positive, negative or neutral. ` +
		`In "score" put a number between -1 and 0 for negative text (depending on how negative it is) ` +
		`and between 0 and 1 for positive text (depending on how positive it is). ` +
		`Echo the input in "text" and put the current ISO 8601 time in "timestamp":
{
    "text": ` + strconv.Quote(text) + `,
    "sentiment": "neutral",
    "score": 0.0,
    "timestamp": ""
}`
}
