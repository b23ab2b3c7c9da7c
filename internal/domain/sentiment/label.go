// Package sentiment classifies short texts as positive, negative or neutral
// through the text model and tallies the results.
package sentiment

import "strings"

// Label is a normalized sentiment. It is always one of the four constants.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
	Error    Label = "error"
)

// Labels lists every label in report order.
var Labels = []Label{Positive, Negative, Neutral, Error}

// ParseLabel lower-cases and trims s and returns the matching label.
// Anything outside the closed set, including the empty string and
// multi-word answers, is Error.
func ParseLabel(s string) Label {
	switch l := Label(strings.ToLower(strings.TrimSpace(s))); l {
	case Positive, Negative, Neutral:
		return l
	default:
		return Error
	}
}

// Valid reports whether l is one of the four labels.
func (l Label) Valid() bool {
	switch l {
	case Positive, Negative, Neutral, Error:
		return true
	}
	return false
}
