package sentiment

import (
	"encoding/json"
	"strings"

	"github.com/matiasleandrokruk/inferlab/internal/domain/jsonreply"
)

// Normalize maps the raw reply to a one-word prompt onto a Label.
func Normalize(raw string) Label {
	return ParseLabel(raw)
}

// Scored is the normalized reply to ScoredPrompt. Score is nil when the
// model gave no numeric score; it is never clamped.
type Scored struct {
	Label     Label
	Score     *float64
	Text      string
	Timestamp string
}

// Complete reports whether every field a caller can show is usable:
// a real label, a score and the echoed text. A score of 0 is present.
func (s Scored) Complete() bool {
	return s.Label != Error && s.Score != nil && strings.TrimSpace(s.Text) != ""
}

// NormalizeScored parses the JSON object reply to ScoredPrompt. Text that
// is not a JSON object yields an Error label with no score.
func NormalizeScored(raw string) Scored {
	obj, err := jsonreply.Object(raw)
	if err != nil {
		return Scored{Label: Error}
	}

	out := Scored{Label: Error}
	if s, ok := obj["sentiment"].(string); ok {
		out.Label = ParseLabel(s)
	}
	if n, ok := obj["score"].(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			out.Score = &f
		}
	}
	if s, ok := obj["text"].(string); ok {
		out.Text = s
	}
	if s, ok := obj["timestamp"].(string); ok {
		out.Timestamp = s
	}
	return out
}
