package animal

import (
	"encoding/json"
	"strings"

	"github.com/matiasleandrokruk/inferlab/internal/domain/jsonreply"
)

// Reasons recorded on entries that carry no analysis.
const (
	ReasonParse     = "parse error"
	ReasonInference = "inference error"
	ReasonRead      = "read error"
)

// ImageRef identifies the source image of an entry.
type ImageRef struct {
	FileName string `json:"nombre_archivo"`
}

// Entry is one element of the analysis batch: either a complete Record or
// an error reason, always tagged with the source file name.
type Entry struct {
	Image    ImageRef `json:"imagen"`
	Analysis *Record  `json:"analisis,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Failed reports whether the entry carries an error instead of an analysis.
func (e Entry) Failed() bool {
	return e.Analysis == nil
}

// ErrorEntry returns an entry for filename that records reason.
func ErrorEntry(filename, reason string) Entry {
	return Entry{Image: ImageRef{FileName: filename}, Error: reason}
}

// Normalize parses raw as a JSON object and fills every schema leaf,
// substituting placeholders leaf by leaf. Text that is not a JSON object
// yields a parse-error entry.
func Normalize(raw, filename string) Entry {
	obj, err := jsonreply.Object(raw)
	if err != nil {
		return ErrorEntry(filename, ReasonParse)
	}
	rec := fill(obj)
	return Entry{Image: ImageRef{FileName: filename}, Analysis: &rec}
}

// fill builds a Record from obj using the schema table. A nil obj yields
// the defaults.
func fill(obj map[string]any) Record {
	var rec Record
	for _, l := range schema {
		v := lookup(obj, l.path)
		switch l.kind {
		case scalar:
			*l.str(&rec) = scalarValue(v, l.placeholder)
		case list:
			*l.strs(&rec) = listValue(v, l.placeholder)
		}
	}
	return rec
}

// lookup walks a dotted path through nested objects.
func lookup(obj map[string]any, path string) any {
	var cur any = obj
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

// scalarValue accepts a non-blank string or a JSON number.
func scalarValue(v any, placeholder string) string {
	switch x := v.(type) {
	case string:
		if strings.TrimSpace(x) != "" {
			return x
		}
	case json.Number:
		return x.String()
	}
	return placeholder
}

// listValue accepts a non-empty array whose elements are all non-blank strings.
func listValue(v any, placeholder string) []string {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return []string{placeholder}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return []string{placeholder}
		}
		out = append(out, s)
	}
	return out
}
