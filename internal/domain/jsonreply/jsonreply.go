// Package jsonreply pulls a JSON object out of free-form model text.
// Models are asked for "only a JSON object" but regularly wrap it in a
// markdown fence or surround it with prose.
package jsonreply

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const fence = "```"

// ErrNotObject is returned by Object when the text decodes to something
// other than a JSON object.
var ErrNotObject = errors.New("jsonreply: not a JSON object")

// Extract returns the candidate JSON text inside raw:
//   - the content of the first ``` fence, without a "json" language tag;
//   - otherwise the slice from the first '{' to the last '}';
//   - otherwise raw, trimmed.
func Extract(raw string) string {
	text := strings.TrimSpace(raw)

	start := strings.Index(text, fence)
	if start == -1 {
		return braces(text)
	}
	rest := text[start+len(fence):]
	end := strings.Index(rest, fence)
	if end == -1 {
		// Unterminated fence: fall back to the braces.
		return braces(text)
	}

	content := strings.TrimSpace(rest[:end])
	if tag, body, ok := strings.Cut(content, "\n"); ok {
		if t := strings.ToLower(strings.TrimSpace(tag)); t == "json" || t == "" {
			content = body
		}
	} else if strings.EqualFold(content, "json") {
		content = ""
	}
	return strings.TrimSpace(content)
}

func braces(text string) string {
	open := strings.Index(text, "{")
	if open == -1 {
		return text
	}
	closing := strings.LastIndex(text, "}")
	if closing < open {
		return text
	}
	return text[open : closing+1]
}

// Object extracts and decodes raw as a JSON object. Numbers are kept as
// json.Number so callers can render them without float formatting drift.
func Object(raw string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(Extract(raw))))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("jsonreply: decode: %w", err)
	}
	if dec.More() {
		return nil, errors.New("jsonreply: trailing data after JSON value")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return obj, nil
}
