package animal

// Batch collects entries in the order they are appended. It is owned by a
// single goroutine for the duration of a run.
type Batch struct {
	entries []Entry
}

// Append adds e at the end of the batch.
func (b *Batch) Append(e Entry) {
	b.entries = append(b.entries, e)
}

// Len returns the number of entries.
func (b *Batch) Len() int {
	return len(b.entries)
}

// Failures returns how many entries carry an error.
func (b *Batch) Failures() int {
	n := 0
	for _, e := range b.entries {
		if e.Failed() {
			n++
		}
	}
	return n
}

// Entries returns a copy of the entries in append order.
func (b *Batch) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Document is the output written to exercici3_resposta.json.
type Document struct {
	Analysis []Entry `json:"analisis"`
}

// Document snapshots the batch. Analysis is never nil, so an empty batch
// encodes as an empty array.
func (b *Batch) Document() Document {
	return Document{Analysis: b.Entries()}
}
