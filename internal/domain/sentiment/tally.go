package sentiment

// Tally counts labels. The zero value is an empty tally with all four
// counts present.
type Tally struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
	Error    int `json:"error"`
}

// Add increments the count for l. Labels outside the closed set count as Error.
func (t *Tally) Add(l Label) {
	switch l {
	case Positive:
		t.Positive++
	case Negative:
		t.Negative++
	case Neutral:
		t.Neutral++
	default:
		t.Error++
	}
}

// Count returns the count for l.
func (t Tally) Count(l Label) int {
	switch l {
	case Positive:
		return t.Positive
	case Negative:
		return t.Negative
	case Neutral:
		return t.Neutral
	case Error:
		return t.Error
	}
	return 0
}

// Total is the number of labels added.
func (t Tally) Total() int {
	return t.Positive + t.Negative + t.Neutral + t.Error
}

// TallyOf folds labels, in order, into a new Tally.
func TallyOf(labels ...Label) Tally {
	var t Tally
	for _, l := range labels {
		t.Add(l)
	}
	return t
}
