package sentiment

import (
	"context"
	"errors"
	"testing"
	"time"
)

// scriptedClassifier returns labels keyed by review content and records the call order.
type scriptedClassifier struct {
	labels map[string]Label
	seen   []string
	cancel context.CancelFunc
	after  int
}

func (s *scriptedClassifier) Classify(_ context.Context, text string) Label {
	s.seen = append(s.seen, text)
	if s.cancel != nil && len(s.seen) == s.after {
		s.cancel()
	}
	if l, ok := s.labels[text]; ok {
		return l
	}
	return Error
}

var fixedNow = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }

func sampleData() ([]Game, []Review) {
	games := []Game{{"10", "Counter-Strike"}, {"20", "Team Fortress"}, {"30", "Half-Life"}}
	reviews := []Review{
		{"10", "cs good"},
		{"20", "tf meh"},
		{"10", "cs bad"},
		{"10", "cs third"},
		{"30", "hl great"},
		{"20", "tf great"},
	}
	return games, reviews
}

func TestBuildReport_DefaultLimits(t *testing.T) {
	t.Parallel()
	games, reviews := sampleData()
	c := &scriptedClassifier{labels: map[string]Label{
		"cs good": Positive, "cs bad": Negative, "tf meh": Neutral,
	}}

	report, err := BuildReport(context.Background(), c, games, reviews, Limits{Games: 2, ReviewsPerGame: 2}, fixedNow)
	if err != nil {
		t.Fatalf("BuildReport error = %v", err)
	}
	if !report.Timestamp.Equal(fixedNow()) {
		t.Errorf("timestamp = %v", report.Timestamp)
	}
	if len(report.Games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(report.Games))
	}

	cs := report.Games[0]
	if cs.AppID != "10" || cs.Name != "Counter-Strike" {
		t.Errorf("unexpected first game %+v", cs)
	}
	if want := (Tally{Positive: 1, Negative: 1}); cs.Statistics != want {
		t.Errorf("cs stats = %+v; want %+v", cs.Statistics, want)
	}
	if want := (Tally{Neutral: 1, Error: 1}); report.Games[1].Statistics != want {
		t.Errorf("tf stats = %+v; want %+v", report.Games[1].Statistics, want)
	}

	wantOrder := []string{"cs good", "cs bad", "tf meh", "tf great"}
	if len(c.seen) != len(wantOrder) {
		t.Fatalf("classified %v; want %v", c.seen, wantOrder)
	}
	for i := range wantOrder {
		if c.seen[i] != wantOrder[i] {
			t.Errorf("call %d = %q; want %q", i, c.seen[i], wantOrder[i])
		}
	}
}

func TestBuildReport_ZeroLimitsMeanAll(t *testing.T) {
	t.Parallel()
	games, reviews := sampleData()
	c := &scriptedClassifier{labels: map[string]Label{}}

	report, err := BuildReport(context.Background(), c, games, reviews, Limits{}, fixedNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(report.Games))
	}
	if report.Games[0].Statistics.Total() != 3 {
		t.Errorf("expected all 3 cs reviews, got %d", report.Games[0].Statistics.Total())
	}
	if len(c.seen) != len(reviews) {
		t.Errorf("expected %d classifications, got %d", len(reviews), len(c.seen))
	}
}

func TestBuildReport_GameWithoutReviews_HasZeroTally(t *testing.T) {
	t.Parallel()
	games := []Game{{"99", "Nobody Played"}}
	report, err := BuildReport(context.Background(), &scriptedClassifier{}, games, nil, Limits{}, fixedNow)
	if err != nil {
		t.Fatal(err)
	}
	if report.Games[0].Statistics != (Tally{}) {
		t.Errorf("expected empty tally, got %+v", report.Games[0].Statistics)
	}
}

func TestBuildReport_NoGames_EmptySliceNotNil(t *testing.T) {
	t.Parallel()
	report, err := BuildReport(context.Background(), &scriptedClassifier{}, nil, nil, Limits{}, fixedNow)
	if err != nil {
		t.Fatal(err)
	}
	if report.Games == nil {
		t.Error("expected non-nil games slice")
	}
}

func TestBuildReport_CancelledContext_ReturnsPartial(t *testing.T) {
	t.Parallel()
	games, reviews := sampleData()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := &scriptedClassifier{labels: map[string]Label{"cs good": Positive}, cancel: cancel, after: 1}

	report, err := BuildReport(ctx, c, games, reviews, Limits{}, fixedNow)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(c.seen) != 1 {
		t.Errorf("expected processing to stop after 1 review, got %d", len(c.seen))
	}
	if len(report.Games) != 1 || report.Games[0].Statistics.Positive != 1 {
		t.Errorf("expected partial report with first result, got %+v", report.Games)
	}
}
