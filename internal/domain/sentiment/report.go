package sentiment

import (
	"context"
	"time"

	"github.com/apex/log"
)

// Game is one row of games.csv.
type Game struct {
	AppID string
	Name  string
}

// Review is one row of reviews.csv.
type Review struct {
	AppID   string
	Content string
}

// Limits bounds a report run. Zero means no limit.
type Limits struct {
	Games          int
	ReviewsPerGame int
}

// GameStatistics is the tally for one game.
type GameStatistics struct {
	AppID      string `json:"appid"`
	Name       string `json:"name"`
	Statistics Tally  `json:"statistics"`
}

// Report is the per-game sentiment summary written to exercici2_resposta.json.
type Report struct {
	Timestamp time.Time        `json:"timestamp"`
	Games     []GameStatistics `json:"games"`
}

// BuildReport classifies, one at a time and in file order, the first
// limits.ReviewsPerGame reviews of each of the first limits.Games games.
// The run stops early only when ctx is cancelled; the partial report is
// returned with ctx.Err().
func BuildReport(ctx context.Context, c Classifier, games []Game, reviews []Review, limits Limits, now func() time.Time) (Report, error) {
	report := Report{Timestamp: now().UTC(), Games: []GameStatistics{}}

	for gi, game := range head(games, limits.Games) {
		stats := GameStatistics{AppID: game.AppID, Name: game.Name}
		for ri, review := range reviewsFor(reviews, game.AppID, limits.ReviewsPerGame) {
			if err := ctx.Err(); err != nil {
				report.Games = append(report.Games, stats)
				return report, err
			}
			label := c.Classify(ctx, review.Content)
			if label == Error {
				log.WithFields(log.Fields{
					"game_index":   gi,
					"appid":        game.AppID,
					"review_index": ri,
				}).Warn("review classified as error")
			}
			stats.Statistics.Add(label)
		}
		log.WithFields(log.Fields{
			"appid":   game.AppID,
			"name":    game.Name,
			"reviews": stats.Statistics.Total(),
			"errors":  stats.Statistics.Error,
		}).Info("game processed")
		report.Games = append(report.Games, stats)
	}
	return report, nil
}

func head(games []Game, n int) []Game {
	if n > 0 && n < len(games) {
		return games[:n]
	}
	return games
}

// reviewsFor returns, in order, up to n reviews whose AppID equals appID.
func reviewsFor(reviews []Review, appID string, n int) []Review {
	var out []Review
	for _, r := range reviews {
		if r.AppID != appID {
			continue
		}
		out = append(out, r)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}
