package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/matiasleandrokruk/inferlab/internal/domain/sentiment"
)

// isoMillis matches JavaScript's Date.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// SentimentScorer scores one text. *sentiment.Analyzer implements it.
type SentimentScorer interface {
	Score(ctx context.Context, text string) (sentiment.Scored, error)
}

type SentimentHandler struct {
	scorer SentimentScorer
	now    func() time.Time
}

func NewSentimentHandler(scorer SentimentScorer, now func() time.Time) *SentimentHandler {
	if now == nil {
		now = time.Now
	}
	return &SentimentHandler{scorer: scorer, now: now}
}

type AnalyzeSentimentRequest struct {
	Text *string `json:"text"`
}

type AnalyzeSentimentResponse struct {
	Sentiment sentiment.Label `json:"sentiment"`
	Score     float64         `json:"puntuació"`
	Timestamp string          `json:"data_hora"`
}

// incompleteReply echoes what the model returned when it is unusable.
type incompleteReply struct {
	Error     string          `json:"error"`
	Sentiment sentiment.Label `json:"sentiment"`
	Score     *float64        `json:"score"`
	Text      string          `json:"text"`
}

// AnalyzeSentiment handles POST /api/chat/analisi-sentiment.
func (h *SentimentHandler) AnalyzeSentiment(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeSentimentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == nil || strings.TrimSpace(*req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required and must be a string")
		return
	}
	text := *req.Text
	log.WithField("text_length", len(text)).Info("sentiment analysis started")

	scored, err := h.scorer.Score(r.Context(), text)
	if err != nil {
		log.WithError(err).Error("sentiment analysis failed")
		writeError(w, http.StatusBadGateway, "inference failed")
		return
	}
	if !scored.Complete() {
		log.WithFields(log.Fields{
			"sentiment": scored.Label,
			"has_score": scored.Score != nil,
		}).Warn("incomplete sentiment reply")
		writeJSON(w, http.StatusUnprocessableEntity, incompleteReply{
			Error:     "reply is incomplete or has unknown values",
			Sentiment: scored.Label,
			Score:     scored.Score,
			Text:      scored.Text,
		})
		return
	}

	out := AnalyzeSentimentResponse{
		Sentiment: scored.Label,
		Score:     *scored.Score,
		Timestamp: h.now().UTC().Format(isoMillis),
	}
	log.WithFields(log.Fields{"sentiment": out.Sentiment, "score": out.Score}).Info("sentiment analysis finished")
	writeJSON(w, http.StatusOK, out)
}
