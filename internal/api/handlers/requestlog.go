package handlers

import (
	"context"
	"net/http"

	"github.com/apex/log"

	"github.com/matiasleandrokruk/inferlab/internal/domain/requestlog"
)

// RequestLister lists logged inference requests. *requestlog.Service implements it.
type RequestLister interface {
	List(ctx context.Context, limit int) ([]requestlog.Entry, error)
}

type RequestLogHandler struct{ lister RequestLister }

func NewRequestLogHandler(lister RequestLister) *RequestLogHandler {
	return &RequestLogHandler{lister: lister}
}

type ListRequestsResponse struct {
	Data []requestlog.Entry `json:"data"`
}

// ListRequests handles GET /api/requests?limit=.
func (h *RequestLogHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	entries, err := h.lister.List(r.Context(), parseLimit(r))
	if err != nil {
		log.WithError(err).Error("list requests")
		writeError(w, http.StatusInternalServerError, "failed to list requests")
		return
	}
	writeJSON(w, http.StatusOK, ListRequestsResponse{Data: entries})
}
