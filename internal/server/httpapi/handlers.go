package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/nasomail/internal/logging"
	"github.com/dmitrijs2005/nasomail/internal/server/repositories/checks"
)

const (
	defaultChecksLimit = 20
	maxChecksLimit     = 200
)

type checkDTO struct {
	ID        string    `json:"id"`
	Target    string    `json:"target"`
	Outcome   string    `json:"outcome"`
	Status    int       `json:"status,omitempty"`
	Detail    string    `json:"detail"`
	CheckedAt time.Time `json:"checked_at"`
}

type checksHandler struct {
	repo   checks.Repository
	logger logging.Logger
}

func (h *checksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit := defaultChecksLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxChecksLimit)
	}

	list, err := h.repo.Latest(r.Context(), limit)
	if err != nil {
		h.logger.Error(r.Context(), "failed to list checks", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	out := make([]checkDTO, 0, len(list))
	for _, c := range list {
		out = append(out, checkDTO{
			ID:        c.ID,
			Target:    c.Target,
			Outcome:   c.Outcome,
			Status:    c.Status,
			Detail:    c.Detail,
			CheckedAt: c.CheckedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
