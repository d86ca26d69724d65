package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/search"
)

func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	filter := search.ParseCandidateFilter(r.URL.Query())

	candidates, total, err := h.repository.ListCandidates(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.paginatedResponse(w, r, candidates, total, filter.Pagination)
}

func (h *Handler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	candidate := r.Context().Value(CandidateCtxKey).(*domain.User)
	h.writeJSON(w, r, http.StatusOK, map[string]any{"candidate": candidate})
}
