package api

import (
	"net/http"

	"intervai/internal/store"
)

type healthResponse struct {
	Status     string `json:"status"`
	Interviews int    `json:"interviews"`
	Message    string `json:"message,omitempty"`
}

type HealthHandler struct {
	db *store.DB
}

func NewHealthHandler(db *store.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}

	count, err := h.db.InterviewCount()
	if err != nil {
		resp.Status = "degraded"
		resp.Message = err.Error()
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	resp.Interviews = count
	writeJSON(w, http.StatusOK, resp)
}
