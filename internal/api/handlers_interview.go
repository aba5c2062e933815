package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"intervai/internal/interview"
	"intervai/internal/models"
	"intervai/internal/provider"
	"intervai/internal/store"
)

type InterviewHandler struct {
	svc     *interview.Service
	archive *store.InterviewStore
}

func NewInterviewHandler(svc *interview.Service, archive *store.InterviewStore) *InterviewHandler {
	return &InterviewHandler{svc: svc, archive: archive}
}

// Start handles POST /interview/start
func (h *InterviewHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req models.StartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.svc.Start(req)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Question handles POST /interview/question
func (h *InterviewHandler) Question(w http.ResponseWriter, r *http.Request) {
	var req models.SessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.svc.NextQuestion(r.Context(), req.SessionID)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Followup handles POST /interview/followup
func (h *InterviewHandler) Followup(w http.ResponseWriter, r *http.Request) {
	var req models.SessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.svc.Followup(r.Context(), req.SessionID)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Answer handles POST /interview/answer
func (h *InterviewHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req models.AnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	judgment, err := h.svc.SubmitAnswer(r.Context(), req.SessionID, req.Answer)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, judgment)
}

// End handles POST /interview/end
func (h *InterviewHandler) End(w http.ResponseWriter, r *http.Request) {
	var req models.SessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	summary, err := h.svc.End(req.SessionID)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Restore handles POST /interview/restore
func (h *InterviewHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req models.SessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.svc.Restore(req.SessionID)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListArchive handles GET /interview/archive
func (h *InterviewHandler) ListArchive(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.archive.List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetArchived handles GET /interview/archive/{id}
func (h *InterviewHandler) GetArchived(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	summary, err := h.archive.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "interview not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// serviceError maps orchestrator failures onto HTTP statuses. Gateway error
// messages are already masked, so they are safe to return to the client.
func (h *InterviewHandler) serviceError(w http.ResponseWriter, err error) {
	var verr *interview.ValidationError
	var gerr *provider.GatewayError

	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, interview.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.As(err, &gerr):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
