package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/ignite-quest/internal/logger"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/model"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/quest"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/repository"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/service"
)

// QuestHandler exposes quest sessions: one form instance per session id.
type QuestHandler struct {
	sessions      *quest.Registry
	registrations *service.RegistrationService
	log           *logger.Logger
}

// NewQuestHandler constructs a QuestHandler.
func NewQuestHandler(sessions *quest.Registry, registrations *service.RegistrationService, log *logger.Logger) *QuestHandler {
	return &QuestHandler{sessions: sessions, registrations: registrations, log: log}
}

type sessionResponse struct {
	ID string `json:"id"`
	quest.View
}

// session resolves {id} or writes a 404.
func (h *QuestHandler) session(w http.ResponseWriter, r *http.Request) (string, *quest.Controller, bool) {
	id := chi.URLParam(r, "id")
	ctrl, err := h.sessions.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "quest session not found")
		return "", nil, false
	}
	return id, ctrl, true
}

// CreateSession handles POST /quests
func (h *QuestHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, ctrl, err := h.sessions.Create()
	if err != nil {
		h.log.Warn("quest session rejected", "error", err)
		w.Header().Set("Retry-After", "60")
		writeError(w, http.StatusServiceUnavailable, "too many active quests, try again shortly")
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{ID: id, View: ctrl.View()})
}

// GetSession handles GET /quests/{id}
func (h *QuestHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, View: ctrl.View()})
}

// Submit handles POST /quests/{id}/submit
// Runs one profile generation and returns the resulting view.
func (h *QuestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.session(w, r)
	if !ok {
		return
	}

	var in model.RegistrationInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	_, err := ctrl.Submit(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, quest.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, quest.ErrSubmissionInFlight):
			writeError(w, http.StatusConflict, "a submission is already in progress")
		case errors.Is(err, quest.ErrNotCollecting):
			writeError(w, http.StatusConflict, "profile already generated, reset to start again")
		default:
			h.log.Warn("quest submit failed", "session", id, "error", err)
			writeJSON(w, http.StatusBadGateway, sessionResponse{ID: id, View: ctrl.View()})
		}
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{ID: id, View: ctrl.View()})
}

// Reset handles POST /quests/{id}/reset?keep_input=true
func (h *QuestHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.session(w, r)
	if !ok {
		return
	}

	keep, _ := strconv.ParseBool(r.URL.Query().Get("keep_input"))
	if err := ctrl.Reset(keep); err != nil {
		writeError(w, http.StatusConflict, "cannot reset while a submission is in progress")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{ID: id, View: ctrl.View()})
}

// Finalize handles POST /quests/{id}/finalize
// Stores the generated profile as a registration.
func (h *QuestHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.session(w, r)
	if !ok {
		return
	}

	data, ok := ctrl.Data()
	if !ok {
		writeError(w, http.StatusConflict, "no generated profile to finalize")
		return
	}

	reg, err := h.registrations.Finalize(r.Context(), data)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyRegistered) {
			writeError(w, http.StatusConflict, "you are already registered")
			return
		}
		h.log.Error("finalize registration failed", "session", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to finalize registration")
		return
	}

	writeJSON(w, http.StatusCreated, reg)
}
