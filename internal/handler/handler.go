// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/ignite-quest/internal/model"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/repository"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/service"
)

// EventHandler serves the schedule, the countdown and finalized registrations.
type EventHandler struct {
	events        *service.EventService
	registrations *service.RegistrationService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(events *service.EventService, registrations *service.RegistrationService) *EventHandler {
	return &EventHandler{events: events, registrations: registrations}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// ListEvents handles GET /events
// Returns the event phases in schedule order.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	phases, err := h.events.ListPhases(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if phases == nil {
		phases = []model.Phase{}
	}

	writeJSON(w, http.StatusOK, phases)
}

// GetEvent handles GET /events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	phase, err := h.events.GetPhase(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get event")
		return
	}

	writeJSON(w, http.StatusOK, phase)
}

// Countdown handles GET /countdown
func (h *EventHandler) Countdown(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.events.Countdown())
}

// ListRegistrations handles GET /registrations
// Admin only; mounted behind RequireAdmin.
func (h *EventHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.registrations.ListRegistrations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list registrations")
		return
	}

	if regs == nil {
		regs = []model.Registration{}
	}

	writeJSON(w, http.StatusOK, regs)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
