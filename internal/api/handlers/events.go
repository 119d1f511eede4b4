package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatherhub/server/internal/api/problem"
	"github.com/gatherhub/server/internal/domain/events"
	"github.com/gatherhub/server/internal/metrics"
)

type EventsHandler struct {
	Service *events.Service
	Env     string
}

func NewEventsHandler(service *events.Service, env string) *EventsHandler {
	return &EventsHandler{Service: service, Env: env}
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", nil, h.Env)
		return
	}

	var input events.EventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	params, err := input.InsertParams()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.Service.Create(r.Context(), params)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Failed to create event", err, h.Env)
		return
	}

	metrics.EventsCreated.Inc()
	writeJSON(w, http.StatusCreated, created)
}

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", nil, h.Env)
		return
	}

	filters := events.ParseListFilters(r.URL.Query())

	items, err := h.Service.List(r.Context(), filters)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Failed to fetch events", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", nil, h.Env)
		return
	}

	item, err := h.Service.GetByID(r.Context(), pathParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

type rsvpRequest struct {
	Attendee string `json:"attendee"`
}

func (h *EventsHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", nil, h.Env)
		return
	}

	var input rsvpRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}
	if input.Attendee == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request",
			events.ValidationError{Field: "attendee", Message: "attendee name or email is required"}, h.Env)
		return
	}

	updated, added, err := h.Service.AddAttendee(r.Context(), pathParam(r, "id"), input.Attendee)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result := "duplicate"
	if added {
		result = "added"
	}
	metrics.RSVPs.WithLabelValues(result).Inc()

	writeJSON(w, http.StatusOK, updated)
}

type deleteResponse struct {
	Message string `json:"message"`
}

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", nil, h.Env)
		return
	}

	if _, err := h.Service.Delete(r.Context(), pathParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}

	metrics.EventsDeleted.Inc()
	writeJSON(w, http.StatusOK, deleteResponse{Message: "Event deleted successfully"})
}

// writeError maps service errors onto the response taxonomy: validation
// failures become 400, missing events 404, everything else a generic 500.
func (h *EventsHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr events.ValidationError
	switch {
	case errors.As(err, &verr):
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
	case errors.Is(err, events.ErrNotFound):
		problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Event not found", err, h.Env)
	default:
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func pathParam(r *http.Request, key string) string {
	if r == nil {
		return ""
	}
	return r.PathValue(key)
}
