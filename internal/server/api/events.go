// Package api contains the JSON HTTP handlers for the Mudra server.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ayusman/mudra/internal/store"
)

// DefaultListLimit bounds /api/events responses when no limit is given.
const DefaultListLimit = 50

// EventHandler handles HTTP requests for flip event resources.
type EventHandler struct {
	store *store.Store
}

// NewEventHandler creates a new EventHandler with the given store.
func NewEventHandler(s *store.Store) *EventHandler {
	return &EventHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *EventHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/events or /api/events/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/events")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/events
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodDelete:
			h.deleteAll(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/events/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type eventResponse struct {
	ID        string  `json:"id"`
	Hand      string  `json:"hand"`
	Direction string  `json:"direction"`
	Velocity  float64 `json:"velocity"`
	Message   string  `json:"message"`
	CreatedAt string  `json:"created_at"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toEventResponse converts a store.Event to an eventResponse.
func toEventResponse(e *store.Event) eventResponse {
	return eventResponse{
		ID:        e.ID,
		Hand:      e.Hand,
		Direction: e.Direction,
		Velocity:  e.Velocity,
		Message:   e.Message,
		CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/events and returns the most recent events.
// An optional ?limit= query parameter caps the result size.
func (h *EventHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	events, err := h.store.Events().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	response := listEventsResponse{
		Events: make([]eventResponse, 0, len(events)),
	}
	for _, e := range events {
		response.Events = append(response.Events, toEventResponse(e))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/events/{id} and returns a single event.
func (h *EventHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	event, err := h.store.Events().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get event")
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(event))
}

// deleteAll handles DELETE /api/events and clears the event log.
func (h *EventHandler) deleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Events().DeleteAll(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete events")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
