package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mjcastro/gradesource-be/internal/services"
)

// ClassHandler handles HTTP requests for the class catalog.
type ClassHandler struct {
	service services.ClassServiceProvider
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(service services.ClassServiceProvider) *ClassHandler {
	return &ClassHandler{service: service}
}

// RegisterPayload defines the structure for class registration requests.
type RegisterPayload struct {
	URL string `json:"url"`
}

// Register handles adding a new class URL to the catalog.
func (h *ClassHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	class, valid, err := h.service.RegisterClass(r.Context(), payload.URL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyURL):
			writeError(w, http.StatusUnprocessableEntity, "You must provide a class URL")
		case errors.Is(err, services.ErrDuplicateClass):
			writeError(w, http.StatusUnprocessableEntity, "Class is already registered")
		default:
			log.Error().Err(err).Str("url", payload.URL).Msg("Failed to register class")
			writeError(w, http.StatusInternalServerError, "Failed to register class")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":    class.ID,
		"url":   class.URL,
		"valid": valid,
	})
}

// List returns every registered class.
func (h *ClassHandler) List(w http.ResponseWriter, r *http.Request) {
	classes, err := h.service.ListClasses(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list classes")
		writeError(w, http.StatusInternalServerError, "Failed to list classes")
		return
	}
	writeJSON(w, http.StatusOK, classes)
}
