package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/gymstack/journey-api/internal/library"
	"github.com/gymstack/journey-api/internal/models"
	"github.com/gymstack/journey-api/internal/repository"
	"github.com/gymstack/journey-api/internal/timeline"
)

type JourneyHandler struct {
	repo   repository.JourneyRepository
	logger zerolog.Logger
}

func NewJourneyHandler(repo repository.JourneyRepository, logger zerolog.Logger) *JourneyHandler {
	return &JourneyHandler{
		repo:   repo,
		logger: logger.With().Str("handler", "journey").Logger(),
	}
}

func (h *JourneyHandler) List(w http.ResponseWriter, r *http.Request) {
	journeys, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list journeys")
		http.Error(w, "Failed to list journeys", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"journeys": journeys})
}

func (h *JourneyHandler) Get(w http.ResponseWriter, r *http.Request) {
	journeyID := mux.Vars(r)["journeyID"]
	journey, err := h.repo.Get(r.Context(), journeyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Journey not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("journey_id", journeyID).Msg("failed to load journey")
		http.Error(w, "Failed to load journey", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, journey)
}

func (h *JourneyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		http.Error(w, "Journey name is required", http.StatusBadRequest)
		return
	}

	journey, err := h.repo.Create(r.Context(), payload.Name)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create journey")
		http.Error(w, "Failed to create journey", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, journey)
}

func (h *JourneyHandler) Rename(w http.ResponseWriter, r *http.Request) {
	journeyID := mux.Vars(r)["journeyID"]
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		http.Error(w, "Journey name is required", http.StatusBadRequest)
		return
	}

	if err := h.repo.Rename(r.Context(), journeyID, payload.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Journey not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("journey_id", journeyID).Msg("failed to rename journey")
		http.Error(w, "Failed to rename journey", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *JourneyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	journeyID := mux.Vars(r)["journeyID"]
	if err := h.repo.Delete(r.Context(), journeyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Journey not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("journey_id", journeyID).Msg("failed to delete journey")
		http.Error(w, "Failed to delete journey", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type actionPayload struct {
	ActionTypeID       string            `json:"action_type_id"`
	Product            models.Product    `json:"product"`
	RequiredCount      *int              `json:"required_count,omitempty"`
	VisibleInChecklist *bool             `json:"visible_in_checklist,omitempty"`
	GuidanceEnabled    *bool             `json:"guidance_enabled,omitempty"`
	TimeRange          models.TimeRange  `json:"time_range"`
	Reminders          []models.Reminder `json:"reminders"`
}

// buildAction seeds an action from the type catalog and overlays the
// submitted configuration. The catalog is only consulted here, at creation
// time; the engine never re-reads it.
func buildAction(payload actionPayload) (models.Action, error) {
	item, ok := library.Get(payload.ActionTypeID)
	if !ok {
		return models.Action{}, errors.New("unknown action type")
	}
	if !models.IsValidProduct(payload.Product) || !item.SupportsProduct(payload.Product) {
		return models.Action{}, errors.New("product not supported by action type")
	}

	action := models.Action{
		ActionTypeID:       item.ID,
		EventType:          item.EventType,
		CompletionMode:     item.CompletionMode,
		RequiredCount:      payload.RequiredCount,
		Product:            payload.Product,
		VisibleInChecklist: true,
		GuidanceEnabled:    item.SupportsGuidance && item.DefaultGuidanceEnabled,
		TimeRange:          payload.TimeRange,
		Reminders:          payload.Reminders,
	}
	if action.CompletionMode == models.CompletionCounter && action.RequiredCount == nil {
		one := 1
		action.RequiredCount = &one
	}
	if payload.VisibleInChecklist != nil {
		action.VisibleInChecklist = *payload.VisibleInChecklist
	}
	if payload.GuidanceEnabled != nil {
		action.GuidanceEnabled = *payload.GuidanceEnabled && item.SupportsGuidance
	}
	return action, action.Validate()
}

func (h *JourneyHandler) AddAction(w http.ResponseWriter, r *http.Request) {
	journeyID := mux.Vars(r)["journeyID"]
	var payload actionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	action, err := buildAction(payload)
	if err != nil {
		http.Error(w, "Invalid action: "+err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.repo.AddAction(r.Context(), journeyID, action)
	if err != nil {
		h.logger.Error().Err(err).Str("journey_id", journeyID).Msg("failed to add action")
		http.Error(w, "Failed to add action", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *JourneyHandler) UpdateAction(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	journeyID, actionID := vars["journeyID"], vars["actionID"]

	var payload actionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	action, err := buildAction(payload)
	if err != nil {
		http.Error(w, "Invalid action: "+err.Error(), http.StatusBadRequest)
		return
	}
	action.ID = actionID

	updated, err := h.repo.UpdateAction(r.Context(), journeyID, action)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Action not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("action_id", actionID).Msg("failed to update action")
		http.Error(w, "Failed to update action", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *JourneyHandler) DeleteAction(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	journeyID, actionID := vars["journeyID"], vars["actionID"]

	if err := h.repo.DeleteAction(r.Context(), journeyID, actionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Action not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("action_id", actionID).Msg("failed to delete action")
		http.Error(w, "Failed to delete action", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *JourneyHandler) ReorderActions(w http.ResponseWriter, r *http.Request) {
	journeyID := mux.Vars(r)["journeyID"]
	var payload struct {
		ActionIDs []string `json:"action_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if len(payload.ActionIDs) == 0 {
		http.Error(w, "Action ids are required", http.StatusBadRequest)
		return
	}

	if err := h.repo.ReorderActions(r.Context(), journeyID, payload.ActionIDs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Action not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("journey_id", journeyID).Msg("failed to reorder actions")
		http.Error(w, "Failed to reorder actions", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *JourneyHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	journeyID := mux.Vars(r)["journeyID"]
	journey, err := h.repo.Get(r.Context(), journeyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Journey not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("journey_id", journeyID).Msg("failed to load journey")
		http.Error(w, "Failed to load journey", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"positions": timeline.Positions(journey.Actions),
		"markers":   timeline.StandardMarkers,
	})
}

// ActionTypes serves the static action-type catalog for the builder palette.
func (h *JourneyHandler) ActionTypes(w http.ResponseWriter, r *http.Request) {
	grouped := library.ByCategory()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"action_types": library.All(),
		"categories":   grouped,
	})
}
