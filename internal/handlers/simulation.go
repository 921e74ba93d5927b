package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/gymstack/journey-api/internal/checklist"
	"github.com/gymstack/journey-api/internal/library"
	"github.com/gymstack/journey-api/internal/models"
	"github.com/gymstack/journey-api/internal/repository"
	"github.com/gymstack/journey-api/internal/simulation"
)

type SimulationHandler struct {
	journeys repository.JourneyRepository
	sessions *simulation.Manager
	logger   zerolog.Logger
}

func NewSimulationHandler(journeys repository.JourneyRepository, sessions *simulation.Manager, logger zerolog.Logger) *SimulationHandler {
	return &SimulationHandler{
		journeys: journeys,
		sessions: sessions,
		logger:   logger.With().Str("handler", "simulation").Logger(),
	}
}

func (h *SimulationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		JourneyID string `json:"journey_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.JourneyID == "" {
		http.Error(w, "Journey id is required", http.StatusBadRequest)
		return
	}

	journey, err := h.journeys.Get(r.Context(), payload.JourneyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Journey not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("journey_id", payload.JourneyID).Msg("failed to load journey")
		http.Error(w, "Failed to load journey", http.StatusInternalServerError)
		return
	}

	session := h.sessions.Create(journey)
	writeJSON(w, http.StatusCreated, session.Snapshot())
}

func (h *SimulationHandler) session(w http.ResponseWriter, r *http.Request) (*simulation.Session, bool) {
	sessionID := mux.Vars(r)["sessionID"]
	session, ok := h.sessions.Get(sessionID)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

func (h *SimulationHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (h *SimulationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]
	if !h.sessions.Remove(sessionID) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SimulationHandler) TriggerEvent(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var payload struct {
		EventType string         `json:"event_type"`
		Product   models.Product `json:"product"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.EventType == "" || !models.IsValidProduct(payload.Product) {
		http.Error(w, "Event type and a valid product are required", http.StatusBadRequest)
		return
	}

	session.TriggerEvent(payload.EventType, payload.Product)
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (h *SimulationHandler) SetTime(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var payload struct {
		Time time.Time `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Time.IsZero() {
		http.Error(w, "A valid time is required", http.StatusBadRequest)
		return
	}

	session.SetTime(payload.Time)
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (h *SimulationHandler) FastForward(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var payload struct {
		Days int `json:"days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.Days < 1 {
		http.Error(w, "Days must be at least 1", http.StatusBadRequest)
		return
	}

	session.FastForward(payload.Days)
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (h *SimulationHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	session.Reset()
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (h *SimulationHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	notificationID := mux.Vars(r)["notificationID"]
	if !session.MarkNotificationRead(notificationID) {
		http.Error(w, "Notification not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type checklistItem struct {
	ActionID  string              `json:"action_id"`
	Title     string              `json:"title"`
	Status    models.ActionStatus `json:"status"`
	TimeFrame string              `json:"time_frame"`
	Progress  string              `json:"progress,omitempty"`
	Percent   float64             `json:"percent,omitempty"`
}

// Checklist renders the member-facing view of a session: one row per
// visible action with its status, deadline text, and counter progress.
func (h *SimulationHandler) Checklist(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	snap := session.Snapshot()
	items := make([]checklistItem, 0, len(snap.Instances))
	for _, inst := range snap.Instances {
		if !inst.VisibleInChecklist {
			continue
		}
		item := checklistItem{
			ActionID:  inst.Action.ID,
			Title:     library.Title(inst.ActionTypeID),
			Status:    inst.Status,
			TimeFrame: checklist.FormatTimeFrame(inst.Action, inst.Deadline, snap.Now),
		}
		if inst.CompletionMode == models.CompletionCounter {
			item.Progress = checklist.FormatProgress(inst.CurrentCount, inst.Required())
			item.Percent = checklist.ProgressPercent(inst.CurrentCount, inst.Required())
		}
		items = append(items, item)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"now":   snap.Now,
		"items": items,
	})
}
