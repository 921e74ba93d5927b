package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gymstack/journey-api/internal/handlers"
)

// NewRouter sets up the API routes
func NewRouter(auth *handlers.AuthHandler, journey *handlers.JourneyHandler, sim *handlers.SimulationHandler) *mux.Router {
	router := mux.NewRouter()

	// Health check route
	router.HandleFunc("/health", handlers.HealthCheck).Methods(http.MethodGet)

	// Public auth endpoints
	router.HandleFunc("/api/signup", auth.SignUp).Methods(http.MethodPost)
	router.HandleFunc("/api/login", auth.Login).Methods(http.MethodPost)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(auth.JWTMiddleware)

	// Builder catalog
	api.HandleFunc("/action-types", journey.ActionTypes).Methods(http.MethodGet)

	// Journey definitions
	api.HandleFunc("/journeys", journey.List).Methods(http.MethodGet)
	api.HandleFunc("/journeys", journey.Create).Methods(http.MethodPost)
	api.HandleFunc("/journeys/{journeyID}", journey.Get).Methods(http.MethodGet)
	api.HandleFunc("/journeys/{journeyID}", journey.Rename).Methods(http.MethodPut)
	api.HandleFunc("/journeys/{journeyID}", journey.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/journeys/{journeyID}/timeline", journey.Timeline).Methods(http.MethodGet)
	api.HandleFunc("/journeys/{journeyID}/actions", journey.AddAction).Methods(http.MethodPost)
	api.HandleFunc("/journeys/{journeyID}/actions/order", journey.ReorderActions).Methods(http.MethodPut)
	api.HandleFunc("/journeys/{journeyID}/actions/{actionID}", journey.UpdateAction).Methods(http.MethodPut)
	api.HandleFunc("/journeys/{journeyID}/actions/{actionID}", journey.DeleteAction).Methods(http.MethodDelete)

	// Simulation sessions
	api.HandleFunc("/simulations", sim.Create).Methods(http.MethodPost)
	api.HandleFunc("/simulations/{sessionID}", sim.Get).Methods(http.MethodGet)
	api.HandleFunc("/simulations/{sessionID}", sim.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/simulations/{sessionID}/events", sim.TriggerEvent).Methods(http.MethodPost)
	api.HandleFunc("/simulations/{sessionID}/time", sim.SetTime).Methods(http.MethodPut)
	api.HandleFunc("/simulations/{sessionID}/fast-forward", sim.FastForward).Methods(http.MethodPost)
	api.HandleFunc("/simulations/{sessionID}/reset", sim.Reset).Methods(http.MethodPost)
	api.HandleFunc("/simulations/{sessionID}/checklist", sim.Checklist).Methods(http.MethodGet)
	api.HandleFunc("/simulations/{sessionID}/notifications/{notificationID}/read", sim.MarkNotificationRead).Methods(http.MethodPost)

	return router
}
