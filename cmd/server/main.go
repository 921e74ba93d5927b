package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	h "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/gymstack/journey-api/internal/cache"
	"github.com/gymstack/journey-api/internal/config"
	"github.com/gymstack/journey-api/internal/handlers"
	"github.com/gymstack/journey-api/internal/middleware"
	"github.com/gymstack/journey-api/internal/migration"
	"github.com/gymstack/journey-api/internal/repository"
	"github.com/gymstack/journey-api/internal/routes"
	"github.com/gymstack/journey-api/internal/simulation"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type application struct {
	config   *config.Config
	db       *sql.DB
	logger   zerolog.Logger
	sessions *simulation.Manager
}

func main() {
	// Set up structured, level-based logging.
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.SetFlags(0)
	log.SetOutput(logger)

	goose.SetLogger(migration.NewGooseAdapter(logger))

	// Load configuration.
	cfg := config.Load()

	// Initialize database connection.
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ping database")
	}

	// Run database migrations.
	migration.RunMigrations(cfg.DatabaseURL, logger)

	// Create the application instance.
	app := &application{
		config:   cfg,
		db:       db,
		logger:   logger,
		sessions: simulation.NewManager(logger),
	}

	// Evict idle simulation sessions in the background.
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go app.sessions.RunJanitor(janitorCtx, cfg.Simulation.SweepInterval, cfg.Simulation.SessionTTL)

	// Initialize the HTTP router and middleware.
	router := app.initRouter(logger)
	loggedRouter := middleware.LoggingMiddleware(app.logger)(router)
	corsHandler := h.CORS(
		h.AllowedOrigins(cfg.AllowedOrigins),
		h.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		h.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		h.AllowCredentials(),
	)(loggedRouter)

	// Start the HTTP server and handle graceful shutdown.
	app.startServer(corsHandler, logger)

	logger.Info().Msg("Application terminated.")
}

// initRouter sets up all HTTP handlers and returns the router.
func (app *application) initRouter(logger zerolog.Logger) *mux.Router {
	journeyRepo := repository.NewJourneyRepository(app.db)

	// Journey loads are cached; fall back to an in-process cache when no
	// redis address is configured.
	var journeyCache cache.Cache
	if app.config.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(app.config.Redis.Addr, app.config.Redis.Password, app.config.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		journeyCache = redisCache
	} else {
		logger.Warn().Msg("No redis address configured, using in-process journey cache")
		journeyCache = cache.NewMemoryCache()
	}
	cachedRepo := repository.NewCachedJourneyRepository(journeyRepo, journeyCache, app.config.Simulation.JourneyTTL, logger)

	authHandler := handlers.NewAuthHandler(app.db, app.config, logger)
	journeyHandler := handlers.NewJourneyHandler(cachedRepo, logger)
	simulationHandler := handlers.NewSimulationHandler(cachedRepo, app.sessions, logger)

	return routes.NewRouter(authHandler, journeyHandler, simulationHandler)
}

// startServer launches the HTTP server and handles graceful shutdown.
func (app *application) startServer(handler http.Handler, logger zerolog.Logger) {
	server := &http.Server{
		Addr:    ":" + app.config.ServerPort,
		Handler: handler,
	}

	// Channel to listen for server errors
	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	// Wait for an interrupt signal or a server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info().Msgf("Received signal: %s. Shutting down...", sig)
	case err := <-serverErrCh:
		logger.Error().Err(err).Msg("Server error occurred")
	}

	// Gracefully shut down the HTTP server.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		logger.Info().Msg("HTTP server shutdown complete.")
	}
}
