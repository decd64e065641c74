package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jcaldw/trickortreth/internal/api/handler"
	apimiddleware "github.com/jcaldw/trickortreth/internal/api/middleware"
	"github.com/jcaldw/trickortreth/internal/doorbell"
	"github.com/jcaldw/trickortreth/internal/middleware"
	"github.com/jcaldw/trickortreth/internal/services/player"
	"github.com/jcaldw/trickortreth/internal/services/visit"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	VisitController  visit.ControllerInterface
	PlayerService    player.ServiceInterface
	DoorbellRegistry *doorbell.Registry
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	visitHandler := handler.NewVisitHandler(cfg.VisitController, cfg.DoorbellRegistry)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players", playerHandler.Upsert).Methods(http.MethodPost)
	api.HandleFunc("/players/{fid}", playerHandler.Get).Methods(http.MethodGet)

	// Visit routes
	api.HandleFunc("/visits", visitHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/visits", visitHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/visits/events", visitHandler.Events).Methods(http.MethodGet)
	api.HandleFunc("/visits/{id}", visitHandler.Decide).Methods(http.MethodPatch)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
