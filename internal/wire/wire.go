package wire

import (
	"net/http"

	"ticket-booking/internal/adaptor"
	"ticket-booking/internal/data/repository"
	"ticket-booking/internal/usecase"
	"ticket-booking/pkg/cache"
	"ticket-booking/pkg/database"
	"ticket-booking/pkg/middleware"
	"ticket-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring builds the service and handler graph and mounts all routes.
func Wiring(repo *repository.Repository, cache *cache.Cache, db database.PgxIface, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, cache, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, cache, db, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	cache *cache.Cache,
	db database.PgxIface,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireVenue(r, handler.Venue)
	wireEvent(r, handler.Event)
	wireTicketType(r, handler.TicketType)
	wireBooking(r, handler.Booking)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := db.Ping(req.Context()); err != nil {
			logger.Error("Health check failed - database unreachable", zap.Error(err))
			utils.ResponseInternalError(w, "database unreachable")
			return
		}
		if err := cache.Ping(req.Context()); err != nil {
			logger.Warn("Health check - cache unreachable", zap.Error(err))
		}
		utils.ResponseSuccess(w, "OK", nil)
	})

	return r
}
