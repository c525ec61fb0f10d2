package wire

import (
	"net/http"

	"github.com/roygutt18/quiteSlot/internal/adaptor"
	"github.com/roygutt18/quiteSlot/internal/session"
	"github.com/roygutt18/quiteSlot/internal/usecase"
	"github.com/roygutt18/quiteSlot/pkg/middleware"
	"github.com/roygutt18/quiteSlot/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled application
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(manager *session.Manager, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, manager, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(handler *adaptor.Handler, manager *session.Manager, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Every wizard endpoint runs inside the caller's session orchestrator.
	r.Route("/api/wizard", func(r chi.Router) {
		r.Use(middleware.WizardSession(manager, logger))

		r.Get("/state", handler.State)

		r.Post("/mode", handler.Mode)
		r.Post("/back", handler.Back)
		r.Post("/reset", handler.Reset)

		r.Post("/phone", handler.Phone)
		r.Post("/verify", handler.Verify)
		r.Post("/resend", handler.Resend)
		r.Post("/name", handler.Name)
		r.Post("/logout", handler.Logout)

		r.Post("/month", handler.Month)
		r.Post("/service", handler.Service)
		r.Post("/date", handler.Date)
		r.Post("/slot", handler.Slot)

		r.Post("/cancel-list", handler.CancelList)
		r.Post("/cancel", handler.Cancel)

		r.Post("/confirm", handler.Confirm)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
