package handler

import (
	"github.com/gvnetwork/contacts-api/internal/cache"
	"github.com/gvnetwork/contacts-api/internal/config"
	"github.com/gvnetwork/contacts-api/internal/handler/http"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/monitor"
	"github.com/gvnetwork/contacts-api/internal/ratelimit"
	"github.com/gvnetwork/contacts-api/internal/service"
	"github.com/gvnetwork/contacts-api/models"
)

// Handlers aggregates the transport handlers of the application.
type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers wires the HTTP handler with its cross-cutting dependencies:
// the search cache and rate limiter it administers, the error monitor,
// and build metadata.
func NewHandlers(services *service.Services, searchCache *cache.SearchCache, limiter *ratelimit.Limiter, errorMonitor *monitor.Monitor, buildInfo models.AppBuildInfo, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, searchCache, limiter, errorMonitor, buildInfo, logger)
	}

	if handlers.HTTP == nil {
		logger.Error().Msg("no handlers are created")
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
