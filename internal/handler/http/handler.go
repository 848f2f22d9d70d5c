package http

import (
	"github.com/gvnetwork/contacts-api/internal/cache"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/monitor"
	"github.com/gvnetwork/contacts-api/internal/ratelimit"
	"github.com/gvnetwork/contacts-api/internal/service"
	"github.com/gvnetwork/contacts-api/models"
)

// Handler carries the dependencies shared by every HTTP route: the service
// layer, the search cache and rate limiter it administers, the error
// monitor, and build metadata.
type Handler struct {
	services    *service.Services
	searchCache *cache.SearchCache
	limiter     *ratelimit.Limiter
	monitor     *monitor.Monitor
	buildInfo   models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(services *service.Services, searchCache *cache.SearchCache, limiter *ratelimit.Limiter, errorMonitor *monitor.Monitor, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:    services,
		searchCache: searchCache,
		limiter:     limiter,
		monitor:     errorMonitor,
		buildInfo:   buildInfo,
		logger:      logger,
	}
}
