package main

import (
	"context"
	"fmt"

	"github.com/gvnetwork/contacts-api/internal/cache"
	"github.com/gvnetwork/contacts-api/internal/config"
	"github.com/gvnetwork/contacts-api/internal/handler"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/monitor"
	"github.com/gvnetwork/contacts-api/internal/ratelimit"
	"github.com/gvnetwork/contacts-api/internal/server"
	"github.com/gvnetwork/contacts-api/internal/service"
	"github.com/gvnetwork/contacts-api/internal/store"
	"github.com/gvnetwork/contacts-api/internal/workers"
	"github.com/gvnetwork/contacts-api/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("contacts-api")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	searchCache := cache.New(cfg.Cache.TTL, cfg.Cache.Capacity, log)
	limiter := ratelimit.New(limitsFromConfig(cfg.RateLimit), log)
	errorMonitor := monitor.New(log)

	services := service.NewServices(storages, *cfg, searchCache, log)

	version := cfg.App.Version
	if version == "" {
		version = buildVersion
	}
	buildInfo := models.AppBuildInfo{Version: version, Date: buildDate, Commit: buildCommit}

	handlers, err := handler.NewHandlers(services, searchCache, limiter, errorMonitor, buildInfo, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(cfg.Workers, searchCache, errorMonitor, limiter, log).Run()

	warmed := services.ContactsService.WarmCache(ctx)
	log.Info().Int("warmed", warmed).Msg("search cache warmed at startup")

	srv.RunServer()
}

func limitsFromConfig(cfg config.RateLimit) map[ratelimit.Class]ratelimit.Limit {
	return map[ratelimit.Class]ratelimit.Limit{
		ratelimit.ClassGeneral:  {Max: cfg.General.Max, Window: cfg.General.Window},
		ratelimit.ClassSearch:   {Max: cfg.Search.Max, Window: cfg.Search.Window},
		ratelimit.ClassAuth:     {Max: cfg.Auth.Max, Window: cfg.Auth.Window},
		ratelimit.ClassMutation: {Max: cfg.Mutation.Max, Window: cfg.Mutation.Window},
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
