package workers

import (
	"github.com/gvnetwork/contacts-api/internal/cache"
	"github.com/gvnetwork/contacts-api/internal/config"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/monitor"
	"github.com/gvnetwork/contacts-api/internal/ratelimit"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background sweepers that keep in-memory state
// bounded: expired search-cache pages, aged-out error-monitor entries,
// and stale rate-limit violation records.
func NewWorkers(cfg config.Workers, searchCache *cache.SearchCache, errorMonitor *monitor.Monitor, limiter *ratelimit.Limiter, log *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			newSweeper("cache-janitor", cfg.SweepInterval, searchCache.RemoveExpired, log),
			newSweeper("monitor-sweeper", cfg.SweepInterval, func() int {
				return errorMonitor.Sweep(cfg.Retention)
			}, log),
			newSweeper("violation-sweeper", cfg.SweepInterval, func() int {
				return limiter.SweepViolations(cfg.Retention)
			}, log),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
