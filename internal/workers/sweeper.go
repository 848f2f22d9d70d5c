package workers

import (
	"time"

	"github.com/gvnetwork/contacts-api/internal/logger"
)

// sweeper periodically invokes a cleanup function and logs how many
// records it removed. The function must be safe for concurrent use with
// the component it cleans.
type sweeper struct {
	name     string
	interval time.Duration
	sweep    func() int

	logger *logger.Logger
}

func newSweeper(name string, interval time.Duration, sweep func() int, log *logger.Logger) Worker {
	return &sweeper{
		name:     name,
		interval: interval,
		sweep:    sweep,
		logger:   log,
	}
}

// Run starts the sweep loop in a background goroutine and returns
// immediately. The loop runs for the lifetime of the process.
func (s *sweeper) Run() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for range ticker.C {
			removed := s.sweep()
			if removed > 0 {
				s.logger.Debug().Str("worker", s.name).Int("removed", removed).Msg("sweep completed")
			}
		}
	}()
}
