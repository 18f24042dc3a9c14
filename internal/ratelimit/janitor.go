package ratelimit

import (
	"time"

	"go.uber.org/zap"
)

// Janitor periodically sweeps stale counters out of a Limiter so the pair
// table does not grow without bound under traffic from many distinct
// clients.
type Janitor struct {
	limiter  *Limiter
	interval time.Duration
	maxAge   time.Duration
	logger   *zap.Logger
	stop     chan struct{}
	done     chan struct{}
}

// NewJanitor creates a janitor that every interval drops counters whose
// window expired more than maxAge ago.
func NewJanitor(limiter *Limiter, interval, maxAge time.Duration, logger *zap.Logger) *Janitor {
	return &Janitor{
		limiter:  limiter,
		interval: interval,
		maxAge:   maxAge,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop.
func (j *Janitor) Start() {
	go j.run()
}

func (j *Janitor) run() {
	defer close(j.done)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.stop:
			return
		case <-ticker.C:
			if removed := j.limiter.Sweep(j.maxAge); removed > 0 {
				j.logger.Debug("swept stale rate limit counters",
					zap.Int("removed", removed),
					zap.Int("tracked", j.limiter.Len()),
				)
			}
		}
	}
}

// Shutdown stops the sweep loop and waits for it to exit.
func (j *Janitor) Shutdown() error {
	close(j.stop)
	<-j.done

	return nil
}
