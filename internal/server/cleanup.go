package server

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// CleanupWorker periodically evicts idle sessions so abandoned games do
// not pile up in memory.
type CleanupWorker struct {
	manager  *SessionManager
	interval time.Duration
	maxIdle  time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewCleanupWorker(manager *SessionManager, interval, maxIdle time.Duration) *CleanupWorker {
	return &CleanupWorker{
		manager:  manager,
		interval: interval,
		maxIdle:  maxIdle,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the background ticker.
func (w *CleanupWorker) Start() {
	go w.run()
	log.Info().Dur("interval", w.interval).Dur("max_idle", w.maxIdle).Msg("cleanup worker started")
}

// Stop halts the ticker and waits for the current pass to finish.
func (w *CleanupWorker) Stop() {
	close(w.stop)
	<-w.done
}

func (w *CleanupWorker) run() {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed := w.manager.PruneIdle(context.Background(), w.maxIdle)
			if removed > 0 {
				log.Info().Int("removed", removed).Msg("pruned idle game sessions")
			}
		case <-w.stop:
			return
		}
	}
}
