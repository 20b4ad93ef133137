package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/laya-karavadi/connect-four/internal/store"
)

func TestCleanupWorkerEvictsIdleSessions(t *testing.T) {
	sm := NewSessionManager(store.NewMemoryStore(0), 4, 8)
	session := sm.Create(context.Background(), 2)
	session.lastActivity = time.Now().Add(-time.Hour)

	worker := NewCleanupWorker(sm, 10*time.Millisecond, time.Minute)
	worker.Start()
	defer worker.Stop()

	assert.Eventually(t, func() bool {
		return sm.Count() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestCleanupWorkerStopTerminates(t *testing.T) {
	sm := NewSessionManager(store.NewMemoryStore(0), 4, 8)
	worker := NewCleanupWorker(sm, 10*time.Millisecond, time.Minute)
	worker.Start()

	done := make(chan struct{})
	go func() {
		worker.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop in time")
	}
}
