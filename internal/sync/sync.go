package sync

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alfredjeanlab/issueboard/internal/store"
)

// Destination is the interface for an export target (S3, git, etc.).
type Destination interface {
	// Name identifies the destination in logs.
	Name() string
	// Write sends the JSONL payload to the destination.
	Write(ctx context.Context, data []byte) error
}

// Scheduler runs periodic exports to one or more destinations.
type Scheduler struct {
	store        store.Store
	destinations []Destination
	interval     time.Duration
	logger       *slog.Logger

	mu       sync.Mutex
	lastSync time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler that exports from the store to the given
// destinations at the specified interval.
func NewScheduler(s store.Store, destinations []Destination, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		store:        s,
		destinations: destinations,
		interval:     interval,
		logger:       logger,
	}
}

// Start begins periodic export. It runs an initial export immediately,
// then on each tick.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop cancels the scheduler and waits for the current export (if any) to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// LastSync returns when every destination last accepted an export.
// The zero time means no fully successful run yet.
func (s *Scheduler) LastSync() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSync
}

func (s *Scheduler) run(ctx context.Context) {
	s.SyncOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SyncOnce(ctx)
		}
	}
}

// SyncOnce exports the store and writes the payload to every destination.
// Failures are logged; one failing destination does not stop the others.
func (s *Scheduler) SyncOnce(ctx context.Context) {
	var buf bytes.Buffer
	if err := ExportJSONL(ctx, s.store, &buf); err != nil {
		s.logger.Error("sync export failed", "err", err)
		return
	}
	data := buf.Bytes()

	failed := 0
	for _, dest := range s.destinations {
		if err := dest.Write(ctx, data); err != nil {
			failed++
			s.logger.Error("sync destination write failed", "destination", dest.Name(), "err", err)
		}
	}
	if failed == 0 {
		s.mu.Lock()
		s.lastSync = time.Now()
		s.mu.Unlock()
	}

	s.logger.Info("sync completed", "destinations", len(s.destinations), "failed", failed, "bytes", len(data))
}
