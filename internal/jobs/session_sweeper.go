package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jattu8602/school-portal-web-sub001/internal/service"
)

// SessionSweeper periodically purges revoked sessions. Sessions never expire
// on their own, so without the sweeper the session table would grow with
// every logout.
type SessionSweeper struct {
	sessionRepo service.SessionRepository
	interval    time.Duration
	retention   time.Duration
	stopCh      chan struct{}
	wg          sync.WaitGroup
	running     bool
	mu          sync.Mutex
}

// NewSessionSweeper creates a new session sweeper job. Revoked sessions are
// kept for the retention window before deletion.
func NewSessionSweeper(sessionRepo service.SessionRepository, interval, retention time.Duration) *SessionSweeper {
	if interval == 0 {
		interval = time.Hour
	}
	if retention == 0 {
		retention = 7 * 24 * time.Hour
	}
	return &SessionSweeper{
		sessionRepo: sessionRepo,
		interval:    interval,
		retention:   retention,
		stopCh:      make(chan struct{}),
	}
}

// Start begins the sweeper loop
func (s *SessionSweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()
	slog.Info("session sweeper started",
		slog.Duration("interval", s.interval),
		slog.Duration("retention", s.retention),
	)
}

// Stop gracefully stops the sweeper and waits for an in-flight sweep
func (s *SessionSweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	slog.Info("session sweeper stopped")
}

func (s *SessionSweeper) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *SessionSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-s.retention)
	if err := s.sessionRepo.PurgeRevoked(ctx, cutoff); err != nil {
		slog.Error("session sweep failed", slog.Any("error", err))
		return
	}
	slog.Debug("session sweep complete", slog.Time("cutoff", cutoff))
}
