package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

type mockSessionRepo struct {
	mu      sync.Mutex
	purges  int
	cutoffs []time.Time
}

func (m *mockSessionRepo) Create(ctx context.Context, session *model.Session) error { return nil }

func (m *mockSessionRepo) GetByTokenHash(ctx context.Context, hash string) (*model.Session, error) {
	return nil, nil
}

func (m *mockSessionRepo) Revoke(ctx context.Context, hash string) error { return nil }

func (m *mockSessionRepo) PurgeRevoked(ctx context.Context, cutoff time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purges++
	m.cutoffs = append(m.cutoffs, cutoff)
	return nil
}

func (m *mockSessionRepo) purgeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.purges
}

func TestSessionSweeper_Sweeps(t *testing.T) {
	repo := &mockSessionRepo{}
	sweeper := NewSessionSweeper(repo, 10*time.Millisecond, time.Hour)

	sweeper.Start()
	time.Sleep(50 * time.Millisecond)
	sweeper.Stop()

	if repo.purgeCount() == 0 {
		t.Error("expected at least one sweep")
	}
}

func TestSessionSweeper_CutoffRespectsRetention(t *testing.T) {
	repo := &mockSessionRepo{}
	retention := 2 * time.Hour
	sweeper := NewSessionSweeper(repo, 10*time.Millisecond, retention)

	sweeper.Start()
	time.Sleep(30 * time.Millisecond)
	sweeper.Stop()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	if len(repo.cutoffs) == 0 {
		t.Fatal("no sweeps recorded")
	}
	want := time.Now().Add(-retention)
	got := repo.cutoffs[0]
	if got.After(want.Add(time.Minute)) || got.Before(want.Add(-time.Minute)) {
		t.Errorf("cutoff = %v, want about %v", got, want)
	}
}

func TestSessionSweeper_StopIsIdempotent(t *testing.T) {
	sweeper := NewSessionSweeper(&mockSessionRepo{}, time.Hour, time.Hour)

	sweeper.Start()
	sweeper.Stop()
	sweeper.Stop()
}

func TestSessionSweeper_StartIsIdempotent(t *testing.T) {
	repo := &mockSessionRepo{}
	sweeper := NewSessionSweeper(repo, time.Hour, time.Hour)

	sweeper.Start()
	sweeper.Start()
	sweeper.Stop()
}
