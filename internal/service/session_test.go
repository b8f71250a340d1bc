package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// memorySessionRepo is an in-memory SessionRepository keyed by token hash
type memorySessionRepo struct {
	sessions map[string]*model.Session
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[string]*model.Session)}
}

func (m *memorySessionRepo) Create(ctx context.Context, session *model.Session) error {
	stored := *session
	stored.ID = "session:" + session.TokenHash[:8]
	stored.CreatedOn = time.Now()
	m.sessions[session.TokenHash] = &stored
	session.ID = stored.ID
	return nil
}

func (m *memorySessionRepo) GetByTokenHash(ctx context.Context, hash string) (*model.Session, error) {
	if s, ok := m.sessions[hash]; ok {
		return s, nil
	}
	return nil, database.ErrNotFound
}

func (m *memorySessionRepo) Revoke(ctx context.Context, hash string) error {
	if s, ok := m.sessions[hash]; ok {
		now := time.Now()
		s.Revoked = true
		s.RevokedOn = &now
	}
	return nil
}

func (m *memorySessionRepo) PurgeRevoked(ctx context.Context, cutoff time.Time) error {
	for hash, s := range m.sessions {
		if s.Revoked && s.RevokedOn != nil && s.RevokedOn.Before(cutoff) {
			delete(m.sessions, hash)
		}
	}
	return nil
}

func testIdentity() model.SessionIdentity {
	return model.SessionIdentity{
		MemberID:   "student:ravi",
		Name:       "Ravi Kumar",
		Role:       model.RoleStudent,
		SchoolID:   "school:dps",
		SchoolCode: "DPS01",
		SchoolName: "Delhi Public School",
		ClassID:    "class:10a",
		Username:   "ravi",
	}
}

func TestSessionStore_WriteThenRead(t *testing.T) {
	t.Parallel()
	store := NewDatabaseSessionStore(newMemorySessionRepo())

	want := testIdentity()
	token, err := store.Write(context.Background(), want)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	got, err := store.Read(context.Background(), token)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("read identity = %+v, want %+v", *got, want)
	}
}

func TestSessionStore_TokensAreUnique(t *testing.T) {
	t.Parallel()
	store := NewDatabaseSessionStore(newMemorySessionRepo())

	t1, err := store.Write(context.Background(), testIdentity())
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	t2, err := store.Write(context.Background(), testIdentity())
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if t1 == t2 {
		t.Error("two logins produced the same token")
	}
}

func TestSessionStore_ReadUnknownToken(t *testing.T) {
	t.Parallel()
	store := NewDatabaseSessionStore(newMemorySessionRepo())

	_, err := store.Read(context.Background(), "not-a-real-token")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionStore_ReadEmptyToken(t *testing.T) {
	t.Parallel()
	store := NewDatabaseSessionStore(newMemorySessionRepo())

	_, err := store.Read(context.Background(), "")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionStore_ClearThenRead(t *testing.T) {
	t.Parallel()
	store := NewDatabaseSessionStore(newMemorySessionRepo())

	token, err := store.Write(context.Background(), testIdentity())
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := store.Clear(context.Background(), token); err != nil {
		t.Fatalf("clear: %v", err)
	}

	_, err = store.Read(context.Background(), token)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound after clear", err)
	}
}

func TestSessionStore_ClearUnknownTokenIsNoop(t *testing.T) {
	t.Parallel()
	store := NewDatabaseSessionStore(newMemorySessionRepo())

	if err := store.Clear(context.Background(), "never-issued"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSessionStore_CorruptIdentityReadsAsAbsent(t *testing.T) {
	t.Parallel()
	repo := newMemorySessionRepo()
	store := NewDatabaseSessionStore(repo)

	token, err := store.Write(context.Background(), testIdentity())
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	// Corrupt the stored identity behind the store's back.
	repo.sessions[hashToken(token)].Identity = model.SessionIdentity{Role: "???"}

	_, err = store.Read(context.Background(), token)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound for corrupt session", err)
	}
}

func TestSessionStore_WriteOverwritesNothing(t *testing.T) {
	t.Parallel()
	store := NewDatabaseSessionStore(newMemorySessionRepo())

	// Two concurrent logins for the same member both stay readable.
	t1, _ := store.Write(context.Background(), testIdentity())
	t2, _ := store.Write(context.Background(), testIdentity())

	if _, err := store.Read(context.Background(), t1); err != nil {
		t.Errorf("first session unreadable: %v", err)
	}
	if _, err := store.Read(context.Background(), t2); err != nil {
		t.Errorf("second session unreadable: %v", err)
	}
}
