package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// SessionStore is the session slot abstraction handed to anything that needs
// the current identity. Write issues a fresh opaque token for an identity,
// Read resolves a token back to its identity, Clear revokes it. A corrupt or
// unknown token reads as absent, never as an error the caller must untangle.
type SessionStore interface {
	Write(ctx context.Context, identity model.SessionIdentity) (token string, err error)
	Read(ctx context.Context, token string) (*model.SessionIdentity, error)
	Clear(ctx context.Context, token string) error
}

// SessionRepository defines the interface for session storage
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByTokenHash(ctx context.Context, hash string) (*model.Session, error)
	Revoke(ctx context.Context, hash string) error
	PurgeRevoked(ctx context.Context, cutoff time.Time) error
}

// tokenBytes is the entropy of an issued session token (256 bits)
const tokenBytes = 32

// DatabaseSessionStore backs SessionStore with the session table. Only the
// SHA-256 hash of each token is persisted, so a database leak does not leak
// usable tokens.
type DatabaseSessionStore struct {
	repo SessionRepository
}

// NewDatabaseSessionStore creates a session store backed by the given repository
func NewDatabaseSessionStore(repo SessionRepository) *DatabaseSessionStore {
	return &DatabaseSessionStore{repo: repo}
}

// Write persists a session for the identity and returns the opaque token
func (s *DatabaseSessionStore) Write(ctx context.Context, identity model.SessionIdentity) (string, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	session := &model.Session{
		TokenHash: hashToken(token),
		Identity:  identity,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

// Read resolves a token to its identity. Unknown, revoked, or malformed
// tokens all surface as ErrSessionNotFound so callers treat them uniformly
// as "no session".
func (s *DatabaseSessionStore) Read(ctx context.Context, token string) (*model.SessionIdentity, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	session, err := s.repo.GetByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session == nil || session.Revoked {
		return nil, ErrSessionNotFound
	}
	if !session.Identity.Role.Valid() || session.Identity.MemberID == "" {
		// Stored identity is corrupt; treat the slot as empty.
		return nil, ErrSessionNotFound
	}

	identity := session.Identity
	return &identity, nil
}

// Clear revokes the session behind a token. Clearing an unknown token is a
// no-op, not an error.
func (s *DatabaseSessionStore) Clear(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repo.Revoke(ctx, hashToken(token))
}

// hashToken returns the hex SHA-256 of a session token
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
