package repository

import (
	"context"
	"time"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// SessionRepository handles server-side session records. Sessions are looked
// up by the SHA-256 hash of the bearer token; the raw token is never stored.
type SessionRepository struct {
	db database.Database
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db database.Database) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create stores a new session
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `
		CREATE session CONTENT {
			token_hash: $token_hash,
			identity: $identity,
			revoked: false,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"token_hash": session.TokenHash,
		"identity":   identityToMap(session.Identity),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}
	session.ID = created.ID
	session.CreatedOn = created.CreatedOn
	return nil
}

// GetByTokenHash retrieves a session by its token hash. Returns
// database.ErrNotFound for unknown hashes.
func (r *SessionRepository) GetByTokenHash(ctx context.Context, hash string) (*model.Session, error) {
	query := `SELECT * FROM session WHERE token_hash = $hash LIMIT 1`
	vars := map[string]interface{}{"hash": hash}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	data, ok := unwrapRow(result)
	if !ok {
		return nil, database.ErrNotFound
	}
	return parseSessionRow(data), nil
}

// Revoke marks a session as revoked
func (r *SessionRepository) Revoke(ctx context.Context, hash string) error {
	query := `UPDATE session SET revoked = true, revoked_on = time::now() WHERE token_hash = $hash`
	vars := map[string]interface{}{"hash": hash}

	return r.db.Execute(ctx, query, vars)
}

// RevokeAllForMember revokes every session held by a member
func (r *SessionRepository) RevokeAllForMember(ctx context.Context, memberID string) error {
	query := `UPDATE session SET revoked = true, revoked_on = time::now() WHERE identity.member_id = $member AND revoked = false`
	vars := map[string]interface{}{"member": memberID}

	return r.db.Execute(ctx, query, vars)
}

// PurgeRevoked deletes sessions that were revoked before the cutoff
func (r *SessionRepository) PurgeRevoked(ctx context.Context, cutoff time.Time) error {
	query := `DELETE session WHERE revoked = true AND revoked_on < <datetime>$cutoff`
	vars := map[string]interface{}{"cutoff": cutoff.Format(time.RFC3339)}

	return r.db.Execute(ctx, query, vars)
}

func parseSessionRow(data map[string]interface{}) *model.Session {
	session := &model.Session{
		ID:        getRecordID(data, "id"),
		TokenHash: getString(data, "token_hash"),
		Revoked:   getBool(data, "revoked"),
		CreatedOn: getTimeValue(data, "created_on"),
		RevokedOn: getTime(data, "revoked_on"),
	}

	if identity, ok := data["identity"].(map[string]interface{}); ok {
		session.Identity = model.SessionIdentity{
			MemberID:   getString(identity, "member_id"),
			Name:       getString(identity, "name"),
			Role:       model.Role(getString(identity, "role")),
			SchoolID:   getString(identity, "school_id"),
			SchoolCode: getString(identity, "school_code"),
			SchoolName: getString(identity, "school_name"),
			ClassID:    getString(identity, "class_id"),
			Username:   getString(identity, "username"),
			Email:      getString(identity, "email"),
			Subjects:   getStringSlice(identity, "subjects"),
		}
	}

	return session
}

func identityToMap(id model.SessionIdentity) map[string]interface{} {
	return map[string]interface{}{
		"member_id":   id.MemberID,
		"name":        id.Name,
		"role":        string(id.Role),
		"school_id":   id.SchoolID,
		"school_code": id.SchoolCode,
		"school_name": id.SchoolName,
		"class_id":    id.ClassID,
		"username":    id.Username,
		"email":       id.Email,
		"subjects":    id.Subjects,
	}
}
