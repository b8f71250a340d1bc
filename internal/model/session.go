package model

import "time"

// SessionIdentity is the authenticated-member snapshot stored against a
// session. It is built once at login and treated as immutable for the
// session's lifetime; member edits take effect on the next login.
type SessionIdentity struct {
	MemberID   string   `json:"member_id"`
	Name       string   `json:"name"`
	Role       Role     `json:"role"`
	SchoolID   string   `json:"school_id"`
	SchoolCode string   `json:"school_code"`
	SchoolName string   `json:"school_name"`
	ClassID    string   `json:"class_id,omitempty"` // students only
	Username   string   `json:"username,omitempty"` // students only
	Email      string   `json:"email,omitempty"`    // teachers only
	Subjects   []string `json:"subjects,omitempty"` // teachers only
}

// Session is the server-side record backing an opaque bearer token. Only the
// SHA-256 hash of the token is persisted. Sessions do not expire; logout
// marks them revoked and a background sweeper purges old revoked rows.
type Session struct {
	ID        string          `json:"id"`
	TokenHash string          `json:"-"`
	Identity  SessionIdentity `json:"identity"`
	CreatedOn time.Time       `json:"created_on"`
	Revoked   bool            `json:"revoked"`
	RevokedOn *time.Time      `json:"revoked_on,omitempty"`
}
