package model

import "time"

// Role identifies which member collection an identity belongs to. Roles are
// disjoint: a student credential never authenticates against the teacher
// collection and vice versa.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// Student is a student membership record. Usernames are unique within a
// school and matched case-sensitively on login.
type Student struct {
	ID        string    `json:"id"`
	SchoolID  string    `json:"school_id"`
	ClassID   string    `json:"class_id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	RollNo    *string   `json:"roll_no,omitempty"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Teacher is a teacher membership record. Emails are matched after
// case-folding both sides.
type Teacher struct {
	ID        string    `json:"id"`
	SchoolID  string    `json:"school_id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Subjects  []string  `json:"subjects,omitempty"`
	ClassIDs  []string  `json:"class_ids,omitempty"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
