package models

import "time"

// Role determines visible navigation and default data scoping.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleSchool  Role = "School"
	RoleTeacher Role = "Teacher"
	RoleStudent Role = "Student"
)

// Valid returns true when the role is a supported value.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSchool, RoleTeacher, RoleStudent:
		return true
	default:
		return false
	}
}

// SchoolScoped reports whether the role is tied to exactly one school.
func (r Role) SchoolScoped() bool {
	return r == RoleSchool || r == RoleTeacher || r == RoleStudent
}

// Session is the process-wide authenticated state: the upstream bearer token,
// the actor's role and the actor's own record identifier. Exactly these three
// scalars persist between requests.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"-"`
	Role      Role      `json:"role"`
	SubjectID string    `json:"subject_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest holds credentials forwarded to the upstream platform.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required"`
}

// LoginResponse returns the established console session and the menu the
// client should render for the role.
type LoginResponse struct {
	SessionID string      `json:"session_id"`
	Role      Role        `json:"role"`
	SubjectID string      `json:"subject_id"`
	Menu      interface{} `json:"menu"`
}
