package service

import (
	"context"

	"github.com/vidyalink/console-api/internal/models"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
)

// Scope is the data boundary derived from a session: Admin sees everything,
// school-bound roles see exactly one school.
type Scope struct {
	Role       models.Role
	SubjectID  string
	SchoolID   string
	SchoolCode string
}

// All reports whether the scope spans every school.
func (s Scope) All() bool {
	return s.Role == models.RoleAdmin
}

type scopeUpstream interface {
	GetSchool(ctx context.Context, token, idOrCode string) (*models.School, error)
	GetTeacher(ctx context.Context, token, id string) (*models.Teacher, error)
	GetStudent(ctx context.Context, token, id string) (*models.Student, error)
}

// ScopeResolver turns a session into a Scope by looking up the actor's own
// record when the role is school-bound.
type ScopeResolver struct {
	upstream scopeUpstream
}

// NewScopeResolver constructs a ScopeResolver.
func NewScopeResolver(up scopeUpstream) *ScopeResolver {
	return &ScopeResolver{upstream: up}
}

// Profile is the header-block identity of the signed-in actor: the session
// scalars plus the actor's own entity resolved by role.
type Profile struct {
	Role       models.Role `json:"role"`
	SubjectID  string      `json:"subject_id"`
	Name       string      `json:"name,omitempty"`
	SchoolCode string      `json:"school_code,omitempty"`
	Entity     interface{} `json:"entity,omitempty"`
}

// Profile resolves the actor's own record. Admin carries no entity.
func (r *ScopeResolver) Profile(ctx context.Context, sess *models.Session) (*Profile, error) {
	profile := &Profile{Role: sess.Role, SubjectID: sess.SubjectID}
	switch sess.Role {
	case models.RoleAdmin:
		return profile, nil
	case models.RoleSchool:
		school, err := r.upstream.GetSchool(ctx, sess.Token, sess.SubjectID)
		if err != nil {
			return nil, err
		}
		profile.Name = school.SchoolName
		profile.SchoolCode = school.SchoolCode
		profile.Entity = school
		return profile, nil
	case models.RoleTeacher:
		teacher, err := r.upstream.GetTeacher(ctx, sess.Token, sess.SubjectID)
		if err != nil {
			return nil, err
		}
		teacher.Password = ""
		profile.Name = teacher.Name
		if teacher.School != nil {
			profile.SchoolCode = teacher.School.SchoolCode
		}
		profile.Entity = teacher
		return profile, nil
	case models.RoleStudent:
		student, err := r.upstream.GetStudent(ctx, sess.Token, sess.SubjectID)
		if err != nil {
			return nil, err
		}
		student.Password = ""
		profile.Name = student.Name
		if student.School != nil {
			profile.SchoolCode = student.School.SchoolCode
		}
		profile.Entity = student
		return profile, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrForbidden, "unknown role")
	}
}

// Resolve derives the scope for a session. Admin resolves without any
// upstream call.
func (r *ScopeResolver) Resolve(ctx context.Context, sess *models.Session) (Scope, error) {
	scope := Scope{Role: sess.Role, SubjectID: sess.SubjectID}
	switch sess.Role {
	case models.RoleAdmin:
		return scope, nil
	case models.RoleSchool:
		school, err := r.upstream.GetSchool(ctx, sess.Token, sess.SubjectID)
		if err != nil {
			return scope, err
		}
		scope.SchoolID = school.ID
		scope.SchoolCode = school.SchoolCode
		return scope, nil
	case models.RoleTeacher:
		teacher, err := r.upstream.GetTeacher(ctx, sess.Token, sess.SubjectID)
		if err != nil {
			return scope, err
		}
		if teacher.School != nil {
			scope.SchoolID = teacher.School.ID
			scope.SchoolCode = teacher.School.SchoolCode
		}
		return scope, nil
	case models.RoleStudent:
		student, err := r.upstream.GetStudent(ctx, sess.Token, sess.SubjectID)
		if err != nil {
			return scope, err
		}
		if student.School != nil {
			scope.SchoolID = student.School.ID
			scope.SchoolCode = student.School.SchoolCode
		}
		return scope, nil
	default:
		return scope, appErrors.Clone(appErrors.ErrForbidden, "unknown role")
	}
}
