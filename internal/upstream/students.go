package upstream

import (
	"context"
	"net/url"

	"github.com/vidyalink/console-api/internal/models"
)

// StudentFilter narrows the student listing by school code and class.
type StudentFilter struct {
	SchoolCode string
	Class      string
}

// ListStudents fetches students, optionally filtered server-side.
func (c *Client) ListStudents(ctx context.Context, token string, filter StudentFilter) ([]models.Student, error) {
	query := url.Values{}
	if filter.SchoolCode != "" {
		query.Set("school_code", filter.SchoolCode)
	}
	if filter.Class != "" {
		query.Set("class", filter.Class)
	}

	var students []models.Student
	if err := c.get(ctx, token, "/students", query, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// GetStudent fetches one student by identifier.
func (c *Client) GetStudent(ctx context.Context, token, id string) (*models.Student, error) {
	var student models.Student
	if err := c.get(ctx, token, "/students/"+id, nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// CreateStudent creates a student document.
func (c *Client) CreateStudent(ctx context.Context, token string, student models.Student) (*models.Student, error) {
	var created models.Student
	if err := c.post(ctx, token, "/students", student, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStudent replaces the student document (whole-object PUT).
func (c *Client) UpdateStudent(ctx context.Context, token, id string, student models.Student) (*models.Student, error) {
	var updated models.Student
	if err := c.put(ctx, token, "/students/"+id, student, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteStudent removes a student.
func (c *Client) DeleteStudent(ctx context.Context, token, id string) error {
	return c.delete(ctx, token, "/students/"+id)
}
