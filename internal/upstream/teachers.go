package upstream

import (
	"context"

	"github.com/vidyalink/console-api/internal/models"
)

// ListTeachers fetches the full teacher collection.
func (c *Client) ListTeachers(ctx context.Context, token string) ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := c.get(ctx, token, "/teachers", nil, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

// GetTeacher fetches one teacher by identifier.
func (c *Client) GetTeacher(ctx context.Context, token, id string) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := c.get(ctx, token, "/teachers/"+id, nil, &teacher); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// CreateTeacher creates a teacher document.
func (c *Client) CreateTeacher(ctx context.Context, token string, teacher models.Teacher) (*models.Teacher, error) {
	var created models.Teacher
	if err := c.post(ctx, token, "/teachers", teacher, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTeacher replaces the teacher document (whole-object PUT).
func (c *Client) UpdateTeacher(ctx context.Context, token, id string, teacher models.Teacher) (*models.Teacher, error) {
	var updated models.Teacher
	if err := c.put(ctx, token, "/teachers/"+id, teacher, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTeacher removes a teacher.
func (c *Client) DeleteTeacher(ctx context.Context, token, id string) error {
	return c.delete(ctx, token, "/teachers/"+id)
}
