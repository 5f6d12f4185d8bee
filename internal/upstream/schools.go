package upstream

import (
	"context"

	"github.com/vidyalink/console-api/internal/models"
)

// ListSchools fetches the full school collection.
func (c *Client) ListSchools(ctx context.Context, token string) ([]models.School, error) {
	var schools []models.School
	if err := c.get(ctx, token, "/schools", nil, &schools); err != nil {
		return nil, err
	}
	return schools, nil
}

// GetSchool fetches one school by identifier or human-facing school code;
// the upstream route accepts either.
func (c *Client) GetSchool(ctx context.Context, token, idOrCode string) (*models.School, error) {
	var school models.School
	if err := c.get(ctx, token, "/schools/"+idOrCode, nil, &school); err != nil {
		return nil, err
	}
	return &school, nil
}

// CreateSchool creates a school document.
func (c *Client) CreateSchool(ctx context.Context, token string, school models.School) (*models.School, error) {
	var created models.School
	if err := c.post(ctx, token, "/schools", school, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateSchool replaces the school document (whole-object PUT).
func (c *Client) UpdateSchool(ctx context.Context, token, id string, school models.School) (*models.School, error) {
	var updated models.School
	if err := c.put(ctx, token, "/schools/"+id, school, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteSchool removes a school.
func (c *Client) DeleteSchool(ctx context.Context, token, id string) error {
	return c.delete(ctx, token, "/schools/"+id)
}
