package upstream

import (
	"context"
	"net/url"

	"github.com/vidyalink/console-api/internal/models"
)

// ListAttendance fetches every attendance record for a student at a school.
func (c *Client) ListAttendance(ctx context.Context, token, schoolCode, studentCode string) ([]models.AttendanceRecord, error) {
	query := url.Values{}
	query.Set("school_code", schoolCode)
	query.Set("student_code", studentCode)

	var records []models.AttendanceRecord
	if err := c.get(ctx, token, "/attendance/all", query, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SubmitAttendance posts one batch of per-student records for a single date.
// Uniqueness per (student, date) is an upstream concern; this is an upsert.
func (c *Client) SubmitAttendance(ctx context.Context, token string, records []models.AttendanceRecord) error {
	return c.post(ctx, token, "/attendance", records, nil)
}
