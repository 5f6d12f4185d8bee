package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vidyalink/console-api/internal/models"
	"github.com/vidyalink/console-api/internal/upstream"
	"github.com/vidyalink/console-api/pkg/config"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type attendanceUpstream interface {
	ListAttendance(ctx context.Context, token, schoolCode, studentCode string) ([]models.AttendanceRecord, error)
	SubmitAttendance(ctx context.Context, token string, records []models.AttendanceRecord) error
	ListStudents(ctx context.Context, token string, filter upstream.StudentFilter) ([]models.Student, error)
}

// AttendanceService renders calendars and accepts batch marking.
type AttendanceService struct {
	upstream  attendanceUpstream
	holidays  map[string]bool
	weeklyOff map[time.Weekday]bool
	backdate  int
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service from the fixed
// calendar rules in config.
func NewAttendanceService(up attendanceUpstream, cfg config.AttendanceConfig, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	holidays := make(map[string]bool, len(cfg.Holidays))
	for _, h := range cfg.Holidays {
		holidays[h] = true
	}
	weeklyOff := make(map[time.Weekday]bool, len(cfg.WeeklyOffDays))
	for _, d := range cfg.WeeklyOffDays {
		weeklyOff[time.Weekday(d)] = true
	}
	backdate := cfg.BackdateWindow
	if backdate < 0 {
		backdate = 0
	}
	return &AttendanceService{
		upstream:  up,
		holidays:  holidays,
		weeklyOff: weeklyOff,
		backdate:  backdate,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// rangeFor derives the inclusive day range for a view anchored at a date.
func rangeFor(view models.CalendarView, anchor time.Time) (time.Time, time.Time) {
	anchor = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)
	if view == models.ViewWeekly {
		start := anchor.AddDate(0, 0, -int(anchor.Weekday()))
		return start, start.AddDate(0, 0, 6)
	}
	start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// resolveDay applies the display precedence for one day: an actual record
// wins over the holiday list, which wins over the weekly off set, which
// wins over the past-uncovered warning; future days stay neutral.
func (s *AttendanceService) resolveDay(day time.Time, record *models.AttendanceRecord, today time.Time) models.CalendarDay {
	out := models.CalendarDay{Date: day.Format(dateLayout)}

	if record != nil {
		out.Remarks = record.Remarks
		out.RecordedBy = record.RecordedBy
		switch record.Status {
		case models.AttendancePresent:
			out.Status, out.Color, out.Background = models.DayPresent, "green", "#eafbea"
			return out
		case models.AttendanceAbsent:
			out.Status, out.Color, out.Background = models.DayAbsent, "red", "#ffeaea"
			return out
		case models.AttendanceLeave:
			out.Status, out.Color, out.Background = models.DayLeave, "darkblue", "#f1f4fe"
			return out
		}
	}

	if s.holidays[out.Date] {
		out.Status, out.Color, out.Background = models.DayHoliday, "orange", "#fff9e6"
		return out
	}
	if s.weeklyOff[day.Weekday()] {
		out.Status, out.Color, out.Background = models.DayWeeklyOff, "purple", "#f9f0ff"
		return out
	}
	if day.Before(today) {
		out.Status, out.Color, out.Background = models.DayUnmarked, "red", "#fff1f1"
		return out
	}
	out.Status, out.Color, out.Background = models.DayUpcoming, "#eee", "#fafafa"
	return out
}

// Calendar renders every day in the view's closed range for one student.
func (s *AttendanceService) Calendar(ctx context.Context, sess *models.Session, schoolCode, studentCode string, view models.CalendarView, anchor string) ([]models.CalendarDay, error) {
	if schoolCode == "" || studentCode == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "school and student codes required")
	}
	if view != models.ViewWeekly && view != models.ViewMonthly {
		return nil, appErrors.Clone(appErrors.ErrValidation, "view must be weekly or monthly")
	}

	anchorDay := s.now().UTC()
	if anchor != "" {
		parsed, err := time.Parse(dateLayout, anchor)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DD")
		}
		anchorDay = parsed
	}

	records, err := s.upstream.ListAttendance(ctx, sess.Token, schoolCode, studentCode)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]models.AttendanceRecord, len(records))
	for _, rec := range records {
		// Upstream dates may carry a time component.
		key := rec.Date
		if len(key) > len(dateLayout) {
			key = key[:len(dateLayout)]
		}
		byDate[key] = rec
	}

	start, end := rangeFor(view, anchorDay)
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	days := make([]models.CalendarDay, 0, int(end.Sub(start).Hours()/24)+1)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		var record *models.AttendanceRecord
		if rec, ok := byDate[day.Format(dateLayout)]; ok {
			record = &rec
		}
		days = append(days, s.resolveDay(day, record, today))
	}
	return days, nil
}

// Roster loads the marking sheet for a school and class. Every student
// starts out Absent until toggled.
func (s *AttendanceService) Roster(ctx context.Context, sess *models.Session, schoolCode, class string) ([]models.RosterEntry, error) {
	if schoolCode == "" || class == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "school code and class required")
	}
	students, err := s.upstream.ListStudents(ctx, sess.Token, upstream.StudentFilter{SchoolCode: schoolCode, Class: class})
	if err != nil {
		return nil, err
	}
	roster := make([]models.RosterEntry, len(students))
	for i, st := range students {
		entry := models.RosterEntry{
			StudentID:   st.ID,
			StudentCode: st.StudentCode,
			Name:        st.Name,
			Status:      models.AttendanceAbsent,
		}
		if st.School != nil {
			entry.SchoolID = st.School.ID
		}
		roster[i] = entry
	}
	return roster, nil
}

// markableDate enforces the backdating window: only today and the configured
// number of preceding days are accepted.
func (s *AttendanceService) markableDate(raw string) (time.Time, error) {
	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DD")
	}
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	earliest := today.AddDate(0, 0, -s.backdate)
	if day.After(today) || day.Before(earliest) {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date outside the allowed marking window")
	}
	return day, nil
}

// Mark validates and submits one batch of per-student records for a date.
func (s *AttendanceService) Mark(ctx context.Context, sess *models.Session, req models.MarkRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	day, err := s.markableDate(req.Date)
	if err != nil {
		return 0, err
	}
	if len(req.Entries) == 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "no roster entries")
	}

	records := make([]models.AttendanceRecord, len(req.Entries))
	for i, entry := range req.Entries {
		if !entry.Status.Valid() {
			return 0, appErrors.Clone(appErrors.ErrValidation, "unknown attendance status")
		}
		records[i] = models.AttendanceRecord{
			SchoolID:   entry.SchoolID,
			StudentID:  entry.StudentID,
			Date:       day.Format(dateLayout),
			Status:     entry.Status,
			Remarks:    entry.Remarks,
			RecordedBy: string(sess.Role),
		}
	}
	if err := s.upstream.SubmitAttendance(ctx, sess.Token, records); err != nil {
		return 0, err
	}
	s.logger.Info("attendance submitted",
		zap.String("date", day.Format(dateLayout)),
		zap.Int("records", len(records)),
	)
	return len(records), nil
}
