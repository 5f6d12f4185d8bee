package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vidyalink/console-api/internal/models"
	"github.com/vidyalink/console-api/pkg/config"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
	"github.com/vidyalink/console-api/pkg/export"
)

type paymentUpstream interface {
	ListPayments(ctx context.Context, token, studentID string) ([]models.Payment, error)
	SubmitPayment(ctx context.Context, token string, req models.PaymentRequest) error
}

// PaymentService covers payment history, submission and receipt rendering.
type PaymentService struct {
	upstream  paymentUpstream
	invoices  *export.InvoiceRenderer
	cfg       config.InvoiceConfig
	payments  config.PaymentsConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService constructs the payment service.
func NewPaymentService(up paymentUpstream, invoiceCfg config.InvoiceConfig, paymentsCfg config.PaymentsConfig, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		upstream:  up,
		invoices:  export.NewInvoiceRenderer(),
		cfg:       invoiceCfg,
		payments:  paymentsCfg,
		validator: validate,
		logger:    logger,
	}
}

// ownHistoryOnly rejects a student session reaching for another student's
// payments. Other roles pass; their scoping happens at the route level.
func ownHistoryOnly(sess *models.Session, studentID string) error {
	if sess.Role == models.RoleStudent && studentID != sess.SubjectID {
		return appErrors.Clone(appErrors.ErrForbidden, "")
	}
	return nil
}

// History returns a student's payments, optionally narrowed to one academic
// year. The year filter applies here; upstream has no such parameter.
func (s *PaymentService) History(ctx context.Context, sess *models.Session, studentID, academicYear string) ([]models.Payment, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id required")
	}
	if err := ownHistoryOnly(sess, studentID); err != nil {
		return nil, err
	}
	payments, err := s.upstream.ListPayments(ctx, sess.Token, studentID)
	if err != nil {
		return nil, err
	}
	if academicYear == "" {
		return payments, nil
	}
	filtered := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if p.AcademicYear == academicYear {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Pay records a payment upstream.
func (s *PaymentService) Pay(ctx context.Context, sess *models.Session, req models.PaymentRequest) error {
	if !s.payments.Enabled {
		return appErrors.Clone(appErrors.ErrForbidden, "payments are disabled")
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	if err := s.upstream.SubmitPayment(ctx, sess.Token, req); err != nil {
		return err
	}
	s.logger.Info("payment recorded",
		zap.String("student_id", req.StudentID),
		zap.Float64("amount", req.AmountPaid),
		zap.String("mode", req.Mode),
	)
	return nil
}

// Invoice renders the receipt PDF for one payment in a student's history.
func (s *PaymentService) Invoice(ctx context.Context, sess *models.Session, studentID, paymentID string) ([]byte, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invoices are disabled")
	}
	if paymentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "payment id required")
	}
	if err := ownHistoryOnly(sess, studentID); err != nil {
		return nil, err
	}
	payments, err := s.upstream.ListPayments(ctx, sess.Token, studentID)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if p.ID != paymentID {
			continue
		}
		inv := export.Invoice{
			AcademicYear:     p.AcademicYear,
			PaymentDate:      p.PaymentDate,
			Mode:             p.Mode,
			Remarks:          p.Remarks,
			AmountPaid:       p.AmountPaid,
			RemainingBalance: p.RemainingBalance,
			CurrencyUnit:     s.cfg.CurrencyUnit,
			GeneratedAt:      time.Now().UTC(),
		}
		if p.School != nil {
			inv.SchoolName = p.School.SchoolName
			inv.SchoolAddress = p.School.Location.VillageTown + ", " + p.School.Location.District
			inv.SchoolPhone = p.School.Headmaster.Mobile
			inv.SchoolEmail = p.School.Headmaster.Email
		}
		if p.Student != nil {
			inv.StudentName = p.Student.Name
			inv.StudentCode = p.Student.StudentCode
			inv.Class = p.Student.Class
			inv.Section = p.Student.Section
			inv.FatherName = p.Student.FatherName
			inv.StudentPhone = p.Student.Contact.Phone
		}
		return s.invoices.Render(inv)
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
}
