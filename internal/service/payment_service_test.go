package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vidyalink/console-api/internal/models"
	"github.com/vidyalink/console-api/pkg/config"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
)

type paymentUpstreamStub struct {
	payments  []models.Payment
	listErr   error
	submitted []models.PaymentRequest
	submitErr error
}

func (s *paymentUpstreamStub) ListPayments(ctx context.Context, token, studentID string) ([]models.Payment, error) {
	return s.payments, s.listErr
}

func (s *paymentUpstreamStub) SubmitPayment(ctx context.Context, token string, req models.PaymentRequest) error {
	s.submitted = append(s.submitted, req)
	return s.submitErr
}

func newTestPaymentService(up *paymentUpstreamStub) *PaymentService {
	return NewPaymentService(up,
		config.InvoiceConfig{Enabled: true, CurrencyUnit: "INR"},
		config.PaymentsConfig{Enabled: true},
		nil, zap.NewNop())
}

func TestHistoryFiltersByAcademicYear(t *testing.T) {
	up := &paymentUpstreamStub{payments: []models.Payment{
		{ID: "pay-1", AcademicYear: "2024-25", AmountPaid: 500},
		{ID: "pay-2", AcademicYear: "2023-24", AmountPaid: 300},
		{ID: "pay-3", AcademicYear: "2024-25", AmountPaid: 200},
	}}
	svc := newTestPaymentService(up)

	filtered, err := svc.History(context.Background(), testSession(models.RoleSchool), "stu-1", "2024-25")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "pay-1", filtered[0].ID)
	assert.Equal(t, "pay-3", filtered[1].ID)

	all, err := svc.History(context.Background(), testSession(models.RoleSchool), "stu-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestHistoryPinsStudentSessionToOwnRecord(t *testing.T) {
	up := &paymentUpstreamStub{payments: []models.Payment{{ID: "pay-1", AmountPaid: 500}}}
	svc := newTestPaymentService(up)
	sess := testSession(models.RoleStudent)

	_, err := svc.History(context.Background(), sess, "stu-other", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	own, err := svc.History(context.Background(), sess, sess.SubjectID, "")
	require.NoError(t, err)
	assert.Len(t, own, 1)

	_, err = svc.Invoice(context.Background(), sess, "stu-other", "pay-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestPayForwardsRequest(t *testing.T) {
	up := &paymentUpstreamStub{}
	svc := newTestPaymentService(up)

	req := models.PaymentRequest{StudentID: "stu-1", AmountPaid: 1500, Mode: "UPI", Remarks: "term 1"}
	require.NoError(t, svc.Pay(context.Background(), testSession(models.RoleSchool), req))
	require.Len(t, up.submitted, 1)
	assert.Equal(t, req, up.submitted[0])
}

func TestPayValidatesAmount(t *testing.T) {
	svc := newTestPaymentService(&paymentUpstreamStub{})
	err := svc.Pay(context.Background(), testSession(models.RoleSchool), models.PaymentRequest{StudentID: "stu-1", Mode: "Cash"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPayDisabled(t *testing.T) {
	svc := NewPaymentService(&paymentUpstreamStub{},
		config.InvoiceConfig{Enabled: true},
		config.PaymentsConfig{Enabled: false},
		nil, zap.NewNop())
	err := svc.Pay(context.Background(), testSession(models.RoleAdmin), models.PaymentRequest{StudentID: "s", AmountPaid: 1, Mode: "Cash"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestInvoiceRendersSelectedPayment(t *testing.T) {
	up := &paymentUpstreamStub{payments: []models.Payment{
		{
			ID:           "pay-1",
			AcademicYear: "2024-25",
			AmountPaid:   500,
			Mode:         "Cash",
			PaymentDate:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			School: &models.School{
				SchoolName: "Govt High School",
				Location:   models.SchoolLocation{VillageTown: "Rampur", District: "Sitapur"},
			},
			Student: &models.Student{
				Name:        "Asha",
				StudentCode: "STU001",
				Class:       "5",
			},
			RemainingBalance: 2500,
		},
	}}
	svc := newTestPaymentService(up)

	payload, err := svc.Invoice(context.Background(), testSession(models.RoleSchool), "stu-1", "pay-1")
	require.NoError(t, err)
	assert.NotEmpty(t, payload)
	assert.Equal(t, "%PDF", string(payload[:4]))
}

func TestInvoiceUnknownPayment(t *testing.T) {
	svc := newTestPaymentService(&paymentUpstreamStub{})
	_, err := svc.Invoice(context.Background(), testSession(models.RoleSchool), "stu-1", "pay-404")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
