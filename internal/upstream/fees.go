package upstream

import (
	"context"

	"github.com/vidyalink/console-api/internal/models"
)

// ListFeeStructures fetches the full fee-structure collection.
func (c *Client) ListFeeStructures(ctx context.Context, token string) ([]models.FeeStructure, error) {
	var structures []models.FeeStructure
	if err := c.get(ctx, token, "/fee/fee-structure", nil, &structures); err != nil {
		return nil, err
	}
	return structures, nil
}

// GetFeeStructure fetches one fee structure by identifier.
func (c *Client) GetFeeStructure(ctx context.Context, token, id string) (*models.FeeStructure, error) {
	var structure models.FeeStructure
	if err := c.get(ctx, token, "/fee/fee-structure/"+id, nil, &structure); err != nil {
		return nil, err
	}
	return &structure, nil
}

// CreateFeeStructure creates a fee-structure document.
func (c *Client) CreateFeeStructure(ctx context.Context, token string, structure models.FeeStructure) (*models.FeeStructure, error) {
	var created models.FeeStructure
	if err := c.post(ctx, token, "/fee/fee-structure", structure, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateFeeStructure replaces the fee-structure document (whole-object PUT).
func (c *Client) UpdateFeeStructure(ctx context.Context, token, id string, structure models.FeeStructure) (*models.FeeStructure, error) {
	var updated models.FeeStructure
	if err := c.put(ctx, token, "/fee/fee-structure/"+id, structure, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteFeeStructure removes a fee structure.
func (c *Client) DeleteFeeStructure(ctx context.Context, token, id string) error {
	return c.delete(ctx, token, "/fee/fee-structure/"+id)
}

// ListPayments fetches a student's payment history.
func (c *Client) ListPayments(ctx context.Context, token, studentID string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := c.get(ctx, token, "/fee/payments/"+studentID, nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// SubmitPayment records a payment upstream.
func (c *Client) SubmitPayment(ctx context.Context, token string, req models.PaymentRequest) error {
	return c.post(ctx, token, "/fee/pay", req, nil)
}
