package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/livemart/livemart-backend/pkg/enums"
	pkgerrors "github.com/livemart/livemart-backend/pkg/errors"
	"github.com/livemart/livemart-backend/pkg/logger"
)

// ChargeInput describes a payment attempt for one order.
type ChargeInput struct {
	UserID  uuid.UUID
	OrderID uuid.UUID
	Amount  decimal.Decimal
	Method  enums.PaymentMethod
}

// ChargeResult reports the settled payment.
type ChargeResult struct {
	TransactionID string
	Status        enums.PaymentStatus
}

// Processor settles order payments.
type Processor interface {
	Charge(ctx context.Context, input ChargeInput) (*ChargeResult, error)
}

// MockProcessor approves every charge and fabricates a transaction id.
// Decline, when set, rigs a failure; tests use it to exercise the
// payment-failed path. A real gateway slots in behind Processor.
type MockProcessor struct {
	log     *logger.Logger
	Decline func(input ChargeInput) bool
}

// NewMockProcessor constructs the log-only processor.
func NewMockProcessor(log *logger.Logger) *MockProcessor {
	return &MockProcessor{log: log}
}

func (p *MockProcessor) Charge(ctx context.Context, input ChargeInput) (*ChargeResult, error) {
	if !input.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if input.Amount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must not be negative")
	}

	if p.Decline != nil && p.Decline(input) {
		return nil, pkgerrors.New(pkgerrors.CodePaymentFailed, "payment declined")
	}

	result := &ChargeResult{
		TransactionID: uuid.NewString(),
		Status:        enums.PaymentStatusCompleted,
	}
	if p.log != nil {
		ctx = p.log.WithFields(ctx, map[string]any{
			"order_id":       input.OrderID.String(),
			"amount":         input.Amount.StringFixed(2),
			"method":         input.Method.String(),
			"transaction_id": result.TransactionID,
		})
		p.log.Info(ctx, "payment settled (mock)")
	}
	return result, nil
}
