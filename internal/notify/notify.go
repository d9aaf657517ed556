package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/livemart/livemart-backend/pkg/logger"
)

// Sender delivers out-of-band messages to users. The current implementation
// only logs; SMS and email providers plug in behind the same methods.
type Sender struct {
	log *logger.Logger
}

// NewSender constructs a log-backed sender.
func NewSender(log *logger.Logger) *Sender {
	return &Sender{log: log}
}

// SendOTP delivers a verification code to the given phone. It never fails.
func (s *Sender) SendOTP(ctx context.Context, phone, code string) error {
	ctx = s.log.WithFields(ctx, map[string]any{
		"phone": phone,
		"code":  code,
	})
	s.log.Info(ctx, "otp dispatched (mock)")
	return nil
}

// OrderPlaced notifies the buyer that their order went through.
func (s *Sender) OrderPlaced(ctx context.Context, userID, orderID uuid.UUID, total decimal.Decimal) error {
	ctx = s.log.WithFields(ctx, map[string]any{
		"user_id":  userID.String(),
		"order_id": orderID.String(),
		"total":    total.StringFixed(2),
	})
	s.log.Info(ctx, "order confirmation dispatched (mock)")
	return nil
}
