package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Confirmed is published after a payment confirmation has been committed.
type Confirmed struct {
	NotificationID string          `json:"notification_id"`
	BookingID      string          `json:"booking_id"`
	Amount         decimal.Decimal `json:"amount"`
	ConfirmedBy    string          `json:"confirmed_by"`
	ConfirmedAt    time.Time       `json:"confirmed_at"`
}
