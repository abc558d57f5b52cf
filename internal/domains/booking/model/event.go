package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Placed is published once guest, booking and payment notification are all stored.
type Placed struct {
	BookingID      string          `json:"booking_id"`
	RoomID         string          `json:"room_id"`
	RoomName       string          `json:"room_name"`
	GuestName      string          `json:"guest_name"`
	Phone          string          `json:"phone"`
	NotificationID string          `json:"notification_id"`
	CheckIn        time.Time       `json:"check_in"`
	CheckOut       time.Time       `json:"check_out"`
	Nights         int             `json:"nights"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PlacedAt       time.Time       `json:"placed_at"`
}
