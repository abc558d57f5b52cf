package model

import (
	"slices"
	"time"

	"guesthouse/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldRoomID        = "room_id"
	FieldGuestID       = "guest_id"
	FieldUserID        = "user_id"
	FieldCheckIn       = "check_in"
	FieldCheckOut      = "check_out"
	FieldNights        = "nights"
	FieldTotalAmount   = "total_amount"
	FieldStatus        = "status"
	FieldPaymentStatus = "payment_status"
	FieldAccessCode    = "access_code"
)

// Cache prefixes shared with the services that change bookings.
const (
	CacheKeyGet    = "booking:get"
	CacheKeyGetAll = "booking:gets"
)

const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusCheckedIn  = "checked_in"
	StatusCheckedOut = "checked_out"
	StatusCancelled  = "cancelled"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusConfirmed = "confirmed"
	PaymentStatusRefunded  = "refunded"
)

// ActiveStatuses hold the room for their date range and keep their access code reserved.
var ActiveStatuses = []string{StatusPending, StatusConfirmed, StatusCheckedIn}

type Booking struct {
	ID            string          `db:"id"`
	RoomID        string          `db:"room_id"`
	GuestID       *string         `db:"guest_id"`
	UserID        *string         `db:"user_id"`
	CheckIn       time.Time       `db:"check_in"`
	CheckOut      time.Time       `db:"check_out"`
	Nights        int             `db:"nights"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	Status        string          `db:"status"`
	PaymentStatus string          `db:"payment_status"`
	AccessCode    string          `db:"access_code"`
	model.Metadata
}

// front desk moves
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCheckedOut},
}

// CanTransition reports whether a booking in status from may move to status to.
func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

// Nights returns the number of whole days between check-in and check-out dates.
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)

	return int(out.Sub(in).Hours() / 24)
}

// Total is the price of a stay at the nightly price in effect when it was booked.
func Total(pricePerNight decimal.Decimal, nights int) decimal.Decimal {
	return pricePerNight.Mul(decimal.NewFromInt(int64(nights)))
}
