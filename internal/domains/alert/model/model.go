package model

import (
	"time"

	"guesthouse/shared/model"
)

const (
	TableName  = "alerts"
	EntityName = "alert"

	FieldID             = "id"
	FieldType           = "type"
	FieldRoomID         = "room_id"
	FieldBookingID      = "booking_id"
	FieldMessage        = "message"
	FieldSeverity       = "severity"
	FieldAcknowledged   = "acknowledged"
	FieldAcknowledgedBy = "acknowledged_by"
	FieldAcknowledgedAt = "acknowledged_at"
)

const (
	TypeSecurity       = "security"
	TypeCheckoutDue    = "checkout_due"
	TypePaymentPending = "payment_pending"
	TypeCleaningNeeded = "cleaning_needed"
)

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

type Alert struct {
	ID             string     `db:"id"`
	Type           string     `db:"type"`
	RoomID         *string    `db:"room_id"`
	BookingID      *string    `db:"booking_id"`
	Message        string     `db:"message"`
	Severity       string     `db:"severity"`
	Acknowledged   bool       `db:"acknowledged"`
	AcknowledgedBy *string    `db:"acknowledged_by"`
	AcknowledgedAt *time.Time `db:"acknowledged_at"`
	model.Metadata
}
