package model

import (
	"time"

	"guesthouse/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "payment_notifications"
	EntityName = "payment_notification"

	FieldID             = "id"
	FieldBookingID      = "booking_id"
	FieldGuestName      = "guest_name"
	FieldAmount         = "amount"
	FieldPhoneNumber    = "phone_number"
	FieldTransactionRef = "transaction_ref"
	FieldIsConfirmed    = "is_confirmed"
	FieldConfirmedBy    = "confirmed_by"
	FieldConfirmedAt    = "confirmed_at"
)

// Notification is a guest's claim that a booking was paid outside the system.
// It stays unconfirmed until staff have checked the money arrived.
type Notification struct {
	ID             string          `db:"id"`
	BookingID      string          `db:"booking_id"`
	GuestName      string          `db:"guest_name"`
	Amount         decimal.Decimal `db:"amount"`
	PhoneNumber    string          `db:"phone_number"`
	TransactionRef *string         `db:"transaction_ref"`
	IsConfirmed    bool            `db:"is_confirmed"`
	ConfirmedBy    *string         `db:"confirmed_by"`
	ConfirmedAt    *time.Time      `db:"confirmed_at"`
	model.Metadata
}

const (
	SettingsTableName  = "guest_house_settings"
	SettingsEntityName = "guest_house_settings"

	// SettingsID is the key of the single settings row.
	SettingsID = "default"

	FieldAccountNumber = "payment_account_number"
	FieldAccountName   = "payment_account_name"
	FieldProvider      = "payment_provider"
)

type Settings struct {
	ID            string `db:"id"`
	AccountNumber string `db:"payment_account_number"`
	AccountName   string `db:"payment_account_name"`
	Provider      string `db:"payment_provider"`
	model.Metadata
}

// Configured reports whether guests can be told where to send money.
func (s Settings) Configured() bool {
	return s.ID != "" && s.AccountNumber != ""
}
