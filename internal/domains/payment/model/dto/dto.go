package dto

import (
	"time"

	"guesthouse/internal/domains/payment/model"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/shopspring/decimal"
)

type ConfirmPaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}

type NotificationResponse struct {
	ID             string          `json:"id"`
	BookingID      string          `json:"booking_id"`
	GuestName      string          `json:"guest_name"`
	Amount         decimal.Decimal `json:"amount"`
	PhoneNumber    string          `json:"phone_number"`
	TransactionRef *string         `json:"transaction_ref,omitempty"`
	IsConfirmed    bool            `json:"is_confirmed"`
	ConfirmedBy    *string         `json:"confirmed_by,omitempty"`
	ConfirmedAt    *string         `json:"confirmed_at,omitempty"`
	gDto.Metadata
}

func (r *NotificationResponse) FromModel(model model.Notification) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.GuestName = model.GuestName
	r.Amount = model.Amount
	r.PhoneNumber = model.PhoneNumber
	r.TransactionRef = model.TransactionRef
	r.IsConfirmed = model.IsConfirmed
	r.ConfirmedBy = model.ConfirmedBy
	r.ConfirmedAt = nil

	if model.ConfirmedAt != nil {
		confirmedAt := timezone.Format(*model.ConfirmedAt, constant.DateFormat)
		r.ConfirmedAt = &confirmedAt
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetNotificationsResponse) FromModels(models []model.Notification, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Notifications = make([]NotificationResponse, len(models))
	for i, mod := range models {
		r.Notifications[i].FromModel(mod)
	}
}

// ConfirmFields are the column updates recording who confirmed a notification.
func ConfirmFields(staffID, actor string, at time.Time) map[string]any {
	return map[string]any{
		model.FieldIsConfirmed:   true,
		model.FieldConfirmedBy:   staffID,
		model.FieldConfirmedAt:   at,
		constant.FieldModifiedAt: at,
		constant.FieldModifiedBy: actor,
	}
}

type UpsertSettingsRequest struct {
	AccountNumber string `json:"payment_account_number" validate:"required,max=50"`
	AccountName   string `json:"payment_account_name"   validate:"omitempty,max=100"`
	Provider      string `json:"payment_provider"       validate:"omitempty,max=100"`
}

func (u *UpsertSettingsRequest) ToModel(actor string) model.Settings {
	now := timezone.Now()

	return model.Settings{
		ID:            model.SettingsID,
		AccountNumber: u.AccountNumber,
		AccountName:   u.AccountName,
		Provider:      u.Provider,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

func (u *UpsertSettingsRequest) Fields(actor string) map[string]any {
	return map[string]any{
		model.FieldAccountNumber: u.AccountNumber,
		model.FieldAccountName:   u.AccountName,
		model.FieldProvider:      u.Provider,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}
}

type SettingsResponse struct {
	AccountNumber string `json:"payment_account_number"`
	AccountName   string `json:"payment_account_name"`
	Provider      string `json:"payment_provider"`
	Configured    bool   `json:"configured"`
}

func (r *SettingsResponse) FromModel(model model.Settings) {
	r.AccountNumber = model.AccountNumber
	r.AccountName = model.AccountName
	r.Provider = model.Provider
	r.Configured = model.Configured()
}
