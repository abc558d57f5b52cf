package dto

import (
	"fmt"
	"time"

	"guesthouse/internal/domains/alert/model"
	bookingModel "guesthouse/internal/domains/booking/model"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
)

// alertNamespace scopes the ids derived for event driven alerts.
var alertNamespace = uuid.MustParse("6f1c2a8e-4b1d-5c9a-9e37-2d8b0f4a7c11")

// PaymentPendingFromPlaced builds the alert raised when a booking awaits payment.
// The id is derived from the booking so a redelivered event maps to the same row.
func PaymentPendingFromPlaced(event bookingModel.Placed) model.Alert {
	now := timezone.Now()
	roomID := event.RoomID
	bookingID := event.BookingID

	return model.Alert{
		ID:        uuid.NewSHA1(alertNamespace, []byte(model.TypePaymentPending+":"+event.BookingID)).String(),
		Type:      model.TypePaymentPending,
		RoomID:    &roomID,
		BookingID: &bookingID,
		Message: fmt.Sprintf("%s booked %s for %d night(s) from %s, payment of %s awaits confirmation",
			event.GuestName, event.RoomName, event.Nights, event.CheckIn.Format(constant.DayFormat), event.TotalAmount.StringFixed(2)),
		Severity: model.SeverityMedium,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  constant.ContextGuest,
			ModifiedBy: constant.ContextGuest,
		},
	}
}

// AcknowledgeFields returns the columns written when staff acknowledge an alert.
func AcknowledgeFields(staffID, actor string, now time.Time) map[string]any {
	return map[string]any{
		model.FieldAcknowledged:   true,
		model.FieldAcknowledgedBy: staffID,
		model.FieldAcknowledgedAt: now,
		constant.FieldModifiedAt:  now,
		constant.FieldModifiedBy:  actor,
	}
}

type AlertResponse struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	RoomID         *string `json:"room_id,omitempty"`
	BookingID      *string `json:"booking_id,omitempty"`
	Message        string  `json:"message"`
	Severity       string  `json:"severity"`
	Acknowledged   bool    `json:"acknowledged"`
	AcknowledgedBy *string `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *string `json:"acknowledged_at,omitempty"`
	gDto.Metadata
}

func (r *AlertResponse) FromModel(model model.Alert) {
	r.ID = model.ID
	r.Type = model.Type
	r.RoomID = model.RoomID
	r.BookingID = model.BookingID
	r.Message = model.Message
	r.Severity = model.Severity
	r.Acknowledged = model.Acknowledged
	r.AcknowledgedBy = model.AcknowledgedBy
	r.Metadata.FromModel(model.Metadata)

	if model.AcknowledgedAt != nil {
		at := timezone.Format(*model.AcknowledgedAt, constant.DateFormat)
		r.AcknowledgedAt = &at
	}
}

type GetAlertsResponse struct {
	Alerts    []AlertResponse `json:"alerts"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetAlertsResponse) FromModels(models []model.Alert, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Alerts = make([]AlertResponse, len(models))
	for i, mod := range models {
		r.Alerts[i].FromModel(mod)
	}
}
