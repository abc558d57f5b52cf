package dto

import (
	"time"

	"guesthouse/internal/domains/booking/model"
	guestDto "guesthouse/internal/domains/guest/model/dto"
	paymentModel "guesthouse/internal/domains/payment/model"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PlaceBookingRequest struct {
	RoomID string `json:"room_id"  validate:"required,uuid"`
	Nights int    `json:"nights"   validate:"required,gt=0"`
	// CheckIn is a date (YYYY-MM-DD) in the guest house time zone; today when empty.
	CheckIn        string                `json:"check_in"        validate:"omitempty,datetime=2006-01-02"`
	Guest          guestDto.GuestDetails `json:"guest"           validate:"required"`
	PaymentPhone   string                `json:"payment_phone"   validate:"omitempty,max=30"`
	TransactionRef string                `json:"transaction_ref" validate:"omitempty,max=100"`
}

// Stay returns the check-in and check-out instants of the request.
func (p *PlaceBookingRequest) Stay() (checkIn, checkOut time.Time, err error) {
	today := timezone.StartOfDay(timezone.Now())

	checkIn = today
	if p.CheckIn != "" {
		checkIn, err = timezone.Parse(constant.DayFormat, p.CheckIn)
		if err != nil {
			return checkIn, checkOut, err //nolint:wrapcheck
		}

		checkIn = timezone.StartOfDay(checkIn)
	}

	return checkIn, checkIn.AddDate(0, 0, p.Nights), nil
}

// ToModel builds a pending booking for the stay at the given nightly price.
func (p *PlaceBookingRequest) ToModel(guestID, userID, accessCode, actor string, pricePerNight decimal.Decimal, checkIn, checkOut time.Time) model.Booking {
	now := timezone.Now()

	booking := model.Booking{
		ID:            uuid.NewString(),
		RoomID:        p.RoomID,
		GuestID:       &guestID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Nights:        p.Nights,
		TotalAmount:   model.Total(pricePerNight, p.Nights),
		Status:        model.StatusPending,
		PaymentStatus: model.PaymentStatusPending,
		AccessCode:    accessCode,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}

	if userID != "" {
		booking.UserID = &userID
	}

	return booking
}

// ToNotification builds the payment claim attached to booking.
func (p *PlaceBookingRequest) ToNotification(booking model.Booking, actor string) paymentModel.Notification {
	now := timezone.Now()

	phone := p.PaymentPhone
	if phone == "" {
		phone = p.Guest.Phone
	}

	var ref *string
	if p.TransactionRef != "" {
		ref = &p.TransactionRef
	}

	return paymentModel.Notification{
		ID:             uuid.NewString(),
		BookingID:      booking.ID,
		GuestName:      p.Guest.FirstName + " " + p.Guest.LastName,
		Amount:         booking.TotalAmount,
		PhoneNumber:    phone,
		TransactionRef: ref,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type PaymentInstructions struct {
	Provider      string          `json:"provider"`
	AccountNumber string          `json:"account_number"`
	AccountName   string          `json:"account_name"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Reference     string          `json:"reference"`
}

type PlaceBookingResponse struct {
	BookingID           string               `json:"booking_id"`
	AccessCode          string               `json:"access_code"`
	NotificationID      string               `json:"notification_id"`
	CheckIn             string               `json:"check_in"`
	CheckOut            string               `json:"check_out"`
	Nights              int                  `json:"nights"`
	TotalAmount         decimal.Decimal      `json:"total_amount"`
	Currency            string               `json:"currency"`
	Status              string               `json:"status"`
	PaymentStatus       string               `json:"payment_status"`
	PaymentInstructions *PaymentInstructions `json:"payment_instructions,omitempty"`
}

func (r *PlaceBookingResponse) FromModel(booking model.Booking, notificationID, currency string) {
	r.BookingID = booking.ID
	r.AccessCode = booking.AccessCode
	r.NotificationID = notificationID
	r.CheckIn = timezone.Format(booking.CheckIn, constant.DayFormat)
	r.CheckOut = timezone.Format(booking.CheckOut, constant.DayFormat)
	r.Nights = booking.Nights
	r.TotalAmount = booking.TotalAmount
	r.Currency = currency
	r.Status = booking.Status
	r.PaymentStatus = booking.PaymentStatus
}

func (r *PlaceBookingResponse) WithInstructions(settings paymentModel.Settings) {
	if !settings.Configured() {
		return
	}

	r.PaymentInstructions = &PaymentInstructions{
		Provider:      settings.Provider,
		AccountNumber: settings.AccountNumber,
		AccountName:   settings.AccountName,
		Amount:        r.TotalAmount,
		Currency:      r.Currency,
		Reference:     r.AccessCode,
	}
}

type BookingResponse struct {
	ID            string          `json:"id"`
	RoomID        string          `json:"room_id"`
	GuestID       *string         `json:"guest_id,omitempty"`
	UserID        *string         `json:"user_id,omitempty"`
	CheckIn       string          `json:"check_in"`
	CheckOut      string          `json:"check_out"`
	Nights        int             `json:"nights"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	AccessCode    string          `json:"access_code"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.GuestID = model.GuestID
	r.UserID = model.UserID
	r.CheckIn = timezone.Format(model.CheckIn, constant.DayFormat)
	r.CheckOut = timezone.Format(model.CheckOut, constant.DayFormat)
	r.Nights = model.Nights
	r.TotalAmount = model.TotalAmount
	r.Status = model.Status
	r.PaymentStatus = model.PaymentStatus
	r.AccessCode = model.AccessCode
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
