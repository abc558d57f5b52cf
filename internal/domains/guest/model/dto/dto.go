package dto

import (
	"strings"

	"guesthouse/internal/domains/guest/model"
	"guesthouse/shared"
	gDto "guesthouse/shared/dto"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
)

// GuestDetails is the guest part of a booking request.
type GuestDetails struct {
	FirstName   string `json:"first_name"  validate:"required,notblank,max=100"`
	LastName    string `json:"last_name"   validate:"required,notblank,max=100"`
	Email       string `json:"email"       validate:"required,email,max=255"`
	Phone       string `json:"phone"       validate:"required,notblank,max=30"`
	IDNumber    string `json:"id_number"   validate:"omitempty,max=50"`
	Nationality string `json:"nationality" validate:"omitempty,max=100"`
}

func (g *GuestDetails) ToModel(userID, actor string) model.Guest {
	now := timezone.Now()

	return model.Guest{
		ID:          uuid.NewString(),
		FirstName:   strings.TrimSpace(g.FirstName),
		LastName:    strings.TrimSpace(g.LastName),
		Email:       optional(strings.ToLower(strings.TrimSpace(g.Email))),
		Phone:       strings.TrimSpace(g.Phone),
		IDNumber:    optional(strings.TrimSpace(g.IDNumber)),
		Nationality: optional(strings.TrimSpace(g.Nationality)),
		UserID:      optional(userID),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type GuestResponse struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       *string `json:"email,omitempty"`
	Phone       string  `json:"phone"`
	IDNumber    *string `json:"id_number,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
	UserID      *string `json:"user_id,omitempty"`
	gDto.Metadata
}

func (r *GuestResponse) FromModel(model model.Guest) {
	r.ID = model.ID
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Email = model.Email
	r.Phone = model.Phone
	r.IDNumber = model.IDNumber
	r.Nationality = model.Nationality
	r.UserID = model.UserID
	r.Metadata.FromModel(model.Metadata)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromModel(mod)
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}
