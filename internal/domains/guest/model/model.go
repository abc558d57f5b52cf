package model

import (
	"guesthouse/shared/model"
)

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID          = "id"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldIDNumber    = "id_number"
	FieldNationality = "nationality"
	FieldUserID      = "user_id"
)

// Guest is the person a booking is made for. A new row is written for every
// booking placed, even when the same person booked before.
type Guest struct {
	ID          string  `db:"id"`
	FirstName   string  `db:"first_name"`
	LastName    string  `db:"last_name"`
	Email       *string `db:"email"`
	Phone       string  `db:"phone"`
	IDNumber    *string `db:"id_number"`
	Nationality *string `db:"nationality"`
	UserID      *string `db:"user_id"`
	model.Metadata
}

func (g Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}
