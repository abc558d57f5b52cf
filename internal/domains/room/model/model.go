package model

import (
	"guesthouse/shared/model"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldName          = "name"
	FieldCategory      = "category"
	FieldDescription   = "description"
	FieldAmenities     = "amenities"
	FieldImages        = "images"
	FieldPricePerNight = "price_per_night"
	FieldCapacity      = "capacity"
	FieldFloor         = "floor"
	FieldStatus        = "status"
)

const (
	StatusAvailable = "available"
	StatusOccupied  = "occupied"
	StatusReserved  = "reserved"
	StatusCleaning  = "cleaning"
)

const (
	CategorySingle = "single"
	CategoryDouble = "double"
	CategorySuite  = "suite"
	CategoryDeluxe = "deluxe"
)

type Room struct {
	ID            string          `db:"id"`
	Name          string          `db:"name"`
	Category      string          `db:"category"`
	Description   *string         `db:"description"`
	Amenities     pq.StringArray  `db:"amenities"`
	Images        pq.StringArray  `db:"images"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
	Capacity      int             `db:"capacity"`
	Floor         int             `db:"floor"`
	Status        string          `db:"status"`
	model.Metadata
}

// Bookable reports whether a new booking may be placed on the room.
func (r Room) Bookable() bool {
	return r.Status == StatusAvailable
}
