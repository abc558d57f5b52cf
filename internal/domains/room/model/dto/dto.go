package dto

import (
	"mime/multipart"

	"guesthouse/internal/domains/room/model"
	"guesthouse/shared"
	gDto "guesthouse/shared/dto"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ImageUpload is one image part of a multipart room request.
type ImageUpload struct {
	Header      *multipart.FileHeader `validate:"required"`
	File        multipart.File        `validate:"-"`
	ContentType string                `validate:"mimetypes=image/png image/jpg image/jpeg image/webp"`
	Size        int64                 `validate:"maxfilesize=2"`
}

type CreateRoomRequest struct {
	Name          string        `json:"name"            validate:"required,max=100"`
	Category      string        `json:"category"        validate:"required,oneof=single double suite deluxe"`
	Description   string        `json:"description"     validate:"omitempty,max=1000"`
	Amenities     []string      `json:"amenities"       validate:"omitempty,dive,max=50"`
	PricePerNight string        `json:"price_per_night" validate:"required,money"`
	Capacity      int           `json:"capacity"        validate:"required,gt=0"`
	Floor         int           `json:"floor"           validate:"gte=0"`
	Status        string        `json:"status"          validate:"omitempty,oneof=available occupied reserved cleaning"`
	Images        []ImageUpload `json:"-"               validate:"omitempty,max=10,dive"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURLs []string) model.Room {
	status := model.StatusAvailable
	if c.Status != "" {
		status = c.Status
	}

	var description *string
	if c.Description != "" {
		description = &c.Description
	}

	price, _ := decimal.NewFromString(c.PricePerNight)

	return model.Room{
		ID:            uuid.NewString(),
		Name:          c.Name,
		Category:      c.Category,
		Description:   description,
		Amenities:     pq.StringArray(nonNil(c.Amenities)),
		Images:        pq.StringArray(nonNil(imageURLs)),
		PricePerNight: price,
		Capacity:      c.Capacity,
		Floor:         c.Floor,
		Status:        status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateRoomRequest carries only the fields to change. Images, when present,
// replace the current set.
type UpdateRoomRequest struct {
	Name          string        `db:"name"        json:"name"            validate:"omitempty,max=100"`
	Category      string        `db:"category"    json:"category"        validate:"omitempty,oneof=single double suite deluxe"`
	Description   string        `db:"description" json:"description"     validate:"omitempty,max=1000"`
	Amenities     []string      `json:"amenities"                        validate:"omitempty,dive,max=50"`
	PricePerNight string        `json:"price_per_night"                  validate:"omitempty,money"`
	Capacity      *int          `db:"capacity"    json:"capacity"        validate:"omitempty,gt=0"`
	Floor         *int          `db:"floor"       json:"floor"           validate:"omitempty,gte=0"`
	Images        []ImageUpload `json:"-"                                validate:"omitempty,max=10,dive"`
}

// Fields returns the column updates of the request. Typed columns are added
// here because TransformFields copies raw values only.
func (u *UpdateRoomRequest) Fields(user string) map[string]any {
	fields := shared.TransformFields(struct {
		Name        string `db:"name"`
		Category    string `db:"category"`
		Description string `db:"description"`
		Capacity    *int   `db:"capacity"`
		Floor       *int   `db:"floor"`
	}{u.Name, u.Category, u.Description, u.Capacity, u.Floor}, user)

	if u.Amenities != nil {
		fields[model.FieldAmenities] = pq.StringArray(u.Amenities)
	}

	if u.PricePerNight != "" {
		price, _ := decimal.NewFromString(u.PricePerNight)
		fields[model.FieldPricePerNight] = price
	}

	return fields
}

type UpdateRoomStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=available occupied reserved cleaning"`
}

type RoomResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Description   *string         `json:"description,omitempty"`
	Amenities     []string        `json:"amenities"`
	Images        []string        `json:"images"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Capacity      int             `json:"capacity"`
	Floor         int             `json:"floor"`
	Status        string          `json:"status"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Category = model.Category
	r.Description = model.Description
	r.Amenities = nonNil(model.Amenities)
	r.Images = nonNil(model.Images)
	r.PricePerNight = model.PricePerNight
	r.Capacity = model.Capacity
	r.Floor = model.Floor
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
