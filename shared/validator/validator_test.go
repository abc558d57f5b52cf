package validator_test

import (
	"strings"
	"testing"

	"guesthouse/shared/validator"

	"github.com/stretchr/testify/assert"
)

type guestDetails struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
	Email     string `json:"email"      validate:"required,email"`
	Phone     string `json:"phone"      validate:"required,min=7,max=20"`
	Nights    int    `json:"nights"     validate:"gte=1,lte=7"`
	Category  string `json:"category"   validate:"omitempty,oneof=single double suite deluxe"`
}

type priced struct {
	PricePerNight string `json:"price_per_night" validate:"required,money"`
}

func validGuest() guestDetails {
	return guestDetails{
		FirstName: "Ama",
		LastName:  "Mensah",
		Email:     "ama@example.com",
		Phone:     "+233201234567",
		Nights:    2,
		Category:  "double",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(g *guestDetails)
		expectError bool
	}{
		{
			name:        "valid guest",
			mutate:      func(g *guestDetails) {},
			expectError: false,
		},
		{
			name:        "missing first name",
			mutate:      func(g *guestDetails) { g.FirstName = "" },
			expectError: true,
		},
		{
			name:        "invalid email",
			mutate:      func(g *guestDetails) { g.Email = "ama-at-example" },
			expectError: true,
		},
		{
			name:        "missing phone",
			mutate:      func(g *guestDetails) { g.Phone = "" },
			expectError: true,
		},
		{
			name:        "zero nights",
			mutate:      func(g *guestDetails) { g.Nights = 0 },
			expectError: true,
		},
		{
			name:        "too many nights",
			mutate:      func(g *guestDetails) { g.Nights = 8 },
			expectError: true,
		},
		{
			name:        "unknown category",
			mutate:      func(g *guestDetails) { g.Category = "penthouse" },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validGuest()
			tt.mutate(&data)

			err := validator.ValidateStruct(&data)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStruct_MessageUsesJSONName(t *testing.T) {
	data := validGuest()
	data.FirstName = ""

	err := validator.ValidateStruct(&data)

	assert.EqualError(t, err, "first_name is required")
}

func TestValidateStruct_Money(t *testing.T) {
	tests := []struct {
		price       string
		expectError bool
	}{
		{price: "150", expectError: false},
		{price: "150.50", expectError: false},
		{price: "0", expectError: false},
		{price: "150.505", expectError: true},
		{price: "-1", expectError: true},
		{price: "one fifty", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			err := validator.ValidateStruct(&priced{PricePerNight: tt.price})

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "valid email", field: "desk@guesthouse.test", tag: "email", expectError: false},
		{name: "invalid email", field: "desk", tag: "email", expectError: true},
		{name: "valid uuid", field: "1f0e6b1c-8a2d-4c83-9e55-1a2b3c4d5e6f", tag: "uuid", expectError: false},
		{name: "invalid uuid", field: "room-1", tag: "uuid", expectError: true},
		{name: "valid role", field: "receptionist", tag: "oneof=guest receptionist owner", expectError: false},
		{name: "invalid role", field: "admin", tag: "oneof=guest receptionist owner", expectError: true},
		{name: "name with letters", field: "Ama", tag: "required,notblank", expectError: false},
		{name: "name of spaces", field: "   ", tag: "required,notblank", expectError: true},
		{name: "name of tabs and newlines", field: "\t\n", tag: "required,notblank", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		body := `{"first_name":"Ama","last_name":"Mensah","email":"ama@example.com","phone":"+233201234567","nights":2}`

		var data guestDetails
		err := validator.Validate(strings.NewReader(body), &data)

		assert.NoError(t, err)
		assert.Equal(t, "Ama", data.FirstName)
		assert.Equal(t, 2, data.Nights)
	})

	t.Run("malformed body", func(t *testing.T) {
		var data guestDetails
		err := validator.Validate(strings.NewReader(`{"first_name":`), &data)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode request body")
	})

	t.Run("invalid body", func(t *testing.T) {
		var data guestDetails
		err := validator.Validate(strings.NewReader(`{"first_name":"Ama"}`), &data)

		assert.Error(t, err)
	})
}

type roomImage struct {
	ContentType string `json:"content_type" validate:"mimetypes=image/png image/jpeg image/webp"`
	Size        int64  `json:"size"         validate:"maxfilesize=2"`
}

type inlineImage struct {
	Data string `json:"data" validate:"mimetypes=image/png,maxfilesize=0.001"`
}

func TestValidateStruct_Images(t *testing.T) {
	tests := []struct {
		name        string
		image       roomImage
		expectError bool
	}{
		{name: "png within limit", image: roomImage{ContentType: "image/png", Size: 512 << 10}},
		{name: "jpeg at the limit", image: roomImage{ContentType: "image/jpeg", Size: 2 << 20}},
		{name: "content type with parameters", image: roomImage{ContentType: "image/webp; q=0.9", Size: 1}},
		{name: "pdf rejected", image: roomImage{ContentType: "application/pdf", Size: 1}, expectError: true},
		{name: "missing content type", image: roomImage{Size: 1}, expectError: true},
		{name: "too large", image: roomImage{ContentType: "image/png", Size: 2<<20 + 1}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.image)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStruct_DataURL(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		expectError bool
	}{
		{name: "png data url", data: "data:image/png;base64,iVBORw0KGgo="},
		{name: "jpeg data url", data: "data:image/jpeg;base64,/9j/4AAQ", expectError: true},
		{name: "not base64 encoded", data: "data:image/png,raw", expectError: true},
		{name: "oversized", data: "data:image/png;base64," + strings.Repeat("A", 2048), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&inlineImage{Data: tt.data})

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStruct_ImageMessage(t *testing.T) {
	err := validator.ValidateStruct(&roomImage{ContentType: "image/png", Size: 3 << 20})

	assert.EqualError(t, err, "size must not exceed 2 MB")
}
