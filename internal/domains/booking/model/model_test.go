package model_test

import (
	"testing"
	"time"

	"guesthouse/internal/domains/booking/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	tests := []struct {
		name   string
		price  string
		nights int
		want   string
	}{
		{name: "whole price", price: "200", nights: 3, want: "600"},
		{name: "two nights", price: "150", nights: 2, want: "300"},
		{name: "fractional price", price: "99.99", nights: 7, want: "699.93"},
		{name: "cents do not drift", price: "0.10", nights: 3, want: "0.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.Total(decimal.RequireFromString(tt.price), tt.nights)

			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestNights(t *testing.T) {
	checkIn := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, model.Nights(checkIn, time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)))
	assert.Equal(t, 7, model.Nights(checkIn, time.Date(2026, 3, 8, 11, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2, model.Nights(time.Date(2026, 2, 28, 14, 0, 0, 0, time.UTC), time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{model.StatusPending, model.StatusConfirmed, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPending, model.StatusCheckedIn, false},
		{model.StatusConfirmed, model.StatusCheckedIn, true},
		{model.StatusConfirmed, model.StatusCancelled, true},
		{model.StatusCheckedIn, model.StatusCheckedOut, true},
		{model.StatusCheckedIn, model.StatusCancelled, false},
		{model.StatusCheckedOut, model.StatusCheckedIn, false},
		{model.StatusCancelled, model.StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CanTransition(tt.from, tt.to))
		})
	}
}
