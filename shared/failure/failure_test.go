package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"guesthouse/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("check_out must be after check_in")), code: http.StatusBadRequest, message: "check_out must be after check_in"},
		{name: "bad request from string", err: failure.BadRequestFromString("stay is longer than 7 nights"), code: http.StatusBadRequest, message: "stay is longer than 7 nights"},
		{name: "unauthorized", err: failure.Unauthorized("invalid token"), code: http.StatusUnauthorized, message: "invalid token"},
		{name: "internal", err: failure.InternalError(errors.New("pool exhausted")), code: http.StatusInternalServerError, message: "pool exhausted"},
		{name: "unimplemented", err: failure.Unimplemented("RefundPayment"), code: http.StatusNotImplemented, message: "RefundPayment"},
		{name: "not found", err: failure.NotFound("booking"), code: http.StatusNotFound, message: "booking"},
		{name: "conflict", err: failure.Conflict("room is already booked for those dates"), code: http.StatusConflict, message: "room is already booked for those dates"},
		{name: "forbidden", err: failure.Forbidden("cleaners cannot confirm payments"), code: http.StatusForbidden, message: "cleaners cannot confirm payments"},
		{name: "unavailable", err: failure.ServiceUnavailable("role store unreachable"), code: http.StatusServiceUnavailable, message: "role store unreachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.EqualError(t, tt.err, tt.message)
		})
	}
}

func TestConstructors_NilError(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("confirm payment: %w", failure.Conflict("payment already confirmed"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusForbidden, failure.GetCode(failure.ForbiddenError))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
}

func TestPersistence(t *testing.T) {
	tests := []struct {
		name     string
		stage    string
		resource string
		message  string
	}{
		{
			name:    "guest",
			stage:   failure.StageGuest,
			message: "guest record was not created, no booking was placed",
		},
		{
			name:     "booking after guest",
			stage:    failure.StageBooking,
			resource: "guest-1",
			message:  "booking was not created, no room is held for you",
		},
		{
			name:     "payment notification after booking",
			stage:    failure.StagePaymentNotification,
			resource: "booking-1",
			message:  "payment record was not created, your booking may already exist so contact staff before retrying",
		},
		{
			name:    "unknown stage",
			stage:   "invoice",
			message: "failed to save invoice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := failure.Persistence(tt.stage, tt.resource, errors.New("connection reset by peer"))

			var fail *failure.Failure
			assert.ErrorAs(t, err, &fail)
			assert.Equal(t, http.StatusInternalServerError, fail.Code)
			assert.Equal(t, tt.message, fail.Message)
			assert.Equal(t, tt.resource, fail.Resource)
			assert.Equal(t, tt.stage, failure.GetStage(err))
			assert.NotContains(t, err.Error(), "connection reset")
		})
	}
}

func TestConflictAt(t *testing.T) {
	err := failure.ConflictAt(failure.StageBooking, "guest-1", "room is already booked for those dates")

	var fail *failure.Failure
	assert.ErrorAs(t, err, &fail)
	assert.Equal(t, http.StatusConflict, fail.Code)
	assert.Equal(t, "guest-1", fail.Resource)
	assert.Equal(t, failure.StageBooking, failure.GetStage(err))
}

func TestGetStage_Unstaged(t *testing.T) {
	assert.Empty(t, failure.GetStage(errors.New("plain")))
	assert.Empty(t, failure.GetStage(failure.NotFound("room")))
}
