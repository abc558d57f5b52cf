package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Stage    string `json:"stage,omitempty"`
	Resource string `json:"resource,omitempty"`
}

// Stages of a multi-step write. A failure tagged with a stage tells the caller
// which record was the last one not written.
const (
	StageGuest               = "guest"
	StageBooking             = "booking"
	StagePaymentNotification = "payment_notification"
)

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}
var RoleUnresolvedError = &Failure{Code: http.StatusServiceUnavailable, Message: "your role could not be determined, please try again"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// Unimplemented returns a new Failure with code for unimplemented method.
func Unimplemented(methodName string) error {
	return &Failure{
		Code:    http.StatusNotImplemented,
		Message: methodName,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// ServiceUnavailable returns a new Failure with code for a dependency that could not answer.
func ServiceUnavailable(msg string) error {
	return &Failure{
		Code:    http.StatusServiceUnavailable,
		Message: msg,
	}
}

var stageMessages = map[string]string{
	StageGuest:               "guest record was not created, no booking was placed",
	StageBooking:             "booking was not created, no room is held for you",
	StagePaymentNotification: "payment record was not created, your booking may already exist so contact staff before retrying",
}

// Persistence returns a new Failure for a write that did not land. resource
// carries the id of anything already written by earlier stages, if any. The
// cause is left out of the message.
func Persistence(stage, resource string, _ error) error {
	msg, ok := stageMessages[stage]
	if !ok {
		msg = "failed to save " + stage
	}

	return &Failure{
		Code:     http.StatusInternalServerError,
		Message:  msg,
		Stage:    stage,
		Resource: resource,
	}
}

// ConflictAt returns a conflict raised by a staged write after earlier stages were stored.
func ConflictAt(stage, resource, msg string) error {
	return &Failure{
		Code:     http.StatusConflict,
		Message:  msg,
		Stage:    stage,
		Resource: resource,
	}
}

// GetStage returns the stage of an error interface, empty when it has none.
func GetStage(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Stage
	}

	return ""
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
