package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"guesthouse/shared/failure"

	val "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

const (
	moneyMaxScale = 2
	megabyte      = 1 << 20
	dataURLPrefix = "data:"
	dataURLMarker = ";base64,"
)

var validate *val.Validate

// dataURLContentType returns the media type of a base64 data URL, or "".
func dataURLContentType(str string) string {
	end := strings.Index(str, dataURLMarker)
	if !strings.HasPrefix(str, dataURLPrefix) || end < len(dataURLPrefix) {
		return ""
	}

	return str[len(dataURLPrefix):end]
}

// mimetypes accepts a content type, or a base64 data URL, listed in the
// space separated param.
func mimetypes(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	contentType := str
	if strings.HasPrefix(str, dataURLPrefix) {
		contentType = dataURLContentType(str)
	}

	contentType, _, _ = strings.Cut(contentType, ";")
	if contentType == "" {
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), strings.TrimSpace(contentType))
}

// maxfilesize bounds a byte count, or the length of an encoded string, by
// param megabytes.
func maxfilesize(field val.FieldLevel) bool {
	maxMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	limit := int64(maxMB * megabyte)

	value := field.Field()

	switch value.Kind() { //nolint:exhaustive
	case reflect.Int, reflect.Int32, reflect.Int64:
		return value.Int() <= limit
	case reflect.String:
		return int64(value.Len()) <= limit
	default:
		return false
	}
}

// money accepts a non-negative amount with at most two decimal places.
func money(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	amount, err := decimal.NewFromString(str)
	if err != nil {
		return false
	}

	return !amount.IsNegative() && amount.Exponent() >= -moneyMaxScale
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	rules := map[string]val.Func{
		"mimetypes":   mimetypes,
		"maxfilesize": maxfilesize,
		"money":       money,
		"notblank":    validators.NotBlank,
	}

	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate decodes a JSON body into data and validates the result.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
