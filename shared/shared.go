package shared

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"guesthouse/shared/constant"
	"guesthouse/shared/dto"
	"guesthouse/shared/timezone"

	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func ConvertStringToInt(value string) (int, error) {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("failed to convert %q to int: %w", value, err)
	}

	return intValue, nil
}

// CalculateTotalPage never reports fewer than one page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return int(math.Ceil(float64(total) / float64(limit)))
}

// TransformFields turns the non-zero db-tagged fields of data into an update
// set and stamps it with the modifying actor. Non-nil pointers are
// dereferenced, so a pointer to zero still writes zero.
func TransformFields(data any, actor string) map[string]any {
	value := reflect.Indirect(reflect.ValueOf(data))
	typ := value.Type()

	updatedFields := make(map[string]any, value.NumField()+2)

	for index := range value.NumField() {
		column := typ.Field(index).Tag.Get("db")
		if column == "" || column == "-" {
			continue
		}

		field := value.Field(index)
		if field.IsZero() {
			continue
		}

		if field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		updatedFields[column] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = actor

	return updatedFields
}

// FilterByID matches the single row of table whose fieldID equals id.
func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: fieldID, Value: id, Operator: dto.FilterOperatorEq, Table: table},
		},
	}
}
