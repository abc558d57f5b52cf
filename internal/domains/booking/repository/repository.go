package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"guesthouse/infras/otel"
	"guesthouse/infras/postgres"
	"guesthouse/internal/domains/booking/model"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	gRepo "guesthouse/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	// Overlaps reports whether an active booking of roomID shares any night with [checkIn, checkOut).
	Overlaps(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error)
	// AccessCodeInUse reports whether an active booking already holds code.
	AccessCodeInUse(ctx context.Context, code string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) Overlaps(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Overlaps")
	defer scope.End()

	exist, err := r.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.ActiveStatuses, Operator: gDto.FilterOperatorIn, Table: model.TableName},
			gDto.Filter{Field: model.FieldCheckIn, ArgName: "range_end", Value: checkOut, Operator: gDto.FilterOperatorLess, Table: model.TableName},
			gDto.Filter{Field: model.FieldCheckOut, ArgName: "range_start", Value: checkIn, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
		},
	})
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}

	return exist, nil
}

func (r *repositoryImpl) AccessCodeInUse(ctx context.Context, code string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.AccessCodeInUse")
	defer scope.End()

	exist, err := r.Exist(ctx, ActiveByAccessCode(code))
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check access code: %w", err)
	}

	return exist, nil
}

// ActiveByAccessCode selects the active booking holding code.
func ActiveByAccessCode(code string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldAccessCode, Value: code, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.ActiveStatuses, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		},
	}
}
