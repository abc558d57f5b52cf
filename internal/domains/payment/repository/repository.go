package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"guesthouse/infras/otel"
	"guesthouse/infras/postgres"
	"guesthouse/internal/domains/payment/model"
	gDto "guesthouse/shared/dto"
	gRepo "guesthouse/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Notification interface {
	Insert(ctx context.Context, model model.Notification) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Notification, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Notification, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Notification, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type Settings interface {
	Insert(ctx context.Context, model model.Settings) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Settings, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type notificationImpl struct {
	gRepo.Repository[model.Notification]
}

func NewNotification(db *postgres.Connection, otel otel.Otel) Notification {
	return &notificationImpl{
		Repository: gRepo.NewRepository[model.Notification](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type settingsImpl struct {
	gRepo.Repository[model.Settings]
}

func NewSettings(db *postgres.Connection, otel otel.Otel) Settings {
	return &settingsImpl{
		Repository: gRepo.NewRepository[model.Settings](model.SettingsEntityName, model.SettingsTableName, model.FieldID, db, otel),
	}
}
