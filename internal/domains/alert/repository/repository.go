package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"guesthouse/infras/otel"
	"guesthouse/infras/postgres"
	"guesthouse/internal/domains/alert/model"
	gDto "guesthouse/shared/dto"
	gRepo "guesthouse/shared/repository"
)

type Alert interface {
	Insert(ctx context.Context, model model.Alert) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Alert, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Alert, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Alert]
}

func New(db *postgres.Connection, otel otel.Otel) Alert {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Alert](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
