package service

import (
	"context"
	"fmt"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/guest/model"
	"guesthouse/internal/domains/guest/model/dto"
	"guesthouse/internal/domains/guest/repository"
	roleService "guesthouse/internal/domains/role/service"
	"guesthouse/permissions"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"

	"github.com/rs/zerolog/log"
)

// Guest exposes guest records to staff. Guests are written by the booking workflow.
type Guest interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetGuestsResponse, error)
	Get(ctx context.Context, id string) (dto.GuestResponse, error)
}

type serviceImpl struct {
	repo repository.Guest
	role roleService.Role
	otel otel.Otel
}

func New(repo repository.Guest, role roleService.Role, otel otel.Otel) Guest {
	return &serviceImpl{
		repo: repo,
		role: role,
		otel: otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetGuestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.role.Authorize(ctx, permissions.OperationGuestRead); err != nil {
		return res, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count guests")

		return res, fmt.Errorf("failed to count guests: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests")

		return res, fmt.Errorf("failed to get guests: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.role.Authorize(ctx, permissions.OperationGuestRead); err != nil {
		return res, err
	}

	guest, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return res, failure.NotFound("guest not found") // nolint:wrapcheck
	}

	res.FromModel(guest)

	return res, nil
}
