package service

import (
	"context"
	"errors"
	"fmt"

	"guesthouse/config"
	"guesthouse/infras/otel"
	roleService "guesthouse/internal/domains/role/service"
	"guesthouse/internal/domains/user/model"
	"guesthouse/internal/domains/user/model/dto"
	"guesthouse/internal/domains/user/repository"
	"guesthouse/permissions"
	"guesthouse/shared"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	gRepo "guesthouse/shared/repository"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
)

// User manages staff accounts and their roles.
type User interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	AssignRole(ctx context.Context, req dto.AssignRoleRequest, id string) error
	// RevokeRole demotes the user back to guest.
	RevokeRole(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.User
	role  roleService.Role
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, role roleService.Role, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		role:  role,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.role.Authorize(ctx, permissions.OperationStaffManage); err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) AssignRole(ctx context.Context, req dto.AssignRoleRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AssignRole")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.setRole(ctx, req, id)
}

func (s *serviceImpl) RevokeRole(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RevokeRole")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.setRole(ctx, dto.AssignRoleRequest{Role: constant.RoleGuest}, id)
}

func (s *serviceImpl) setRole(ctx context.Context, req dto.AssignRoleRequest, id string) error {
	sess, err := s.role.Authorize(ctx, permissions.OperationStaffManage)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if sess.UserID == id {
		return failure.BadRequestFromString("you cannot change your own role")
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFound("user not found")
	}

	if err = s.repo.Update(ctx, req.Fields(sess.Actor()), filter); err != nil {
		if errors.Is(err, gRepo.ErrNoRowsAffected) {
			return failure.NotFound("user not found")
		}

		log.Error().Err(err).Str("user_id", id).Msg("failed to update role")

		return fmt.Errorf("failed to update role: %w", err)
	}

	log.Info().Str("user_id", id).Str("role", req.Role).Str("by", sess.UserID).Msg("role changed")

	if err = s.role.Forget(ctx, id); err != nil {
		log.Warn().Err(err).Str("user_id", id).Msg("cached role kept until it expires")
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
	}()

	return nil
}
