package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"guesthouse/config"
	"guesthouse/infras/otel"
	userModel "guesthouse/internal/domains/user/model"
	userRepo "guesthouse/internal/domains/user/repository"
	"guesthouse/permissions"
	"guesthouse/shared"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	"guesthouse/shared/failure"
	"guesthouse/shared/session"

	"github.com/rs/zerolog/log"
)

const cacheGetRole = "role:get"

// Role resolves the role of a signed-in user and gates protected operations.
type Role interface {
	// GetRole returns the user's role, empty when the user has none. Reads may be served from cache.
	GetRole(ctx context.Context, userID string) (string, error)
	// Authorize checks the caller in ctx against operation using a fresh read of the role.
	Authorize(ctx context.Context, operation string) (session.Session, error)
	// Forget drops the cached role of userID.
	Forget(ctx context.Context, userID string) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	permission *permissions.PermissionData
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(userRepo userRepo.User, permission *permissions.PermissionData, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Role {
	return &serviceImpl{
		userRepo:   userRepo,
		permission: permission,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) GetRole(ctx context.Context, userID string) (role string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRole")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRole, userID)

	if err = s.cache.Get(ctx, cacheKey, &role); err == nil {
		return role, nil
	}

	role, err = s.readRole(ctx, userID)
	if err != nil {
		return constant.Empty, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, role, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save role to cache")
		}
	}()

	return role, nil
}

func (s *serviceImpl) Authorize(ctx context.Context, operation string) (sess session.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Authorize")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess = session.FromContext(ctx)
	if !sess.IsAuthenticated() {
		return sess, failure.Unauthorized("sign in required")
	}

	role, err := s.readRole(ctx, sess.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", sess.UserID).Str("operation", operation).Msg("failed to resolve role")

		return sess, failure.RoleUnresolvedError
	}

	sess.Role = role

	if !s.permission.CanPerform(role, operation) {
		log.Warn().Str("user_id", sess.UserID).Str("role", role).Str("operation", operation).Msg("operation denied")

		return sess, failure.ForbiddenError
	}

	return sess, nil
}

func (s *serviceImpl) Forget(ctx context.Context, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Forget")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetRole, userID)); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to delete role from cache")

		return fmt.Errorf("failed to forget role: %w", err)
	}

	return nil
}

func (s *serviceImpl) readRole(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName), userModel.FieldID, userModel.FieldRole, userModel.FieldActive)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to read role")

		return constant.Empty, fmt.Errorf("failed to read role: %w", err)
	}

	if user.ID == constant.Empty || !user.Active {
		return constant.Empty, nil
	}

	return user.Role, nil
}
