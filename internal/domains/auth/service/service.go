package service

import (
	"context"
	"fmt"
	"strings"

	"guesthouse/config"
	"guesthouse/infras/jwt"
	"guesthouse/infras/otel"
	"guesthouse/internal/domains/auth/model/dto"
	roleService "guesthouse/internal/domains/role/service"
	userModel "guesthouse/internal/domains/user/model"
	userRepo "guesthouse/internal/domains/user/repository"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	"guesthouse/shared/password"
	"guesthouse/shared/session"
	"guesthouse/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	// Logout revokes the caller's tokens and drops the cached role.
	Logout(ctx context.Context, req dto.LogoutRequest) error
	Me(ctx context.Context) (dto.MeResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	role       roleService.Role
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, role roleService.Role, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		role:       role,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    strings.ToLower(strings.TrimSpace(email)),
				Table:    userModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.userRepo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return failure.Conflict("email already registered")
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.userRepo.Insert(ctx, req.ToUserModel(hashedPassword)); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := emailFilter(req.Email)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.BadRequestFromString("invalid email or password")
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString("invalid email or password")
	}

	if !user.Active {
		return res, failure.BadRequestFromString("user account is deactivated")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}

	if err := s.userRepo.Update(ctx, shared.TransformFields(lastLogin, user.Email), filter); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context, req dto.LogoutRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess := session.FromContext(ctx)
	if !sess.IsAuthenticated() {
		return failure.Unauthorized("sign in required")
	}

	if err = s.jwtService.Revoke(ctx, &jwt.Claims{UserID: sess.UserID, TokenID: sess.TokenID}); err != nil {
		log.Error().Err(err).Str("user_id", sess.UserID).Msg("failed to revoke access token")

		return fmt.Errorf("failed to revoke access token: %w", err)
	}

	if req.RefreshToken != constant.Empty {
		claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
		if err == nil && claims.UserID == sess.UserID {
			if err := s.jwtService.Revoke(ctx, claims); err != nil {
				log.Error().Err(err).Str("user_id", sess.UserID).Msg("failed to revoke refresh token")

				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}
	}

	if err := s.role.Forget(ctx, sess.UserID); err != nil {
		log.Warn().Err(err).Str("user_id", sess.UserID).Msg("cached role kept until it expires")
	}

	log.Info().Str("user_id", sess.UserID).Msg("signed out")

	return nil
}

func (s *serviceImpl) Me(ctx context.Context) (res dto.MeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess := session.FromContext(ctx)
	if !sess.IsAuthenticated() {
		return res, failure.Unauthorized("sign in required")
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(sess.UserID, userModel.FieldID, userModel.TableName),
		userModel.FieldID, userModel.FieldEmail, userModel.FieldFullName)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found")
	}

	role, err := s.role.GetRole(ctx, sess.UserID)
	if err != nil {
		return res, failure.RoleUnresolvedError
	}

	res.FromModel(user, role)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess := session.FromContext(ctx)
	if !sess.IsAuthenticated() {
		return failure.Unauthorized("sign in required")
	}

	filter := shared.FilterByID(sess.UserID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter, userModel.FieldID, userModel.FieldPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found")
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}

	if err = s.userRepo.Update(ctx, shared.TransformFields(updatePassword, sess.Actor()), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
