package dto

import (
	"strings"
	"time"

	"guesthouse/infras/jwt"
	userModel "guesthouse/internal/domains/user/model"
	"guesthouse/shared/constant"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string  `json:"email"               validate:"required,email"`
	Password string  `json:"password"            validate:"required,min=8,max=72"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=200"`
	Phone    *string `json:"phone,omitempty"     validate:"omitempty,max=30"`
}

// ToUserModel builds an active account with the guest role.
func (r *RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	now := timezone.Now()

	return userModel.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: hashedPassword,
		Role:     constant.RoleGuest,
		FullName: r.FullName,
		Phone:    r.Phone,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  constant.ContextGuest,
			ModifiedBy: constant.ContextGuest,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

// LogoutRequest optionally carries the refresh token so it is revoked with the access token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8,max=72"`
}

// MeResponse is the signed-in identity with the role resolved from storage.
type MeResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
	Role     string  `json:"role"`
}

func (r *MeResponse) FromModel(user userModel.User, role string) {
	r.ID = user.ID
	r.Email = user.Email
	r.FullName = user.FullName
	r.Role = role
}
