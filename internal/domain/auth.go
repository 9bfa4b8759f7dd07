package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/internal/model"
	"github.com/volunhub/backend/internal/repository"
	"github.com/volunhub/backend/pkg/crypto"
	"github.com/volunhub/backend/pkg/enum"
	"github.com/volunhub/backend/pkg/errorx"
	"github.com/volunhub/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	Refresh(context.Context, *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error)
}

type authDomain struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
) *authDomain {
	return &authDomain{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	if req.Name == "" || req.Email == "" {
		return nil, errorx.New(errorx.BadRequest, "Name and email are required")
	}

	if len(req.Password) < 8 {
		return nil, errorx.New(errorx.BadRequest, "Password must be at least 8 characters")
	}

	role := entity.RoleVolunteer
	if req.Role != "" {
		var err error
		role, err = enum.ToEnum[entity.GlobalRole](req.Role)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid role %s", req.Role)
		}
	}

	if !slices.Contains(entity.RegisterableRoles, role) {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot register as %s", role)
	}

	_, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This email is already registered")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:           entity.Base{ID: uuid.NewString()},
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: string(hashedPassword),
		Role:           role,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.New(errorx.AlreadyExists, "This name or email is already registered")
	}

	return &model.RegisterResponse{ID: user.ID}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password))
	if err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	accessToken, refreshToken, err := d.generateTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (d *authDomain) Refresh(
	ctx context.Context, req *model.RefreshTokenRequest,
) (*model.RefreshTokenResponse, error) {
	storedToken, err := d.refreshTokenRepo.Get(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid refresh token")
		}

		xcontext.Logger(ctx).Errorf("Cannot get refresh token: %v", err)
		return nil, errorx.Unknown
	}

	if time.Now().After(storedToken.Expiration) {
		if err := d.refreshTokenRepo.Delete(ctx, storedToken.Token); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot delete expired refresh token: %v", err)
		}

		return nil, errorx.New(errorx.TokenExpired, "Refresh token is expired")
	}

	user, err := d.userRepo.GetByID(ctx, storedToken.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user of refresh token: %v", err)
		return nil, errorx.Unknown
	}

	// Rotate: the presented token is single-use.
	if err := d.refreshTokenRepo.Delete(ctx, storedToken.Token); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot rotate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	accessToken, refreshToken, err := d.generateTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.RefreshTokenResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (d *authDomain) generateTokens(
	ctx context.Context, user *entity.User,
) (string, string, error) {
	cfg := xcontext.Configs(ctx).Auth

	accessToken, err := xcontext.TokenEngine(ctx).Generate(
		cfg.AccessToken.Expiration.Duration,
		model.AccessToken{
			ID:   user.ID,
			Name: user.Name,
			Role: string(user.Role),
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return "", "", errorx.Unknown
	}

	refreshToken, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return "", "", errorx.Unknown
	}

	err = d.refreshTokenRepo.Create(ctx, &entity.RefreshToken{
		Base:       entity.Base{ID: uuid.NewString()},
		UserID:     user.ID,
		Token:      refreshToken,
		Expiration: time.Now().Add(cfg.RefreshToken.Expiration.Duration),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save refresh token: %v", err)
		return "", "", errorx.Unknown
	}

	return accessToken, refreshToken, nil
}
