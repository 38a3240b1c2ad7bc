package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"estoquerapido/internal/model"
	"estoquerapido/internal/repository"
)

type AuthService struct {
	secret    []byte
	accessTTL time.Duration
	users     *repository.UserRepository
}

func NewAuthService(secret string, accessTTL time.Duration, users *repository.UserRepository) (*AuthService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if accessTTL <= 0 {
		accessTTL = 8 * time.Hour
	}
	return &AuthService{secret: []byte(secret), accessTTL: accessTTL, users: users}, nil
}

type accessClaims struct {
	Name      string `json:"name"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

func (s *AuthService) Login(ctx context.Context, username string, password string) (model.TokenResult, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.TokenResult{}, model.ErrInvalidCredentials
		}
		return model.TokenResult{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.TokenResult{}, model.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := accessClaims{
		Name:      user.Name,
		CompanyID: user.CompanyID,
		Role:      user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return model.TokenResult{}, fmt.Errorf("sign access token: %w", err)
	}

	return model.TokenResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.accessTTL.Seconds()),
		User: model.AuthUser{
			ID:        user.ID,
			Username:  user.Username,
			Name:      user.Name,
			CompanyID: user.CompanyID,
			Role:      user.Role,
		},
	}, nil
}

func (s *AuthService) ValidateToken(raw string) (model.AuthClaims, error) {
	var claims accessClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return model.AuthClaims{}, model.ErrUnauthorized
	}

	return model.AuthClaims{
		UserID:    claims.Subject,
		Name:      claims.Name,
		CompanyID: claims.CompanyID,
		Role:      claims.Role,
	}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.AuthUser{}, err
	}
	return model.AuthUser{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		CompanyID: user.CompanyID,
		Role:      user.Role,
	}, nil
}

// BootstrapAdmin creates the first admin account when the users table is
// empty. Without it a fresh install has no way to log in.
func (s *AuthService) BootstrapAdmin(ctx context.Context, username string, password string, name string) error {
	if strings.TrimSpace(password) == "" {
		return nil
	}

	count, err := s.users.CountAll(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	_, err = s.users.Create(ctx, &model.User{
		Username:     strings.TrimSpace(username),
		Name:         name,
		PasswordHash: hash,
		Role:         "admin",
	})
	return err
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
