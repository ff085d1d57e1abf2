package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/nexus-backend/internal/data/repos"
	"github.com/yungbote/nexus-backend/internal/domain"
	"github.com/yungbote/nexus-backend/internal/platform/ctxutil"
	"github.com/yungbote/nexus-backend/internal/platform/dbctx"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

const minPasswordLength = 8

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, expiresAt time.Time, err error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	TokenTTL() time.Duration
}

type JWTClaims struct {
	jwt.RegisteredClaims
}

type authService struct {
	log       *logger.Logger
	userRepo  repos.UserRepo
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(log *logger.Logger, userRepo repos.UserRepo, jwtSecret string, tokenTTL time.Duration) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &authService{
		log:       log.With("service", "AuthService"),
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

func (s *authService) TokenTTL() time.Duration { return s.tokenTTL }

func (s *authService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Validationf("a valid email is required")
	}
	if len(password) < minPasswordLength {
		return nil, domain.Validationf("password must be at least %d characters", minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.userRepo.Create(dbctx.From(ctx), &domain.User{
		Email:    email,
		Password: string(hash),
		Name:     strings.TrimSpace(name),
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", "user_id", u.ID)
	return u, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	u, err := s.userRepo.GetByEmail(dbctx.From(ctx), email)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return "", time.Time{}, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", time.Time{}, domain.ErrUnauthorized
	}

	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	claims := JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   u.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// SetContextFromToken validates tokenString and attaches the principal to ctx.
func (s *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return ctx, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, errors.New("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", err)
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}), nil
}
