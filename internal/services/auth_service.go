package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pcstore/internal/apperr"
	"pcstore/internal/auth"
	"pcstore/internal/models"
	"pcstore/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService registers users, issues JWTs and resolves tokens to callers.
type AuthService struct {
	userRepo  repositories.UserRepository
	validate  *validator.Validate
	logger    *zap.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		userRepo:  userRepo,
		validate:  NewValidator(),
		logger:    logger,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// RegisterUser creates an account. Anyone may register; only staff may
// create verified or staff accounts.
func (s *AuthService) RegisterUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	if in.Verified || in.IsStaff {
		if _, err := auth.RequireStaff(ctx); err != nil {
			return nil, err
		}
	}

	if _, err := s.userRepo.GetByUsername(ctx, in.Username); err == nil {
		return nil, apperr.Conflict("USERNAME_TAKEN", "username '%s' already taken", in.Username)
	} else if apperr.KindOf(err) != apperr.KindNotFound {
		return nil, err
	}
	if _, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperr.Conflict("EMAIL_TAKEN", "email '%s' already registered", in.Email)
	} else if apperr.KindOf(err) != apperr.KindNotFound {
		return nil, err
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  hashed,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Verified:  in.Verified,
		IsStaff:   in.IsStaff,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	s.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// LoginUser checks the credentials and returns a signed token for the user.
func (s *AuthService) LoginUser(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return "", nil, apperr.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		s.logger.Debug("token validation failed", zap.Error(err))
		return nil, apperr.ErrInvalidToken.WithCause(err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, apperr.ErrInvalidToken
}

// Authenticate resolves a token to the user it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	// JSON numbers decode as float64.
	rawID, ok := claims["user_id"].(float64)
	if !ok || rawID <= 0 {
		return nil, apperr.ErrInvalidToken.WithCause(errors.New("token carries no user id"))
	}
	user, err := s.userRepo.GetByID(ctx, uint(rawID))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.ErrInvalidToken.WithCause(err)
		}
		return nil, err
	}
	return user, nil
}

// RefreshToken exchanges a still-valid token for a fresh one.
func (s *AuthService) RefreshToken(ctx context.Context, tokenString string) (string, error) {
	user, err := s.Authenticate(ctx, tokenString)
	if err != nil {
		return "", err
	}
	return s.issueToken(user)
}
