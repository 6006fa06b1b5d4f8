package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/danuartha/go-commerce-api/internal/domain/entity"
	repo "github.com/danuartha/go-commerce-api/internal/domain/repository"
	"github.com/danuartha/go-commerce-api/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger}
}

// Register creates a user with the customer role and returns it along with a
// signed token. Role is never taken from the caller.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*entity.User, string, time.Time, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	u := &entity.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     entity.RoleUser,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, "", time.Time{}, ErrEmailTaken
		}
		return nil, "", time.Time{}, err
	}
	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	s.Logger.WithField("user_id", u.ID).Info("user registered")
	return u, token, exp, nil
}

// Login verifies the credentials and issues a token. Lookup and compare
// failures collapse into the same error so the response does not reveal which
// part failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := helpers.CompareHashAndPassword(u.Password, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
