package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/velora-ai/companion/internal/models"
	"github.com/velora-ai/companion/internal/repository"
	"github.com/velora-ai/companion/internal/transfer"
	"github.com/velora-ai/companion/pkg/utils"
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
	ErrUsernameTaken      = fmt.Errorf("username already taken")
)

type AuthService interface {
	Register(ctx context.Context, req transfer.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, req transfer.LoginRequest) (*models.User, string, error)
}

type authService struct {
	users     repository.UserRepository
	secretKey string
}

func NewAuthService(users repository.UserRepository, secretKey string) AuthService {
	return &authService{users: users, secretKey: secretKey}
}

func (s *authService) Register(ctx context.Context, req transfer.RegisterRequest) (*models.User, string, error) {
	if req.Username == "" || req.Password == "" {
		return nil, "", fmt.Errorf("username and password are required")
	}

	_, taken, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	language := req.Language
	if language == "" {
		language = "en"
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Language:     language,
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}
	user.ID = id

	token, err := utils.GenerateToken(user.ID, s.secretKey)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, req transfer.LoginRequest) (*models.User, string, error) {
	user, found, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, s.secretKey)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
