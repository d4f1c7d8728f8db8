package services

import (
	"context"
	"net/http"
	"time"

	"store-service/errors"
	"store-service/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	AddAddress(ctx context.Context, userID uuid.UUID, addr models.Address) error
}

type ITokenGenerator interface {
	GenerateAuthTokens(user *models.User) (*models.AuthTokens, error)
}

// AuthService handles registration and login.
type AuthService struct {
	userRepo IAuthUserRepository
	tokens   ITokenGenerator
}

func NewAuthService(ur IAuthUserRepository, tg ITokenGenerator) *AuthService {
	return &AuthService{userRepo: ur, tokens: tg}
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	User   *models.User       `json:"user"`
	Tokens *models.AuthTokens `json:"tokens"`
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.InvalidRequest("Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	user := &models.User{
		ID:          uuid.New(),
		Email:       email,
		Name:        name,
		Password:    string(hashedPassword),
		WalletMoney: 0,
		Addresses: []models.Address{
			{Street: "Not set", Default: true},
		},
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal("Failed to create account", err)
	}

	tokens, err := s.tokens.GenerateAuthTokens(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

// AddAddress attaches a shipping address the user actually set. These
// are the addresses checkout looks for.
func (s *AuthService) AddAddress(ctx context.Context, userID uuid.UUID, addr models.Address) error {
	addr.Default = false
	if err := s.userRepo.AddAddress(ctx, userID, addr); err != nil {
		return errors.Internal("Failed to create address", err)
	}
	return nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New(http.StatusUnauthorized, "Invalid email or password", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.New(http.StatusUnauthorized, "Invalid email or password", nil)
	}

	tokens, err := s.tokens.GenerateAuthTokens(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}
