package service

import (
	"context"
	"strings"

	"taskboard/internal/apperror"
	"taskboard/internal/auth"
	"taskboard/internal/database"
	"taskboard/internal/model"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by both register and login.
type AuthResult struct {
	User        *model.User
	AccessToken string
}

type AuthService struct {
	users      UserStore
	tokens     *auth.TokenManager
	bcryptCost int
}

func NewAuthService(users UserStore, tokens *auth.TokenManager, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal("Failed to look up user", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("Email already registered")
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperror.Internal("Failed to hash password", err)
	}

	user := &model.User{Name: in.Name, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Conflict("Email already registered")
		}
		return nil, apperror.Internal("Failed to create user", err)
	}

	return s.issue(user)
}

// Login does not reveal whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, apperror.Internal("Failed to look up user", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.ID.String(), user.Email)
	if err != nil {
		return nil, apperror.Internal("Failed to issue token", err)
	}
	return &AuthResult{User: user, AccessToken: token}, nil
}
