package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"allure-backend/models"
	"allure-backend/utils"

	"github.com/google/uuid"
	"github.com/romana/rlog"
)

type RegisterInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthService struct {
	users             UserRepository
	secret            string
	ttl               time.Duration
	allowRegistration bool
}

func NewAuthService(users UserRepository, secret string, ttl time.Duration, allowRegistration bool) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{users: users, secret: secret, ttl: ttl, allowRegistration: allowRegistration}
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.ttl
}

// Register creates a staff account. The first account can always be
// created; later ones only when registration is open.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, invalid("email", "a valid email is required")
	}
	if len(in.Password) < 8 {
		return nil, invalid("password", "must be at least 8 characters")
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 && !s.allowRegistration {
		return nil, ErrRegistrationClosed
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	user := &models.User{
		Email:    email,
		Name:     name,
		Phone:    optionalText(in.Phone),
		Password: in.Password, // hashed in BeforeCreate
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	rlog.Infof("User %s registered", user.ID)
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive || !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		rlog.Warnf("Failed to update last login for %s: %v", user.ID, err)
	} else {
		user.LastLogin = &now
	}
	return s.issue(user)
}

func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(user.ID.String(), s.secret, s.ttl)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
