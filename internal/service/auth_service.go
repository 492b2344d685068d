package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ucstore-inventory/internal/model"
	"ucstore-inventory/internal/repository"
	"ucstore-inventory/pkg/idgen"
	"ucstore-inventory/pkg/jwt"

	"gorm.io/gorm"
)

const maxUserIDAttempts = 100

type AuthService interface {
	Login(req *LoginRequest) (*LoginResponse, error)
	Me(userID string) (*model.User, error)
}

// LoginRequest matches the store login form: a name and the role picked on screen.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Role     string `json:"role" validate:"required,oneof=admin employee"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *authService) Login(req *LoginRequest) (*LoginResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := s.now()
	user, err := s.userRepo.FindByUsername(req.Username)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		id, err := s.freeUserID(now)
		if err != nil {
			return nil, err
		}
		user = &model.User{
			ID:        id,
			Username:  req.Username,
			Role:      req.Role,
			UpdatedAt: &now,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
		slog.Info("user created on login", "user_id", user.ID, "role", user.Role)
	case err != nil:
		return nil, err
	case user.Role != req.Role:
		user.Role = req.Role
		user.UpdatedAt = &now
		if err := s.userRepo.Update(user); err != nil {
			return nil, err
		}
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &LoginResponse{Token: token, User: *user}, nil
}

// freeUserID steps the timestamp forward until user_<millis> is unused.
func (s *authService) freeUserID(at time.Time) (string, error) {
	for i := 0; i < maxUserIDAttempts; i++ {
		id := idgen.UserID(at)
		_, err := s.userRepo.FindByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
		at = at.Add(time.Millisecond)
	}
	return "", fmt.Errorf("no free user id near %d", at.UnixMilli())
}

func (s *authService) Me(userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}
