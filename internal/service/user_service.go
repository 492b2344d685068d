package service

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"ucstore-inventory/internal/model"
	"ucstore-inventory/internal/repository"

	"gorm.io/gorm"
)

const AvatarURLPrefix = "/uploads/"

type UserService interface {
	GetUser(id string) (*model.User, error)
	UpsertUser(req *UpsertUserRequest) (*model.User, error)
	AvatarFileName(userID, originalName string) string
	SetAvatar(userID, fileName string) (*model.User, error)
}

type UpsertUserRequest struct {
	ID         string  `json:"id"`
	Username   string  `json:"username" validate:"max=100"`
	Role       string  `json:"role" validate:"omitempty,oneof=admin employee"`
	Email      string  `json:"email" validate:"omitempty,email"`
	AvatarURL  *string `json:"avatarUrl"`
	Department *string `json:"department"`
	Location   *string `json:"location"`
	JoinDate   *string `json:"joinDate"`
}

type userService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *userService) GetUser(id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// UpsertUser replaces the whole profile; omitted optional fields are cleared.
func (s *userService) UpsertUser(req *UpsertUserRequest) (*model.User, error) {
	if req.ID == "" {
		return nil, ErrUserIDRequired
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	now := s.now()
	user := &model.User{
		ID:         req.ID,
		Username:   req.Username,
		Role:       req.Role,
		Email:      req.Email,
		AvatarURL:  req.AvatarURL,
		Department: req.Department,
		Location:   req.Location,
		JoinDate:   req.JoinDate,
		UpdatedAt:  &now,
	}

	_, err := s.userRepo.FindByID(req.ID)
	switch {
	case err == nil:
		err = s.userRepo.Update(user)
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = s.userRepo.Create(user)
	}
	if err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(req.ID)
}

// AvatarFileName is "<id>-<millis><ext>", ext defaulting to .png.
func (s *userService) AvatarFileName(userID, originalName string) string {
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".png"
	}
	return filepath.Base(userID) + "-" + strconv.FormatInt(s.now().UnixMilli(), 10) + ext
}

func (s *userService) SetAvatar(userID, fileName string) (*model.User, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}
	url := AvatarURLPrefix + fileName
	if err := s.userRepo.UpdateAvatar(userID, url); err != nil {
		return nil, err
	}
	slog.Info("avatar updated", "user_id", userID, "url", url)
	return s.userRepo.FindByID(userID)
}
