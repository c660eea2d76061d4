package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Oranguru/internal/dto"
	"github.com/lshigami/Oranguru/internal/model"
	"github.com/lshigami/Oranguru/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(userID uint) (*dto.UserResponse, error)
	ListUsers() ([]dto.UserResponse, error)
	SetBanned(userID uint, banned bool) (*dto.UserResponse, error)
	SetRole(userID uint, role string) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(userID uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	var resp dto.UserResponse
	copier.Copy(&resp, user)
	return &resp, nil
}

func (s *userService) ListUsers() ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		var u dto.UserResponse
		copier.Copy(&u, &users[i])
		resp = append(resp, u)
	}
	return resp, nil
}

func (s *userService) SetBanned(userID uint, banned bool) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	user.Banned = banned
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	log.Info().Uint("userID", user.ID).Bool("banned", banned).Msg("User ban state changed")
	var resp dto.UserResponse
	copier.Copy(&resp, user)
	return &resp, nil
}

func (s *userService) SetRole(userID uint, role string) (*dto.UserResponse, error) {
	r := model.UserRole(role)
	if r != model.RoleUser && r != model.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	user.Role = r
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	log.Info().Uint("userID", user.ID).Str("role", role).Msg("User role changed")
	var resp dto.UserResponse
	copier.Copy(&resp, user)
	return &resp, nil
}
