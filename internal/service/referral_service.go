package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/Oranguru/internal/dto"
	"github.com/lshigami/Oranguru/internal/model"
	"github.com/lshigami/Oranguru/internal/repository"
	"gorm.io/gorm"
)

type ReferralService interface {
	Create(adminID uint, req dto.ReferralCodeCreateDTO) (*model.ReferralCode, error)
	Update(id uint, req dto.ReferralCodeUpdateDTO) (*model.ReferralCode, error)
	Delete(id uint) error
	List() ([]model.ReferralCode, error)
	GetByID(id uint) (*model.ReferralCode, error)
}

type referralService struct {
	referralRepo repository.ReferralCodeRepository
}

func NewReferralService(referralRepo repository.ReferralCodeRepository) ReferralService {
	return &referralService{referralRepo: referralRepo}
}

func (s *referralService) Create(adminID uint, req dto.ReferralCodeCreateDTO) (*model.ReferralCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(req.Code))

	if _, err := s.referralRepo.FindByCode(normalized); err == nil {
		return nil, fmt.Errorf("%w: referral code already exists", ErrDuplicate)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking referral code: %w", err)
	}

	if model.DiscountType(req.DiscountType) == model.DiscountPercentage && req.DiscountValue > 100 {
		return nil, fmt.Errorf("%w: percentage discount cannot exceed 100", ErrInvalidInput)
	}

	code := model.ReferralCode{
		Code:          normalized,
		DiscountType:  model.DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		Quota:         req.Quota,
		IsActive:      true,
		ExpiresAt:     req.ExpiresAt,
		CreatedBy:     adminID,
	}
	if err := s.referralRepo.Create(&code); err != nil {
		return nil, fmt.Errorf("creating referral code: %w", err)
	}
	return &code, nil
}

func (s *referralService) Update(id uint, req dto.ReferralCodeUpdateDTO) (*model.ReferralCode, error) {
	code, err := s.referralRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: referral code not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding referral code: %w", err)
	}

	if req.DiscountType != nil {
		code.DiscountType = model.DiscountType(*req.DiscountType)
	}
	if req.DiscountValue != nil {
		code.DiscountValue = *req.DiscountValue
	}
	if code.DiscountType == model.DiscountPercentage && code.DiscountValue > 100 {
		return nil, fmt.Errorf("%w: percentage discount cannot exceed 100", ErrInvalidInput)
	}
	if req.Quota != nil {
		code.Quota = *req.Quota
	}
	if req.IsActive != nil {
		code.IsActive = *req.IsActive
	}
	if req.ExpiresAt != nil {
		code.ExpiresAt = req.ExpiresAt
	}

	if err := s.referralRepo.Update(code); err != nil {
		return nil, fmt.Errorf("updating referral code: %w", err)
	}
	return code, nil
}

func (s *referralService) Delete(id uint) error {
	if _, err := s.referralRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: referral code not found", ErrNotFound)
		}
		return fmt.Errorf("finding referral code: %w", err)
	}
	if err := s.referralRepo.Delete(id); err != nil {
		return fmt.Errorf("deleting referral code: %w", err)
	}
	return nil
}

func (s *referralService) List() ([]model.ReferralCode, error) {
	codes, err := s.referralRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("listing referral codes: %w", err)
	}
	return codes, nil
}

func (s *referralService) GetByID(id uint) (*model.ReferralCode, error) {
	code, err := s.referralRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: referral code not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding referral code: %w", err)
	}
	return code, nil
}
