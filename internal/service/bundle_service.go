package service

import (
	"errors"
	"fmt"

	"github.com/lshigami/Oranguru/internal/dto"
	"github.com/lshigami/Oranguru/internal/model"
	"github.com/lshigami/Oranguru/internal/repository"
	"gorm.io/gorm"
)

type BundleService interface {
	Create(adminID uint, req dto.BundleCreateDTO) (*dto.BundleResponse, error)
	Update(id uint, req dto.BundleUpdateDTO) (*dto.BundleResponse, error)
	Delete(id uint) error
	List(isAdmin bool) ([]dto.BundleResponse, error)
	GetByID(id uint, isAdmin bool) (*dto.BundleResponse, error)
}

type bundleService struct {
	bundleRepo  repository.BundleRepository
	packageRepo repository.PackageRepository
}

func NewBundleService(bundleRepo repository.BundleRepository, packageRepo repository.PackageRepository) BundleService {
	return &bundleService{bundleRepo: bundleRepo, packageRepo: packageRepo}
}

func (s *bundleService) Create(adminID uint, req dto.BundleCreateDTO) (*dto.BundleResponse, error) {
	if err := s.checkPackageIDs(req.PackageIDs); err != nil {
		return nil, err
	}

	bundle := model.Bundle{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
		IsActive:    true,
		CreatedBy:   adminID,
	}
	for _, packageID := range req.PackageIDs {
		bundle.BundlePackages = append(bundle.BundlePackages, model.BundlePackage{PackageID: packageID})
	}
	if err := s.bundleRepo.Create(&bundle); err != nil {
		return nil, fmt.Errorf("creating bundle: %w", err)
	}

	reloaded, err := s.bundleRepo.FindByIDWithPackages(bundle.ID)
	if err != nil {
		return nil, fmt.Errorf("reloading bundle: %w", err)
	}
	resp := toBundleResponse(reloaded)
	return &resp, nil
}

func (s *bundleService) Update(id uint, req dto.BundleUpdateDTO) (*dto.BundleResponse, error) {
	bundle, err := s.bundleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bundle not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding bundle: %w", err)
	}

	if req.Title != nil {
		bundle.Title = *req.Title
	}
	if req.Description != nil {
		bundle.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
		}
		bundle.Price = *req.Price
	}
	if req.Discount != nil {
		bundle.Discount = *req.Discount
	}
	if req.IsActive != nil {
		bundle.IsActive = *req.IsActive
	}
	if err := s.bundleRepo.Update(bundle); err != nil {
		return nil, fmt.Errorf("updating bundle: %w", err)
	}

	// Membership changes apply to existing purchases immediately because
	// entitlement is resolved at read time, not at purchase time.
	if req.PackageIDs != nil {
		if err := s.checkPackageIDs(req.PackageIDs); err != nil {
			return nil, err
		}
		if err := s.bundleRepo.ReplacePackages(id, req.PackageIDs); err != nil {
			return nil, fmt.Errorf("replacing bundle packages: %w", err)
		}
	}

	reloaded, err := s.bundleRepo.FindByIDWithPackages(id)
	if err != nil {
		return nil, fmt.Errorf("reloading bundle: %w", err)
	}
	resp := toBundleResponse(reloaded)
	return &resp, nil
}

func (s *bundleService) Delete(id uint) error {
	if _, err := s.bundleRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: bundle not found", ErrNotFound)
		}
		return fmt.Errorf("finding bundle: %w", err)
	}
	if err := s.bundleRepo.Delete(id); err != nil {
		return fmt.Errorf("deleting bundle: %w", err)
	}
	return nil
}

func (s *bundleService) List(isAdmin bool) ([]dto.BundleResponse, error) {
	bundles, err := s.bundleRepo.FindAll(!isAdmin)
	if err != nil {
		return nil, fmt.Errorf("listing bundles: %w", err)
	}
	resp := make([]dto.BundleResponse, 0, len(bundles))
	for i := range bundles {
		resp = append(resp, toBundleResponse(&bundles[i]))
	}
	return resp, nil
}

func (s *bundleService) GetByID(id uint, isAdmin bool) (*dto.BundleResponse, error) {
	bundle, err := s.bundleRepo.FindByIDWithPackages(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bundle not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding bundle: %w", err)
	}
	if !isAdmin && !bundle.IsActive {
		return nil, fmt.Errorf("%w: bundle not found", ErrNotFound)
	}
	resp := toBundleResponse(bundle)
	return &resp, nil
}

func (s *bundleService) checkPackageIDs(packageIDs []uint) error {
	for _, packageID := range packageIDs {
		if _, err := s.packageRepo.FindByID(packageID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: package %d not found", ErrInvalidInput, packageID)
			}
			return fmt.Errorf("finding package %d: %w", packageID, err)
		}
	}
	return nil
}

func toBundleResponse(bundle *model.Bundle) dto.BundleResponse {
	resp := dto.BundleResponse{
		ID:          bundle.ID,
		Title:       bundle.Title,
		Description: bundle.Description,
		Price:       bundle.Price,
		Discount:    bundle.Discount,
		IsActive:    bundle.IsActive,
		CreatedAt:   bundle.CreatedAt,
	}
	for i := range bundle.BundlePackages {
		bp := &bundle.BundlePackages[i]
		resp.Packages = append(resp.Packages, dto.BundlePackageResponse{
			PackageID: bp.PackageID,
			Title:     bp.Package.Title,
			Price:     bp.Package.Price,
		})
	}
	return resp
}
