package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lshigami/Oranguru/internal/dto"
	"github.com/lshigami/Oranguru/internal/model"
	"github.com/lshigami/Oranguru/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PurchaseService interface {
	PurchasePackage(userID uint, req dto.PurchasePackageRequest) (*dto.PurchaseResponse, error)
	PurchaseBundle(userID uint, req dto.PurchaseBundleRequest) (*dto.PurchaseResponse, error)
	MyPurchases(userID uint) (*dto.MyPurchasesResponse, error)

	ListAllPurchases() (*dto.MyPurchasesResponse, error)
	ApprovePackagePurchase(id uint, req dto.PurchaseExpiryDTO) (*dto.PurchaseResponse, error)
	ApproveBundlePurchase(id uint, req dto.PurchaseExpiryDTO) (*dto.PurchaseResponse, error)
	RevokePackagePurchase(id uint) (*dto.PurchaseResponse, error)
	RevokeBundlePurchase(id uint) (*dto.PurchaseResponse, error)
	DeletePackagePurchase(id uint) error
	DeleteBundlePurchase(id uint) error
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	packageRepo  repository.PackageRepository
	bundleRepo   repository.BundleRepository
	referralRepo repository.ReferralCodeRepository
}

func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	packageRepo repository.PackageRepository,
	bundleRepo repository.BundleRepository,
	referralRepo repository.ReferralCodeRepository,
) PurchaseService {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		packageRepo:  packageRepo,
		bundleRepo:   bundleRepo,
		referralRepo: referralRepo,
	}
}

func (s *purchaseService) PurchasePackage(userID uint, req dto.PurchasePackageRequest) (*dto.PurchaseResponse, error) {
	pkg, err := s.packageRepo.FindByID(req.PackageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: package not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding package: %w", err)
	}
	if !pkg.IsActive {
		return nil, fmt.Errorf("%w: package not found", ErrNotFound)
	}

	if _, err := s.purchaseRepo.FindPackagePurchase(userID, req.PackageID); err == nil {
		return nil, fmt.Errorf("%w: package already purchased", ErrDuplicate)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking existing purchase: %w", err)
	}

	referral, discount, err := s.resolveReferral(req.ReferralCode, pkg.Price)
	if err != nil {
		return nil, err
	}

	purchase := model.PackagePurchase{
		UserID:        userID,
		PackageID:     pkg.ID,
		OriginalPrice: pkg.Price,
		PricePaid:     pkg.Price - discount,
		ProofImageURL: req.ProofImageURL,
	}
	if referral != nil {
		purchase.ReferralCodeID = &referral.ID
		purchase.DiscountApplied = discount
	}
	if err := s.purchaseRepo.CreatePackagePurchase(&purchase); err != nil {
		return nil, fmt.Errorf("creating purchase: %w", err)
	}
	if referral != nil {
		if err := s.referralRepo.IncrementUsage(referral.ID); err != nil {
			log.Error().Err(err).Uint("referralCodeID", referral.ID).Msg("failed to bump referral usage")
		}
	}

	log.Info().Uint("userID", userID).Uint("packageID", pkg.ID).Float64("pricePaid", purchase.PricePaid).Msg("Package purchase recorded")
	resp := packagePurchaseToResponse(&purchase, pkg.Title)
	return &resp, nil
}

func (s *purchaseService) PurchaseBundle(userID uint, req dto.PurchaseBundleRequest) (*dto.PurchaseResponse, error) {
	bundle, err := s.bundleRepo.FindByID(req.BundleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bundle not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding bundle: %w", err)
	}
	if !bundle.IsActive {
		return nil, fmt.Errorf("%w: bundle not found", ErrNotFound)
	}

	if _, err := s.purchaseRepo.FindBundlePurchase(userID, req.BundleID); err == nil {
		return nil, fmt.Errorf("%w: bundle already purchased", ErrDuplicate)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking existing purchase: %w", err)
	}

	referral, discount, err := s.resolveReferral(req.ReferralCode, bundle.Price)
	if err != nil {
		return nil, err
	}

	purchase := model.BundlePurchase{
		UserID:        userID,
		BundleID:      bundle.ID,
		OriginalPrice: bundle.Price,
		PricePaid:     bundle.Price - discount,
		ProofImageURL: req.ProofImageURL,
	}
	if referral != nil {
		purchase.ReferralCodeID = &referral.ID
		purchase.DiscountApplied = discount
	}
	if err := s.purchaseRepo.CreateBundlePurchase(&purchase); err != nil {
		return nil, fmt.Errorf("creating purchase: %w", err)
	}
	if referral != nil {
		if err := s.referralRepo.IncrementUsage(referral.ID); err != nil {
			log.Error().Err(err).Uint("referralCodeID", referral.ID).Msg("failed to bump referral usage")
		}
	}

	log.Info().Uint("userID", userID).Uint("bundleID", bundle.ID).Float64("pricePaid", purchase.PricePaid).Msg("Bundle purchase recorded")
	resp := bundlePurchaseToResponse(&purchase, bundle.Title)
	return &resp, nil
}

// resolveReferral validates an optional referral code and returns the
// discount it yields against the given price. An absent code is not an
// error; an invalid one is.
func (s *purchaseService) resolveReferral(rawCode *string, price float64) (*model.ReferralCode, float64, error) {
	if rawCode == nil {
		return nil, 0, nil
	}
	code := strings.ToUpper(strings.TrimSpace(*rawCode))
	if code == "" {
		return nil, 0, nil
	}

	referral, err := s.referralRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, fmt.Errorf("%w: referral code not found", ErrInvalidInput)
		}
		return nil, 0, fmt.Errorf("finding referral code: %w", err)
	}
	if !referral.IsActive {
		return nil, 0, fmt.Errorf("%w: referral code is inactive", ErrInvalidInput)
	}
	if referral.ExpiresAt != nil && referral.ExpiresAt.Before(time.Now()) {
		return nil, 0, fmt.Errorf("%w: referral code has expired", ErrInvalidInput)
	}
	if referral.UsedCount >= referral.Quota {
		return nil, 0, fmt.Errorf("%w: referral code quota exhausted", ErrInvalidInput)
	}

	var discount float64
	switch referral.DiscountType {
	case model.DiscountPercentage:
		discount = price * referral.DiscountValue / 100
	case model.DiscountFixed:
		discount = referral.DiscountValue
	}
	// A fixed discount larger than the price never produces a negative total.
	if discount > price {
		discount = price
	}
	return referral, discount, nil
}

func (s *purchaseService) MyPurchases(userID uint) (*dto.MyPurchasesResponse, error) {
	packagePurchases, err := s.purchaseRepo.FindPackagePurchasesByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("listing package purchases: %w", err)
	}
	bundlePurchases, err := s.purchaseRepo.FindBundlePurchasesByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("listing bundle purchases: %w", err)
	}
	return buildPurchasesResponse(packagePurchases, bundlePurchases), nil
}

func (s *purchaseService) ListAllPurchases() (*dto.MyPurchasesResponse, error) {
	packagePurchases, err := s.purchaseRepo.FindAllPackagePurchases()
	if err != nil {
		return nil, fmt.Errorf("listing package purchases: %w", err)
	}
	bundlePurchases, err := s.purchaseRepo.FindAllBundlePurchases()
	if err != nil {
		return nil, fmt.Errorf("listing bundle purchases: %w", err)
	}
	return buildPurchasesResponse(packagePurchases, bundlePurchases), nil
}

func (s *purchaseService) ApprovePackagePurchase(id uint, req dto.PurchaseExpiryDTO) (*dto.PurchaseResponse, error) {
	purchase, err := s.findPackagePurchase(id)
	if err != nil {
		return nil, err
	}
	purchase.Approved = true
	purchase.ExpiresAt = req.ExpiresAt
	if err := s.purchaseRepo.UpdatePackagePurchase(purchase); err != nil {
		return nil, fmt.Errorf("approving purchase: %w", err)
	}
	log.Info().Uint("purchaseID", id).Msg("Package purchase approved")
	resp := packagePurchaseToResponse(purchase, purchase.Package.Title)
	return &resp, nil
}

func (s *purchaseService) ApproveBundlePurchase(id uint, req dto.PurchaseExpiryDTO) (*dto.PurchaseResponse, error) {
	purchase, err := s.findBundlePurchase(id)
	if err != nil {
		return nil, err
	}
	purchase.Approved = true
	purchase.ExpiresAt = req.ExpiresAt
	if err := s.purchaseRepo.UpdateBundlePurchase(purchase); err != nil {
		return nil, fmt.Errorf("approving purchase: %w", err)
	}
	log.Info().Uint("purchaseID", id).Msg("Bundle purchase approved")
	resp := bundlePurchaseToResponse(purchase, purchase.Bundle.Title)
	return &resp, nil
}

func (s *purchaseService) RevokePackagePurchase(id uint) (*dto.PurchaseResponse, error) {
	purchase, err := s.findPackagePurchase(id)
	if err != nil {
		return nil, err
	}
	purchase.Approved = false
	if err := s.purchaseRepo.UpdatePackagePurchase(purchase); err != nil {
		return nil, fmt.Errorf("revoking purchase: %w", err)
	}
	log.Info().Uint("purchaseID", id).Msg("Package purchase revoked")
	resp := packagePurchaseToResponse(purchase, purchase.Package.Title)
	return &resp, nil
}

func (s *purchaseService) RevokeBundlePurchase(id uint) (*dto.PurchaseResponse, error) {
	purchase, err := s.findBundlePurchase(id)
	if err != nil {
		return nil, err
	}
	purchase.Approved = false
	if err := s.purchaseRepo.UpdateBundlePurchase(purchase); err != nil {
		return nil, fmt.Errorf("revoking purchase: %w", err)
	}
	log.Info().Uint("purchaseID", id).Msg("Bundle purchase revoked")
	resp := bundlePurchaseToResponse(purchase, purchase.Bundle.Title)
	return &resp, nil
}

func (s *purchaseService) DeletePackagePurchase(id uint) error {
	if _, err := s.findPackagePurchase(id); err != nil {
		return err
	}
	if err := s.purchaseRepo.DeletePackagePurchase(id); err != nil {
		return fmt.Errorf("deleting purchase: %w", err)
	}
	return nil
}

func (s *purchaseService) DeleteBundlePurchase(id uint) error {
	if _, err := s.findBundlePurchase(id); err != nil {
		return err
	}
	if err := s.purchaseRepo.DeleteBundlePurchase(id); err != nil {
		return fmt.Errorf("deleting purchase: %w", err)
	}
	return nil
}

func (s *purchaseService) findPackagePurchase(id uint) (*model.PackagePurchase, error) {
	purchase, err := s.purchaseRepo.FindPackagePurchaseByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: purchase not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding purchase: %w", err)
	}
	return purchase, nil
}

func (s *purchaseService) findBundlePurchase(id uint) (*model.BundlePurchase, error) {
	purchase, err := s.purchaseRepo.FindBundlePurchaseByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: purchase not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding purchase: %w", err)
	}
	return purchase, nil
}

func buildPurchasesResponse(packagePurchases []model.PackagePurchase, bundlePurchases []model.BundlePurchase) *dto.MyPurchasesResponse {
	resp := dto.MyPurchasesResponse{
		Packages: make([]dto.PurchaseResponse, 0, len(packagePurchases)),
		Bundles:  make([]dto.PurchaseResponse, 0, len(bundlePurchases)),
	}
	for i := range packagePurchases {
		p := &packagePurchases[i]
		resp.Packages = append(resp.Packages, packagePurchaseToResponse(p, p.Package.Title))
	}
	for i := range bundlePurchases {
		b := &bundlePurchases[i]
		resp.Bundles = append(resp.Bundles, bundlePurchaseToResponse(b, b.Bundle.Title))
	}
	return &resp
}

func packagePurchaseToResponse(p *model.PackagePurchase, title string) dto.PurchaseResponse {
	packageID := p.PackageID
	return dto.PurchaseResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		PackageID:       &packageID,
		Title:           title,
		OriginalPrice:   p.OriginalPrice,
		PricePaid:       p.PricePaid,
		DiscountApplied: p.DiscountApplied,
		Approved:        p.Approved,
		ExpiresAt:       p.ExpiresAt,
		PurchasedAt:     p.PurchasedAt,
	}
}

func bundlePurchaseToResponse(b *model.BundlePurchase, title string) dto.PurchaseResponse {
	bundleID := b.BundleID
	return dto.PurchaseResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		BundleID:        &bundleID,
		Title:           title,
		OriginalPrice:   b.OriginalPrice,
		PricePaid:       b.PricePaid,
		DiscountApplied: b.DiscountApplied,
		Approved:        b.Approved,
		ExpiresAt:       b.ExpiresAt,
		PurchasedAt:     b.PurchasedAt,
	}
}
