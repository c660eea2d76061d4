package service

import (
	"time"

	"github.com/lshigami/Oranguru/internal/repository"
)

// AccessService resolves whether a user is currently entitled to a package
// or bundle. It is a pure read: no side effects, safe to call concurrently
// and repeatedly. A non-existent user or package simply resolves to false,
// so callers cannot distinguish "not found" from "not entitled".
type AccessService interface {
	HasPackageAccess(userID, packageID uint) bool
	HasBundleAccess(userID, bundleID uint) bool
}

type accessService struct {
	purchaseRepo repository.PurchaseRepository
}

func NewAccessService(purchaseRepo repository.PurchaseRepository) AccessService {
	return &accessService{purchaseRepo: purchaseRepo}
}

// HasPackageAccess checks a direct purchase first; if one exists it decides
// the outcome outright, approved-and-unexpired or nothing. Only when no
// direct purchase exists does the resolver fall through to bundle
// membership, evaluated against the bundle's current contents.
func (s *accessService) HasPackageAccess(userID, packageID uint) bool {
	purchase, err := s.purchaseRepo.FindPackagePurchase(userID, packageID)
	if err == nil && purchase != nil {
		if !purchase.Approved {
			return false
		}
		if expired(purchase.ExpiresAt) {
			return false
		}
		return true
	}

	bundlePurchases, err := s.purchaseRepo.FindApprovedBundlePurchasesForPackage(userID, packageID)
	if err != nil {
		return false
	}
	for _, bp := range bundlePurchases {
		if !expired(bp.ExpiresAt) {
			return true
		}
	}
	return false
}

func (s *accessService) HasBundleAccess(userID, bundleID uint) bool {
	purchase, err := s.purchaseRepo.FindBundlePurchase(userID, bundleID)
	if err != nil || purchase == nil {
		return false
	}
	if !purchase.Approved {
		return false
	}
	return !expired(purchase.ExpiresAt)
}

func expired(expiresAt *time.Time) bool {
	return expiresAt != nil && expiresAt.Before(time.Now())
}
