package service

import (
	"testing"
	"time"

	"github.com/lshigami/Oranguru/internal/dto"
	"github.com/lshigami/Oranguru/internal/model"
	"github.com/lshigami/Oranguru/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPurchaseFixture(t *testing.T) (*gorm.DB, PurchaseService) {
	t.Helper()
	db := newTestDB(t)
	svc := NewPurchaseService(
		repository.NewPurchaseRepository(db),
		repository.NewPackageRepository(db),
		repository.NewBundleRepository(db),
		repository.NewReferralCodeRepository(db),
	)
	return db, svc
}

func seedReferralCode(t *testing.T, db *gorm.DB, code string, discountType model.DiscountType, value float64, quota int) *model.ReferralCode {
	t.Helper()
	referral := &model.ReferralCode{
		Code:          code,
		DiscountType:  discountType,
		DiscountValue: value,
		Quota:         quota,
		IsActive:      true,
		CreatedBy:     1,
	}
	require.NoError(t, db.Create(referral).Error)
	return referral
}

func TestPurchasePackage_PendingByDefault(t *testing.T) {
	db, svc := newPurchaseFixture(t)
	user := seedUser(t, db, model.RoleUser)
	pkg := seedPackage(t, db, user.ID)

	resp, err := svc.PurchasePackage(user.ID, dto.PurchasePackageRequest{PackageID: pkg.ID})
	require.NoError(t, err)

	assert.False(t, resp.Approved, "purchases start pending")
	assert.Equal(t, 100.0, resp.OriginalPrice)
	assert.Equal(t, 100.0, resp.PricePaid)
	assert.Zero(t, resp.DiscountApplied)
}

func TestPurchasePackage_DuplicateRejected(t *testing.T) {
	db, svc := newPurchaseFixture(t)
	user := seedUser(t, db, model.RoleUser)
	pkg := seedPackage(t, db, user.ID)

	_, err := svc.PurchasePackage(user.ID, dto.PurchasePackageRequest{PackageID: pkg.ID})
	require.NoError(t, err)

	_, err = svc.PurchasePackage(user.ID, dto.PurchasePackageRequest{PackageID: pkg.ID})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestPurchasePackage_UnknownOrInactivePackage(t *testing.T) {
	db, svc := newPurchaseFixture(t)
	user := seedUser(t, db, model.RoleUser)

	_, err := svc.PurchasePackage(user.ID, dto.PurchasePackageRequest{PackageID: 9999})
	assert.ErrorIs(t, err, ErrNotFound)

	pkg := seedPackage(t, db, user.ID)
	require.NoError(t, db.Model(&model.Package{}).Where("id = ?", pkg.ID).Update("is_active", false).Error)
	_, err = svc.PurchasePackage(user.ID, dto.PurchasePackageRequest{PackageID: pkg.ID})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPurchasePackage_PercentageDiscount(t *testing.T) {
	db, svc := newPurchaseFixture(t)
	user := seedUser(t, db, model.RoleUser)
	pkg := seedPackage(t, db, user.ID) // price 100
	code := seedReferralCode(t, db, "SAVE10", model.DiscountPercentage, 10, 5)

	// Lowercase input matches the uppercase-stored code.
	resp, err := svc.PurchasePackage(user.ID, dto.PurchasePackageRequest{
		PackageID:    pkg.ID,
		ReferralCode: strPtr("save10"),
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, resp.OriginalPrice)
	assert.InDelta(t, 10.0, resp.DiscountApplied, 1e-9)
	assert.InDelta(t, 90.0, resp.PricePaid, 1e-9)

	var reloaded model.ReferralCode
	require.NoError(t, db.First(&reloaded, code.ID).Error)
	assert.Equal(t, 1, reloaded.UsedCount)
}

func TestPurchasePackage_FixedDiscountClampedAtPrice(t *testing.T) {
	db, svc := newPurchaseFixture(t)
	user := seedUser(t, db, model.RoleUser)
	pkg := seedPackage(t, db, user.ID) // price 100
	seedReferralCode(t, db, "HUGE", model.DiscountFixed, 250, 5)

	resp, err := svc.PurchasePackage(user.ID, dto.PurchasePackageRequest{
		PackageID:    pkg.ID,
		ReferralCode: strPtr("HUGE"),
	})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, resp.DiscountApplied, 1e-9)
	assert.Zero(t, resp.PricePaid, "price never goes negative")
}

func TestPurchasePackage_ReferralCodeRejections(t *testing.T) {
	db, svc := newPurchaseFixture(t)
	user := seedUser(t, db, model.RoleUser)
	pkg := seedPackage(t, db, user.ID)

	_, err := svc.PurchasePackage(user.ID, dto.PurchasePackageRequest{
		PackageID:    pkg.ID,
		ReferralCode: strPtr("NOSUCH"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	inactive := seedReferralCode(t, db, "OFF", model.DiscountFixed, 10, 5)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)
	_, err = svc.PurchasePackage(user.ID, dto.PurchasePackageRequest{
		PackageID:    pkg.ID,
		ReferralCode: strPtr("OFF"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	expired := seedReferralCode(t, db, "LATE", model.DiscountFixed, 10, 5)
	require.NoError(t, db.Model(expired).Update("expires_at", time.Now().Add(-time.Hour)).Error)
	_, err = svc.PurchasePackage(user.ID, dto.PurchasePackageRequest{
		PackageID:    pkg.ID,
		ReferralCode: strPtr("LATE"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	drained := seedReferralCode(t, db, "GONE", model.DiscountFixed, 10, 1)
	require.NoError(t, db.Model(drained).Update("used_count", 1).Error)
	_, err = svc.PurchasePackage(user.ID, dto.PurchasePackageRequest{
		PackageID:    pkg.ID,
		ReferralCode: strPtr("GONE"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestApproveAndRevokePackagePurchase(t *testing.T) {
	db, svc := newPurchaseFixture(t)
	user := seedUser(t, db, model.RoleUser)
	pkg := seedPackage(t, db, user.ID)

	created, err := svc.PurchasePackage(user.ID, dto.PurchasePackageRequest{PackageID: pkg.ID})
	require.NoError(t, err)

	expiry := time.Now().Add(30 * 24 * time.Hour)
	approved, err := svc.ApprovePackagePurchase(created.ID, dto.PurchaseExpiryDTO{ExpiresAt: &expiry})
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	require.NotNil(t, approved.ExpiresAt)

	access := NewAccessService(repository.NewPurchaseRepository(db))
	assert.True(t, access.HasPackageAccess(user.ID, pkg.ID))

	revoked, err := svc.RevokePackagePurchase(created.ID)
	require.NoError(t, err)
	assert.False(t, revoked.Approved)
	assert.False(t, access.HasPackageAccess(user.ID, pkg.ID))

	_, err = svc.ApprovePackagePurchase(99999, dto.PurchaseExpiryDTO{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePackagePurchase_AllowsRepurchase(t *testing.T) {
	db, svc := newPurchaseFixture(t)
	user := seedUser(t, db, model.RoleUser)
	pkg := seedPackage(t, db, user.ID)

	created, err := svc.PurchasePackage(user.ID, dto.PurchasePackageRequest{PackageID: pkg.ID})
	require.NoError(t, err)
	require.NoError(t, svc.DeletePackagePurchase(created.ID))

	// The row is gone outright; a soft-deleted row would still hold the
	// (user_id, package_id) unique index and block buying again.
	var count int64
	require.NoError(t, db.Unscoped().Model(&model.PackagePurchase{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)

	again, err := svc.PurchasePackage(user.ID, dto.PurchasePackageRequest{PackageID: pkg.ID})
	require.NoError(t, err, "deleting a purchase must allow buying the package again")
	assert.False(t, again.Approved)
}

func TestDeleteBundlePurchase_AllowsRepurchase(t *testing.T) {
	db, svc := newPurchaseFixture(t)
	user := seedUser(t, db, model.RoleUser)
	pkg := seedPackage(t, db, user.ID)
	bundle := seedBundleWithPackages(t, db, pkg.ID)

	created, err := svc.PurchaseBundle(user.ID, dto.PurchaseBundleRequest{BundleID: bundle.ID})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteBundlePurchase(created.ID))

	var count int64
	require.NoError(t, db.Unscoped().Model(&model.BundlePurchase{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err = svc.PurchaseBundle(user.ID, dto.PurchaseBundleRequest{BundleID: bundle.ID})
	require.NoError(t, err, "deleting a purchase must allow buying the bundle again")
}

func TestPurchaseBundleAndMyPurchases(t *testing.T) {
	db, svc := newPurchaseFixture(t)
	user := seedUser(t, db, model.RoleUser)
	pkg := seedPackage(t, db, user.ID)
	bundle := seedBundleWithPackages(t, db, pkg.ID)

	_, err := svc.PurchaseBundle(user.ID, dto.PurchaseBundleRequest{BundleID: bundle.ID})
	require.NoError(t, err)
	_, err = svc.PurchaseBundle(user.ID, dto.PurchaseBundleRequest{BundleID: bundle.ID})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = svc.PurchasePackage(user.ID, dto.PurchasePackageRequest{PackageID: pkg.ID})
	require.NoError(t, err)

	mine, err := svc.MyPurchases(user.ID)
	require.NoError(t, err)
	assert.Len(t, mine.Packages, 1)
	assert.Len(t, mine.Bundles, 1)
	assert.Equal(t, "Practice Set", mine.Packages[0].Title)
	assert.Equal(t, "Starter Bundle", mine.Bundles[0].Title)
}
