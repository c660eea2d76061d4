package service

import (
	"testing"
	"time"

	"github.com/lshigami/Oranguru/internal/model"
	"github.com/lshigami/Oranguru/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAccessFixture(t *testing.T) (*gorm.DB, AccessService) {
	t.Helper()
	db := newTestDB(t)
	return db, NewAccessService(repository.NewPurchaseRepository(db))
}

func TestHasPackageAccess_NoPurchase(t *testing.T) {
	db, svc := newAccessFixture(t)
	user := seedUser(t, db, model.RoleUser)
	pkg := seedPackage(t, db, user.ID)

	assert.False(t, svc.HasPackageAccess(user.ID, pkg.ID))
	assert.False(t, svc.HasPackageAccess(99999, pkg.ID), "unknown user resolves to false, not an error")
	assert.False(t, svc.HasPackageAccess(user.ID, 99999), "unknown package resolves to false, not an error")
}

func TestHasPackageAccess_DirectPurchase(t *testing.T) {
	db, svc := newAccessFixture(t)
	user := seedUser(t, db, model.RoleUser)
	pkg := seedPackage(t, db, user.ID)

	purchase := &model.PackagePurchase{
		UserID: user.ID, PackageID: pkg.ID,
		OriginalPrice: 100, PricePaid: 100,
	}
	require.NoError(t, db.Create(purchase).Error)
	assert.False(t, svc.HasPackageAccess(user.ID, pkg.ID), "pending purchase grants nothing")

	require.NoError(t, db.Model(purchase).Update("approved", true).Error)
	assert.True(t, svc.HasPackageAccess(user.ID, pkg.ID))

	require.NoError(t, db.Model(purchase).Update("expires_at", time.Now().Add(-time.Hour)).Error)
	assert.False(t, svc.HasPackageAccess(user.ID, pkg.ID), "expired entitlement grants nothing")

	require.NoError(t, db.Model(purchase).Update("expires_at", time.Now().Add(time.Hour)).Error)
	assert.True(t, svc.HasPackageAccess(user.ID, pkg.ID))
}

func TestHasPackageAccess_ThroughBundle(t *testing.T) {
	db, svc := newAccessFixture(t)
	user := seedUser(t, db, model.RoleUser)
	pkg := seedPackage(t, db, user.ID)
	bundle := seedBundleWithPackages(t, db, pkg.ID)

	purchase := &model.BundlePurchase{
		UserID: user.ID, BundleID: bundle.ID,
		OriginalPrice: 150, PricePaid: 150,
	}
	require.NoError(t, db.Create(purchase).Error)
	assert.False(t, svc.HasPackageAccess(user.ID, pkg.ID))

	require.NoError(t, db.Model(purchase).Update("approved", true).Error)
	assert.True(t, svc.HasPackageAccess(user.ID, pkg.ID))

	require.NoError(t, db.Model(purchase).Update("expires_at", time.Now().Add(-time.Hour)).Error)
	assert.False(t, svc.HasPackageAccess(user.ID, pkg.ID))
}

func TestHasPackageAccess_BundleMembershipIsLive(t *testing.T) {
	db, svc := newAccessFixture(t)
	user := seedUser(t, db, model.RoleUser)
	pkg := seedPackage(t, db, user.ID)
	other := seedPackage(t, db, user.ID)
	bundle := seedBundleWithPackages(t, db, pkg.ID)

	require.NoError(t, db.Create(&model.BundlePurchase{
		UserID: user.ID, BundleID: bundle.ID,
		OriginalPrice: 150, PricePaid: 150, Approved: true,
	}).Error)
	require.True(t, svc.HasPackageAccess(user.ID, pkg.ID))
	assert.False(t, svc.HasPackageAccess(user.ID, other.ID))

	// Swap membership: the purchased bundle now contains the other package.
	require.NoError(t, db.Where("bundle_id = ?", bundle.ID).Delete(&model.BundlePackage{}).Error)
	require.NoError(t, db.Create(&model.BundlePackage{BundleID: bundle.ID, PackageID: other.ID}).Error)

	assert.False(t, svc.HasPackageAccess(user.ID, pkg.ID), "removed membership revokes access immediately")
	assert.True(t, svc.HasPackageAccess(user.ID, other.ID), "added membership grants access immediately")
}

func TestHasPackageAccess_DirectPurchaseDecidesOutright(t *testing.T) {
	db, svc := newAccessFixture(t)
	user := seedUser(t, db, model.RoleUser)
	pkg := seedPackage(t, db, user.ID)
	bundle := seedBundleWithPackages(t, db, pkg.ID)

	// Approved bundle purchase would grant access on its own.
	require.NoError(t, db.Create(&model.BundlePurchase{
		UserID: user.ID, BundleID: bundle.ID,
		OriginalPrice: 150, PricePaid: 150, Approved: true,
	}).Error)
	require.True(t, svc.HasPackageAccess(user.ID, pkg.ID))

	// A pending direct purchase takes precedence and denies; the bundle
	// path is never consulted once a direct record exists.
	require.NoError(t, db.Create(&model.PackagePurchase{
		UserID: user.ID, PackageID: pkg.ID,
		OriginalPrice: 100, PricePaid: 100,
	}).Error)
	assert.False(t, svc.HasPackageAccess(user.ID, pkg.ID))
}

func TestHasBundleAccess(t *testing.T) {
	db, svc := newAccessFixture(t)
	user := seedUser(t, db, model.RoleUser)
	pkg := seedPackage(t, db, user.ID)
	bundle := seedBundleWithPackages(t, db, pkg.ID)

	assert.False(t, svc.HasBundleAccess(user.ID, bundle.ID))

	purchase := &model.BundlePurchase{
		UserID: user.ID, BundleID: bundle.ID,
		OriginalPrice: 150, PricePaid: 150, Approved: true,
	}
	require.NoError(t, db.Create(purchase).Error)
	assert.True(t, svc.HasBundleAccess(user.ID, bundle.ID))

	require.NoError(t, db.Model(purchase).Update("expires_at", time.Now().Add(-time.Minute)).Error)
	assert.False(t, svc.HasBundleAccess(user.ID, bundle.ID))
}
