package repository

import (
	"github.com/lshigami/Oranguru/internal/model"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	CreatePackagePurchase(purchase *model.PackagePurchase) error
	CreateBundlePurchase(purchase *model.BundlePurchase) error
	FindPackagePurchase(userID, packageID uint) (*model.PackagePurchase, error)
	FindBundlePurchase(userID, bundleID uint) (*model.BundlePurchase, error)
	// FindApprovedBundlePurchasesForPackage returns the user's approved
	// bundle purchases whose bundle currently contains the package.
	FindApprovedBundlePurchasesForPackage(userID, packageID uint) ([]model.BundlePurchase, error)
	FindPackagePurchasesByUser(userID uint) ([]model.PackagePurchase, error)
	FindBundlePurchasesByUser(userID uint) ([]model.BundlePurchase, error)
	FindAllPackagePurchases() ([]model.PackagePurchase, error)
	FindAllBundlePurchases() ([]model.BundlePurchase, error)
	FindPackagePurchaseByID(id uint) (*model.PackagePurchase, error)
	FindBundlePurchaseByID(id uint) (*model.BundlePurchase, error)
	UpdatePackagePurchase(purchase *model.PackagePurchase) error
	UpdateBundlePurchase(purchase *model.BundlePurchase) error
	DeletePackagePurchase(id uint) error
	DeleteBundlePurchase(id uint) error
}

type purchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) CreatePackagePurchase(purchase *model.PackagePurchase) error {
	return r.db.Create(purchase).Error
}

func (r *purchaseRepository) CreateBundlePurchase(purchase *model.BundlePurchase) error {
	return r.db.Create(purchase).Error
}

func (r *purchaseRepository) FindPackagePurchase(userID, packageID uint) (*model.PackagePurchase, error) {
	var purchase model.PackagePurchase
	err := r.db.
		Where("user_id = ? AND package_id = ?", userID, packageID).
		First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) FindBundlePurchase(userID, bundleID uint) (*model.BundlePurchase, error) {
	var purchase model.BundlePurchase
	err := r.db.
		Where("user_id = ? AND bundle_id = ?", userID, bundleID).
		First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) FindApprovedBundlePurchasesForPackage(userID, packageID uint) ([]model.BundlePurchase, error) {
	var purchases []model.BundlePurchase
	err := r.db.
		Joins("JOIN bundle_packages ON bundle_packages.bundle_id = bundle_purchases.bundle_id").
		Where("bundle_purchases.user_id = ? AND bundle_purchases.approved = ? AND bundle_packages.package_id = ?",
			userID, true, packageID).
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *purchaseRepository) FindPackagePurchasesByUser(userID uint) ([]model.PackagePurchase, error) {
	var purchases []model.PackagePurchase
	err := r.db.
		Preload("Package").
		Where("user_id = ?", userID).
		Order("purchased_at desc").
		Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepository) FindBundlePurchasesByUser(userID uint) ([]model.BundlePurchase, error) {
	var purchases []model.BundlePurchase
	err := r.db.
		Preload("Bundle").
		Where("user_id = ?", userID).
		Order("purchased_at desc").
		Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepository) FindAllPackagePurchases() ([]model.PackagePurchase, error) {
	var purchases []model.PackagePurchase
	err := r.db.
		Preload("User").
		Preload("Package").
		Preload("ReferralCode").
		Order("purchased_at desc").
		Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepository) FindAllBundlePurchases() ([]model.BundlePurchase, error) {
	var purchases []model.BundlePurchase
	err := r.db.
		Preload("User").
		Preload("Bundle").
		Preload("ReferralCode").
		Order("purchased_at desc").
		Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepository) FindPackagePurchaseByID(id uint) (*model.PackagePurchase, error) {
	var purchase model.PackagePurchase
	if err := r.db.First(&purchase, id).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) FindBundlePurchaseByID(id uint) (*model.BundlePurchase, error) {
	var purchase model.BundlePurchase
	if err := r.db.First(&purchase, id).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) UpdatePackagePurchase(purchase *model.PackagePurchase) error {
	return r.db.Save(purchase).Error
}

func (r *purchaseRepository) UpdateBundlePurchase(purchase *model.BundlePurchase) error {
	return r.db.Save(purchase).Error
}

// Deletes are hard deletes: a soft-deleted row would keep holding the
// (user_id, package_id) unique index and block re-purchasing.
func (r *purchaseRepository) DeletePackagePurchase(id uint) error {
	return r.db.Unscoped().Delete(&model.PackagePurchase{}, id).Error
}

func (r *purchaseRepository) DeleteBundlePurchase(id uint) error {
	return r.db.Unscoped().Delete(&model.BundlePurchase{}, id).Error
}
