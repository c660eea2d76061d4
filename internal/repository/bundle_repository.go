package repository

import (
	"github.com/lshigami/Oranguru/internal/model"
	"gorm.io/gorm"
)

type BundleRepository interface {
	Create(bundle *model.Bundle) error
	FindByID(id uint) (*model.Bundle, error)
	FindByIDWithPackages(id uint) (*model.Bundle, error)
	FindAll(activeOnly bool) ([]model.Bundle, error)
	Update(bundle *model.Bundle) error
	Delete(id uint) error
	ReplacePackages(bundleID uint, packageIDs []uint) error
}

type bundleRepository struct {
	db *gorm.DB
}

func NewBundleRepository(db *gorm.DB) BundleRepository {
	return &bundleRepository{db: db}
}

func (r *bundleRepository) Create(bundle *model.Bundle) error {
	return r.db.Create(bundle).Error
}

func (r *bundleRepository) FindByID(id uint) (*model.Bundle, error) {
	var bundle model.Bundle
	if err := r.db.First(&bundle, id).Error; err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (r *bundleRepository) FindByIDWithPackages(id uint) (*model.Bundle, error) {
	var bundle model.Bundle
	err := r.db.
		Preload("BundlePackages.Package").
		First(&bundle, id).Error
	if err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (r *bundleRepository) FindAll(activeOnly bool) ([]model.Bundle, error) {
	query := r.db.Model(&model.Bundle{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var bundles []model.Bundle
	err := query.
		Preload("BundlePackages.Package").
		Order("created_at desc").
		Find(&bundles).Error
	if err != nil {
		return nil, err
	}
	return bundles, nil
}

func (r *bundleRepository) Update(bundle *model.Bundle) error {
	return r.db.Save(bundle).Error
}

func (r *bundleRepository) Delete(id uint) error {
	return r.db.Delete(&model.Bundle{}, id).Error
}

// ReplacePackages swaps the bundle's membership wholesale. Entitlement is
// evaluated live, so the change takes effect for existing purchases
// immediately.
func (r *bundleRepository) ReplacePackages(bundleID uint, packageIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bundle_id = ?", bundleID).Delete(&model.BundlePackage{}).Error; err != nil {
			return err
		}
		for _, packageID := range packageIDs {
			bp := model.BundlePackage{BundleID: bundleID, PackageID: packageID}
			if err := tx.Create(&bp).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
