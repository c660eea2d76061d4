package model

import (
	"time"

	"gorm.io/gorm"
)

// Bundle groups packages under one price. Entitlement through a bundle is
// evaluated against its current membership, not a snapshot taken at
// purchase time.
type Bundle struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	Title          string          `json:"title" gorm:"not null"`
	Description    string          `json:"description,omitempty"`
	Price          float64         `json:"price" gorm:"not null"`
	Discount       float64         `json:"discount" gorm:"default:0"`
	IsActive       bool            `json:"is_active" gorm:"default:true"`
	CreatedBy      uint            `json:"created_by" gorm:"not null"`
	BundlePackages []BundlePackage `json:"bundle_packages,omitempty" gorm:"foreignKey:BundleID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

type BundlePackage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	BundleID  uint      `json:"bundle_id" gorm:"not null;uniqueIndex:idx_bundle_package"`
	PackageID uint      `json:"package_id" gorm:"not null;uniqueIndex:idx_bundle_package"`
	Package   Package   `json:"package,omitempty" gorm:"foreignKey:PackageID"`
	CreatedAt time.Time `json:"created_at"`
}
