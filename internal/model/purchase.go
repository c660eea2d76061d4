package model

import (
	"time"

	"gorm.io/gorm"
)

// PackagePurchase records one user's claim on one package. It grants
// nothing until an admin flips Approved, and stops granting once ExpiresAt
// passes. The unique index rejects duplicate claims outright.
type PackagePurchase struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UserID          uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_user_package_purchase"`
	User            User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	PackageID       uint           `json:"package_id" gorm:"not null;uniqueIndex:idx_user_package_purchase"`
	Package         Package        `json:"package,omitempty" gorm:"foreignKey:PackageID"`
	OriginalPrice   float64        `json:"original_price" gorm:"not null"`
	PricePaid       float64        `json:"price_paid" gorm:"not null"`
	DiscountApplied float64        `json:"discount_applied" gorm:"default:0"`
	ReferralCodeID  *uint          `json:"referral_code_id,omitempty"`
	ReferralCode    *ReferralCode  `json:"referral_code,omitempty" gorm:"foreignKey:ReferralCodeID"`
	Approved        bool           `json:"approved" gorm:"default:false"`
	ProofImageURL   *string        `json:"proof_image_url,omitempty"`
	ExpiresAt       *time.Time     `json:"expires_at,omitempty"`
	PurchasedAt     time.Time      `json:"purchased_at" gorm:"autoCreateTime"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

type BundlePurchase struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UserID          uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_user_bundle_purchase"`
	User            User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	BundleID        uint           `json:"bundle_id" gorm:"not null;uniqueIndex:idx_user_bundle_purchase"`
	Bundle          Bundle         `json:"bundle,omitempty" gorm:"foreignKey:BundleID"`
	OriginalPrice   float64        `json:"original_price" gorm:"not null"`
	PricePaid       float64        `json:"price_paid" gorm:"not null"`
	DiscountApplied float64        `json:"discount_applied" gorm:"default:0"`
	ReferralCodeID  *uint          `json:"referral_code_id,omitempty"`
	ReferralCode    *ReferralCode  `json:"referral_code,omitempty" gorm:"foreignKey:ReferralCodeID"`
	Approved        bool           `json:"approved" gorm:"default:false"`
	ProofImageURL   *string        `json:"proof_image_url,omitempty"`
	ExpiresAt       *time.Time     `json:"expires_at,omitempty"`
	PurchasedAt     time.Time      `json:"purchased_at" gorm:"autoCreateTime"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
