package model

import (
	"time"

	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)

type ReferralCode struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Code          string         `json:"code" gorm:"not null;uniqueIndex"` // stored uppercase
	DiscountType  DiscountType   `json:"discount_type" gorm:"type:varchar(16);not null"`
	DiscountValue float64        `json:"discount_value" gorm:"not null"`
	Quota         int            `json:"quota" gorm:"not null"`
	UsedCount     int            `json:"used_count" gorm:"default:0"`
	IsActive      bool           `json:"is_active" gorm:"default:true"`
	ExpiresAt     *time.Time     `json:"expires_at,omitempty"`
	CreatedBy     uint           `json:"created_by" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
