package model

import (
	"time"

	"gorm.io/gorm"
)

// Package is a purchasable, ordered set of questions. Inactive packages are
// hidden from users instead of hard-deleted so historical attempts keep a
// valid reference.
type Package struct {
	ID               uint              `gorm:"primarykey" json:"id"`
	Title            string            `json:"title" gorm:"not null"`
	Description      string            `json:"description,omitempty"`
	Price            float64           `json:"price" gorm:"not null"`
	IsActive         bool              `json:"is_active" gorm:"default:true"`
	TimeLimit        *int              `json:"time_limit,omitempty"` // minutes
	AvailableFrom    *time.Time        `json:"available_from,omitempty"`
	AvailableUntil   *time.Time        `json:"available_until,omitempty"`
	CreatedBy        uint              `json:"created_by" gorm:"not null"`
	PackageQuestions []PackageQuestion `json:"package_questions,omitempty" gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	DeletedAt        gorm.DeletedAt    `gorm:"index" json:"-"`
}

// PackageQuestion links a question into a package at a display position.
// A question may appear in many packages but only once per package.
type PackageQuestion struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	PackageID  uint      `json:"package_id" gorm:"not null;uniqueIndex:idx_package_question"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_package_question"`
	Question   Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Order      int       `json:"order" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}
