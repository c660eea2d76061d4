package model

import (
	"time"

	"gorm.io/gorm"
)

// Question belongs to exactly one course and carries 2-6 answers, at least
// one of which is marked correct. That invariant is enforced at authoring
// time; grading tolerates violations defensively.
type Question struct {
	ID                  uint           `gorm:"primarykey" json:"id"`
	CourseID            uint           `json:"course_id" gorm:"not null;index"`
	Course              Course         `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Text                string         `json:"text" gorm:"type:text;not null"`
	Explanation         *string        `json:"explanation,omitempty" gorm:"type:text"` // admin-only visibility
	ImageURL            *string        `json:"image_url,omitempty"`
	ExplanationImageURL *string        `json:"explanation_image_url,omitempty"`
	Answers             []Answer       `json:"answers,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}
