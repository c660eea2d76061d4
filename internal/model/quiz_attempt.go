package model

import (
	"time"

	"gorm.io/gorm"
)

// QuizAttempt is the immutable record of one grading event. It is written
// once, together with all of its QuizAnswer rows, and never updated:
// re-grading means a new attempt, and historical scores stay fixed even if
// question data changes later.
type QuizAttempt struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `json:"user_id" gorm:"not null;index"`
	User           User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	PackageID      uint           `json:"package_id" gorm:"not null;index"`
	Package        Package        `json:"package,omitempty" gorm:"foreignKey:PackageID"`
	Score          float64        `json:"score" gorm:"not null"`           // 0-100
	CorrectAnswers int            `json:"correct_answers" gorm:"not null"` // round(totalScore), display only
	TotalQuestions int            `json:"total_questions" gorm:"not null"`
	TimeSpent      int            `json:"time_spent" gorm:"not null"` // seconds, caller-reported
	StartedAt      time.Time      `json:"started_at" gorm:"not null"`
	CompletedAt    time.Time      `json:"completed_at" gorm:"autoCreateTime"`
	Answers        []QuizAnswer   `json:"answers,omitempty" gorm:"foreignKey:QuizAttemptID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// QuizAnswer snapshots one submitted selection. SelectedAnswerID is nil for
// a skipped question, which always grades as incorrect.
type QuizAnswer struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	QuizAttemptID    uint      `json:"quiz_attempt_id" gorm:"not null;index"`
	QuestionID       uint      `json:"question_id" gorm:"not null"`
	Question         Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedAnswerID *uint     `json:"selected_answer_id,omitempty"`
	SelectedAnswer   *Answer   `json:"selected_answer,omitempty" gorm:"foreignKey:SelectedAnswerID"`
	IsCorrect        bool      `json:"is_correct" gorm:"not null"`
	CreatedAt        time.Time `json:"created_at"`
}
