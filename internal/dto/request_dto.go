package dto

import "time"

// --- Auth ---

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --- Purchases ---

type PurchasePackageRequest struct {
	PackageID     uint    `json:"package_id" binding:"required"`
	ProofImageURL *string `json:"proof_image_url"`
	ReferralCode  *string `json:"referral_code"`
}

type PurchaseBundleRequest struct {
	BundleID      uint    `json:"bundle_id" binding:"required"`
	ProofImageURL *string `json:"proof_image_url"`
	ReferralCode  *string `json:"referral_code"`
}

// --- Quiz attempts ---

// SubmittedAnswer is one selection within a submission. A nil
// SelectedAnswerID means the question was left unanswered; it still counts
// against the denominator and grades as incorrect.
type SubmittedAnswer struct {
	QuestionID       uint  `json:"question_id" binding:"required"`
	SelectedAnswerID *uint `json:"selected_answer_id"`
}

// SubmitAttemptRequest carries everything the grading engine needs.
// TimeSpent and StartedAt are caller-reported; the server never tracks an
// in-progress attempt.
type SubmitAttemptRequest struct {
	PackageID uint              `json:"package_id" binding:"required"`
	Answers   []SubmittedAnswer `json:"answers" binding:"required,min=1,dive"`
	TimeSpent *int              `json:"time_spent" binding:"required"` // seconds
	StartedAt *time.Time        `json:"started_at" binding:"required"`
}
