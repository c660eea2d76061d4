package dto

import "time"

// --- Course management ---

type CourseCreateDTO struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// --- Question management ---

type AnswerCreateDTO struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionCreateDTO carries a question with its full answer set. The 2-6
// answer range is enforced here; the at-least-one-correct rule is checked
// in the service because binding tags cannot express it.
type QuestionCreateDTO struct {
	Text                string            `json:"text" binding:"required"`
	Explanation         *string           `json:"explanation"`
	ImageURL            *string           `json:"image_url"`
	ExplanationImageURL *string           `json:"explanation_image_url"`
	Answers             []AnswerCreateDTO `json:"answers" binding:"required,min=2,max=6,dive"`
}

// --- Package management ---

type PackageCreateDTO struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	Price          float64    `json:"price" binding:"required,gte=0"`
	TimeLimit      *int       `json:"time_limit"`
	AvailableFrom  *time.Time `json:"available_from"`
	AvailableUntil *time.Time `json:"available_until"`
}

type PackageUpdateDTO struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Price          *float64   `json:"price"`
	IsActive       *bool      `json:"is_active"`
	TimeLimit      *int       `json:"time_limit"`
	AvailableFrom  *time.Time `json:"available_from"`
	AvailableUntil *time.Time `json:"available_until"`
}

type AddQuestionsDTO struct {
	QuestionIDs []uint `json:"question_ids" binding:"required,min=1"`
}

// --- Bundle management ---

type BundleCreateDTO struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Discount    float64 `json:"discount" binding:"gte=0"`
	PackageIDs  []uint  `json:"package_ids" binding:"required,min=1"`
}

type BundleUpdateDTO struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Discount    *float64 `json:"discount"`
	IsActive    *bool    `json:"is_active"`
	PackageIDs  []uint   `json:"package_ids"`
}

// --- Referral codes ---

type ReferralCodeCreateDTO struct {
	Code          string     `json:"code" binding:"required,min=3,max=32"`
	DiscountType  string     `json:"discount_type" binding:"required,oneof=PERCENTAGE FIXED"`
	DiscountValue float64    `json:"discount_value" binding:"required,gt=0"`
	Quota         int        `json:"quota" binding:"required,gt=0"`
	ExpiresAt     *time.Time `json:"expires_at"`
}

type ReferralCodeUpdateDTO struct {
	DiscountType  *string    `json:"discount_type" binding:"omitempty,oneof=PERCENTAGE FIXED"`
	DiscountValue *float64   `json:"discount_value" binding:"omitempty,gt=0"`
	Quota         *int       `json:"quota" binding:"omitempty,gt=0"`
	IsActive      *bool      `json:"is_active"`
	ExpiresAt     *time.Time `json:"expires_at"`
}

// --- Purchase administration ---

type PurchaseExpiryDTO struct {
	ExpiresAt *time.Time `json:"expires_at"`
}

// --- User administration ---

type UserRoleUpdateDTO struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

// --- Admin reads ---

type AdminAttemptListResponse struct {
	Attempts   []AttemptSummaryResponse `json:"attempts"`
	Pagination OffsetPagination         `json:"pagination"`
}

type OffsetPagination struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

type QuizStatsResponse struct {
	TotalAttempts    int64   `json:"total_attempts"`
	AverageScore     float64 `json:"average_score"`
	AverageTimeSpent float64 `json:"average_time_spent"`
	PassRate         float64 `json:"pass_rate"` // share of attempts scoring >= 80
	PassedCount      int64   `json:"passed_count"`
}
