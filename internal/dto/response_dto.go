package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// --- Auth / users ---

type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Banned    bool      `json:"banned"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// --- Courses / questions ---

type CourseResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AnswerOptionResponse is role-shaped: IsCorrect is populated for admins
// and nil for everyone else, so the field disappears from the JSON rather
// than leaking as false.
type AnswerOptionResponse struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	IsCorrect *bool  `json:"is_correct,omitempty"`
}

type QuestionResponse struct {
	ID                  uint                   `json:"id"`
	CourseID            uint                   `json:"course_id"`
	Course              *CourseResponse        `json:"course,omitempty"`
	Text                string                 `json:"text"`
	Explanation         *string                `json:"explanation,omitempty"`           // admins only
	ExplanationImageURL *string                `json:"explanation_image_url,omitempty"` // admins only
	ImageURL            *string                `json:"image_url,omitempty"`
	Answers             []AnswerOptionResponse `json:"answers"`
	CreatedAt           time.Time              `json:"created_at"`
}

type QuestionListResponse struct {
	Course     CourseResponse     `json:"course"`
	Questions  []QuestionResponse `json:"questions"`
	Pagination Pagination         `json:"pagination"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// --- Packages / bundles ---

type PackageQuestionResponse struct {
	Order    int              `json:"order"`
	Question QuestionResponse `json:"question"`
}

type PackageResponse struct {
	ID             uint                      `json:"id"`
	Title          string                    `json:"title"`
	Description    string                    `json:"description,omitempty"`
	Price          float64                   `json:"price"`
	IsActive       bool                      `json:"is_active"`
	TimeLimit      *int                      `json:"time_limit,omitempty"`
	AvailableFrom  *time.Time                `json:"available_from,omitempty"`
	AvailableUntil *time.Time                `json:"available_until,omitempty"`
	QuestionCount  int                       `json:"question_count"`
	Questions      []PackageQuestionResponse `json:"questions,omitempty"`
	CreatedAt      time.Time                 `json:"created_at"`
}

type BundlePackageResponse struct {
	PackageID uint    `json:"package_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
}

type BundleResponse struct {
	ID          uint                    `json:"id"`
	Title       string                  `json:"title"`
	Description string                  `json:"description,omitempty"`
	Price       float64                 `json:"price"`
	Discount    float64                 `json:"discount"`
	IsActive    bool                    `json:"is_active"`
	Packages    []BundlePackageResponse `json:"packages,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

// --- Purchases ---

type PurchaseResponse struct {
	ID              uint       `json:"id"`
	UserID          uint       `json:"user_id"`
	PackageID       *uint      `json:"package_id,omitempty"`
	BundleID        *uint      `json:"bundle_id,omitempty"`
	Title           string     `json:"title"`
	OriginalPrice   float64    `json:"original_price"`
	PricePaid       float64    `json:"price_paid"`
	DiscountApplied float64    `json:"discount_applied,omitempty"`
	Approved        bool       `json:"approved"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	PurchasedAt     time.Time  `json:"purchased_at"`
}

type MyPurchasesResponse struct {
	Packages []PurchaseResponse `json:"packages"`
	Bundles  []PurchaseResponse `json:"bundles"`
}

// --- Quiz attempts ---

// AttemptAnswerResponse pairs one snapshot row with enough resolved
// question and answer detail for an immediate review UI, no follow-up
// query required.
type AttemptAnswerResponse struct {
	ID               uint             `json:"id"`
	QuestionID       uint             `json:"question_id"`
	Question         QuestionResponse `json:"question"`
	SelectedAnswerID *uint            `json:"selected_answer_id,omitempty"`
	IsCorrect        bool             `json:"is_correct"`
}

type AttemptDetailResponse struct {
	ID             uint                    `json:"id"`
	UserID         uint                    `json:"user_id"`
	PackageID      uint                    `json:"package_id"`
	PackageTitle   string                  `json:"package_title,omitempty"`
	Score          float64                 `json:"score"`
	CorrectAnswers int                     `json:"correct_answers"`
	TotalQuestions int                     `json:"total_questions"`
	TimeSpent      int                     `json:"time_spent"`
	StartedAt      time.Time               `json:"started_at"`
	CompletedAt    time.Time               `json:"completed_at"`
	Answers        []AttemptAnswerResponse `json:"answers"`
}

type AttemptSummaryResponse struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	PackageID      uint      `json:"package_id"`
	PackageTitle   string    `json:"package_title,omitempty"`
	Score          float64   `json:"score"`
	CorrectAnswers int       `json:"correct_answers"`
	TotalQuestions int       `json:"total_questions"`
	TimeSpent      int       `json:"time_spent"`
	CompletedAt    time.Time `json:"completed_at"`
}
