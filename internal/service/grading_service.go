package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Oranguru/internal/dto"
	"github.com/lshigami/Oranguru/internal/model"
	"github.com/lshigami/Oranguru/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// GradingService scores submitted attempts and owns every read over the
// persisted attempt records. Attempts are write-once: a repeat submission
// produces a second record, never an update to the first.
type GradingService interface {
	SubmitAttempt(userID uint, req dto.SubmitAttemptRequest) (*dto.AttemptDetailResponse, error)
	GetAttempt(attemptID, requesterID uint, isAdmin bool) (*dto.AttemptDetailResponse, error)
	ListUserAttempts(userID uint, packageID *uint) ([]dto.AttemptSummaryResponse, error)
	ListAllAttempts(filter repository.AttemptFilter) (*dto.AdminAttemptListResponse, error)
	Stats(packageID *uint) (*dto.QuizStatsResponse, error)
}

type gradingService struct {
	packageRepo repository.PackageRepository
	attemptRepo repository.QuizAttemptRepository
	accessSvc   AccessService
}

func NewGradingService(
	packageRepo repository.PackageRepository,
	attemptRepo repository.QuizAttemptRepository,
	accessSvc AccessService,
) GradingService {
	return &gradingService{
		packageRepo: packageRepo,
		attemptRepo: attemptRepo,
		accessSvc:   accessSvc,
	}
}

// passThreshold is the score, in percent, at or above which an attempt
// counts as passed in the aggregate stats.
const passThreshold = 80.0

// questionPoints computes the credit for one submitted answer.
// correctCount is the number of answers flagged correct on the question:
// one correct answer grades the traditional 1-or-0, several correct
// answers grade 1/n for any one of them, and a question with none (an
// authoring defect) grades zero rather than erroring. The maximum
// attainable per question is always exactly 1.
func questionPoints(correctCount int, isCorrect bool) float64 {
	if !isCorrect || correctCount == 0 {
		return 0
	}
	if correctCount == 1 {
		return 1
	}
	return 1.0 / float64(correctCount)
}

// SubmitAttempt grades a submission and persists the result. Preconditions
// run in a fixed order before anything is written: required fields, then
// entitlement, then package existence, then question membership. Any
// failure aborts the whole submission; there is no partial persistence.
func (s *gradingService) SubmitAttempt(userID uint, req dto.SubmitAttemptRequest) (*dto.AttemptDetailResponse, error) {
	if req.PackageID == 0 {
		return nil, fmt.Errorf("%w: package_id", ErrMissingField)
	}
	if len(req.Answers) == 0 {
		return nil, fmt.Errorf("%w: answers", ErrMissingField)
	}
	if req.TimeSpent == nil {
		return nil, fmt.Errorf("%w: time_spent", ErrMissingField)
	}
	if req.StartedAt == nil {
		return nil, fmt.Errorf("%w: started_at", ErrMissingField)
	}

	if !s.accessSvc.HasPackageAccess(userID, req.PackageID) {
		return nil, ErrAccessDenied
	}

	pkg, err := s.packageRepo.FindByIDWithQuestions(req.PackageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: package %d", ErrNotFound, req.PackageID)
		}
		return nil, fmt.Errorf("loading package %d: %w", req.PackageID, err)
	}

	questionMap := make(map[uint]model.Question, len(pkg.PackageQuestions))
	for _, pq := range pkg.PackageQuestions {
		questionMap[pq.QuestionID] = pq.Question
	}

	totalScore := 0.0
	quizAnswers := make([]model.QuizAnswer, 0, len(req.Answers))
	for _, submitted := range req.Answers {
		question, ok := questionMap[submitted.QuestionID]
		if !ok {
			return nil, fmt.Errorf("%w: question %d", ErrInvalidQuestionReference, submitted.QuestionID)
		}

		correctCount := 0
		isCorrect := false
		for _, answer := range question.Answers {
			if answer.IsCorrect {
				correctCount++
			}
			if submitted.SelectedAnswerID != nil && answer.ID == *submitted.SelectedAnswerID {
				isCorrect = answer.IsCorrect
			}
		}

		totalScore += questionPoints(correctCount, isCorrect)
		quizAnswers = append(quizAnswers, model.QuizAnswer{
			QuestionID:       submitted.QuestionID,
			SelectedAnswerID: submitted.SelectedAnswerID,
			IsCorrect:        isCorrect,
		})
	}

	// Skipped questions still count: the denominator is the package's
	// full question set, not the number of answers submitted.
	totalQuestions := len(pkg.PackageQuestions)
	score := 0.0
	if totalQuestions > 0 {
		score = (totalScore / float64(totalQuestions)) * 100
	}

	attempt := model.QuizAttempt{
		UserID:         userID,
		PackageID:      req.PackageID,
		Score:          score,
		CorrectAnswers: int(math.Round(totalScore)),
		TotalQuestions: totalQuestions,
		TimeSpent:      *req.TimeSpent,
		StartedAt:      *req.StartedAt,
		CompletedAt:    time.Now(),
		Answers:        quizAnswers,
	}

	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("packageID", req.PackageID).
			Msg("SubmitAttempt: failed to persist attempt")
		return nil, fmt.Errorf("persisting attempt: %w", err)
	}

	log.Info().Uint("attemptID", attempt.ID).Uint("userID", userID).Uint("packageID", req.PackageID).
		Float64("score", score).Int("totalQuestions", totalQuestions).
		Msg("Quiz attempt graded")

	detailed, err := s.attemptRepo.FindByIDWithDetails(attempt.ID)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("SubmitAttempt: failed to reload attempt for response")
		return nil, fmt.Errorf("reloading attempt %d: %w", attempt.ID, err)
	}
	return buildAttemptDetail(detailed), nil
}

// GetAttempt returns one attempt with full per-question detail. Only the
// owner or an admin may read it.
func (s *gradingService) GetAttempt(attemptID, requesterID uint, isAdmin bool) (*dto.AttemptDetailResponse, error) {
	attempt, err := s.attemptRepo.FindByIDWithDetails(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attempt %d", ErrNotFound, attemptID)
		}
		return nil, fmt.Errorf("loading attempt %d: %w", attemptID, err)
	}
	if !isAdmin && attempt.UserID != requesterID {
		return nil, ErrAccessDenied
	}
	return buildAttemptDetail(attempt), nil
}

func (s *gradingService) ListUserAttempts(userID uint, packageID *uint) ([]dto.AttemptSummaryResponse, error) {
	attempts, err := s.attemptRepo.FindByUser(userID, packageID)
	if err != nil {
		return nil, fmt.Errorf("listing attempts for user %d: %w", userID, err)
	}

	summaries := make([]dto.AttemptSummaryResponse, 0, len(attempts))
	for _, attempt := range attempts {
		summaries = append(summaries, toAttemptSummary(&attempt))
	}
	return summaries, nil
}

func (s *gradingService) ListAllAttempts(filter repository.AttemptFilter) (*dto.AdminAttemptListResponse, error) {
	attempts, total, err := s.attemptRepo.FindAll(filter)
	if err != nil {
		return nil, fmt.Errorf("listing attempts: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	resp := &dto.AdminAttemptListResponse{
		Attempts: make([]dto.AttemptSummaryResponse, 0, len(attempts)),
		Pagination: dto.OffsetPagination{
			Total:  total,
			Limit:  limit,
			Offset: filter.Offset,
		},
	}
	for _, attempt := range attempts {
		resp.Attempts = append(resp.Attempts, toAttemptSummary(&attempt))
	}
	return resp, nil
}

func (s *gradingService) Stats(packageID *uint) (*dto.QuizStatsResponse, error) {
	stats, err := s.attemptRepo.Stats(packageID, passThreshold)
	if err != nil {
		return nil, fmt.Errorf("computing quiz stats: %w", err)
	}

	resp := &dto.QuizStatsResponse{
		TotalAttempts:    stats.TotalAttempts,
		AverageScore:     stats.AverageScore,
		AverageTimeSpent: stats.AverageTimeSpent,
		PassedCount:      stats.PassedCount,
	}
	if stats.TotalAttempts > 0 {
		resp.PassRate = float64(stats.PassedCount) / float64(stats.TotalAttempts) * 100
	}
	return resp, nil
}

func toAttemptSummary(attempt *model.QuizAttempt) dto.AttemptSummaryResponse {
	var summary dto.AttemptSummaryResponse
	copier.Copy(&summary, attempt)
	summary.PackageTitle = attempt.Package.Title
	return summary
}

// buildAttemptDetail shapes a fully preloaded attempt for the review UI:
// every answer row carries its question with the complete option set,
// correctness flags included, so the caller needs no follow-up query.
func buildAttemptDetail(attempt *model.QuizAttempt) *dto.AttemptDetailResponse {
	var resp dto.AttemptDetailResponse
	copier.Copy(&resp, attempt)
	resp.PackageTitle = attempt.Package.Title

	resp.Answers = make([]dto.AttemptAnswerResponse, 0, len(attempt.Answers))
	for _, answer := range attempt.Answers {
		entry := dto.AttemptAnswerResponse{
			ID:               answer.ID,
			QuestionID:       answer.QuestionID,
			SelectedAnswerID: answer.SelectedAnswerID,
			IsCorrect:        answer.IsCorrect,
			Question:         toReviewQuestion(&answer.Question),
		}
		resp.Answers = append(resp.Answers, entry)
	}
	return &resp
}

// toReviewQuestion exposes correctness and explanation: by the time a
// learner reviews an attempt they are entitled to see what was right.
func toReviewQuestion(question *model.Question) dto.QuestionResponse {
	resp := dto.QuestionResponse{
		ID:                  question.ID,
		CourseID:            question.CourseID,
		Text:                question.Text,
		Explanation:         question.Explanation,
		ExplanationImageURL: question.ExplanationImageURL,
		ImageURL:            question.ImageURL,
		CreatedAt:           question.CreatedAt,
	}
	resp.Answers = make([]dto.AnswerOptionResponse, 0, len(question.Answers))
	for _, answer := range question.Answers {
		correct := answer.IsCorrect
		resp.Answers = append(resp.Answers, dto.AnswerOptionResponse{
			ID:        answer.ID,
			Text:      answer.Text,
			IsCorrect: &correct,
		})
	}
	return resp
}
