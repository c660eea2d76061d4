package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Oranguru/internal/dto"
	"github.com/lshigami/Oranguru/internal/model"
	"github.com/lshigami/Oranguru/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type QuestionService interface {
	Create(courseID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponse, error)
	Update(id uint, req dto.QuestionCreateDTO) (*dto.QuestionResponse, error)
	Delete(id uint) error
	GetByID(id uint, isAdmin bool) (*dto.QuestionResponse, error)
	ListByCourse(courseID uint, search string, page, limit int, isAdmin bool) (*dto.QuestionListResponse, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
	courseRepo   repository.CourseRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository, courseRepo repository.CourseRepository) QuestionService {
	return &questionService{questionRepo: questionRepo, courseRepo: courseRepo}
}

func (s *questionService) Create(courseID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponse, error) {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding course: %w", err)
	}
	if err := validateAnswerSet(req.Answers); err != nil {
		return nil, err
	}

	question := model.Question{
		CourseID:            courseID,
		Text:                req.Text,
		Explanation:         req.Explanation,
		ImageURL:            req.ImageURL,
		ExplanationImageURL: req.ExplanationImageURL,
	}
	for _, a := range req.Answers {
		question.Answers = append(question.Answers, model.Answer{Text: a.Text, IsCorrect: a.IsCorrect})
	}
	if err := s.questionRepo.CreateWithAnswers(&question); err != nil {
		log.Error().Err(err).Uint("courseID", courseID).Msg("failed to create question")
		return nil, fmt.Errorf("creating question: %w", err)
	}

	resp := projectQuestion(&question, true)
	return &resp, nil
}

func (s *questionService) Update(id uint, req dto.QuestionCreateDTO) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.FindByIDWithAnswers(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: question not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding question: %w", err)
	}
	if err := validateAnswerSet(req.Answers); err != nil {
		return nil, err
	}

	question.Text = req.Text
	question.Explanation = req.Explanation
	question.ImageURL = req.ImageURL
	question.ExplanationImageURL = req.ExplanationImageURL

	answers := make([]model.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, model.Answer{Text: a.Text, IsCorrect: a.IsCorrect})
	}
	if err := s.questionRepo.ReplaceAnswers(question, answers); err != nil {
		return nil, fmt.Errorf("updating question: %w", err)
	}

	question.Answers = answers
	resp := projectQuestion(question, true)
	return &resp, nil
}

func (s *questionService) Delete(id uint) error {
	if _, err := s.questionRepo.FindByIDWithAnswers(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: question not found", ErrNotFound)
		}
		return fmt.Errorf("finding question: %w", err)
	}
	if err := s.questionRepo.Delete(id); err != nil {
		return fmt.Errorf("deleting question: %w", err)
	}
	return nil
}

func (s *questionService) GetByID(id uint, isAdmin bool) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.FindByIDWithAnswers(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: question not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding question: %w", err)
	}
	resp := projectQuestion(question, isAdmin)
	if question.Course.ID != 0 {
		var course dto.CourseResponse
		copier.Copy(&course, &question.Course)
		resp.Course = &course
	}
	return &resp, nil
}

func (s *questionService) ListByCourse(courseID uint, search string, page, limit int, isAdmin bool) (*dto.QuestionListResponse, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding course: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	questions, total, err := s.questionRepo.FindByCourse(courseID, search, page, limit)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}

	resp := dto.QuestionListResponse{
		Questions: make([]dto.QuestionResponse, 0, len(questions)),
		Pagination: dto.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		},
	}
	copier.Copy(&resp.Course, course)
	for i := range questions {
		resp.Questions = append(resp.Questions, projectQuestion(&questions[i], isAdmin))
	}
	return &resp, nil
}

func validateAnswerSet(answers []dto.AnswerCreateDTO) error {
	for _, a := range answers {
		if a.IsCorrect {
			return nil
		}
	}
	return fmt.Errorf("%w: at least one answer must be marked correct", ErrInvalidInput)
}

// projectQuestion shapes a question for the caller's role. Non-admins never
// see correctness flags or explanations; the fields are omitted entirely
// rather than zeroed.
func projectQuestion(q *model.Question, isAdmin bool) dto.QuestionResponse {
	resp := dto.QuestionResponse{
		ID:        q.ID,
		CourseID:  q.CourseID,
		Text:      q.Text,
		ImageURL:  q.ImageURL,
		Answers:   make([]dto.AnswerOptionResponse, 0, len(q.Answers)),
		CreatedAt: q.CreatedAt,
	}
	if isAdmin {
		resp.Explanation = q.Explanation
		resp.ExplanationImageURL = q.ExplanationImageURL
	}
	for i := range q.Answers {
		opt := dto.AnswerOptionResponse{ID: q.Answers[i].ID, Text: q.Answers[i].Text}
		if isAdmin {
			correct := q.Answers[i].IsCorrect
			opt.IsCorrect = &correct
		}
		resp.Answers = append(resp.Answers, opt)
	}
	return resp
}
