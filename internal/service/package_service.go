package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/Oranguru/internal/dto"
	"github.com/lshigami/Oranguru/internal/model"
	"github.com/lshigami/Oranguru/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PackageService interface {
	Create(adminID uint, req dto.PackageCreateDTO) (*dto.PackageResponse, error)
	Update(id uint, req dto.PackageUpdateDTO) (*dto.PackageResponse, error)
	Delete(id uint) error
	List(isAdmin bool) ([]dto.PackageResponse, error)
	GetByID(id, userID uint, isAdmin bool) (*dto.PackageResponse, error)
	AddQuestions(packageID uint, req dto.AddQuestionsDTO) (*dto.PackageResponse, error)
	RemoveQuestion(packageID, questionID uint) error
}

type packageService struct {
	packageRepo  repository.PackageRepository
	questionRepo repository.QuestionRepository
	access       AccessService
}

func NewPackageService(packageRepo repository.PackageRepository, questionRepo repository.QuestionRepository, access AccessService) PackageService {
	return &packageService{packageRepo: packageRepo, questionRepo: questionRepo, access: access}
}

func (s *packageService) Create(adminID uint, req dto.PackageCreateDTO) (*dto.PackageResponse, error) {
	pkg := model.Package{
		Title:          req.Title,
		Description:    req.Description,
		Price:          req.Price,
		IsActive:       true,
		TimeLimit:      req.TimeLimit,
		AvailableFrom:  req.AvailableFrom,
		AvailableUntil: req.AvailableUntil,
		CreatedBy:      adminID,
	}
	if err := s.packageRepo.Create(&pkg); err != nil {
		return nil, fmt.Errorf("creating package: %w", err)
	}
	log.Info().Uint("packageID", pkg.ID).Uint("adminID", adminID).Msg("Package created")
	resp := toPackageResponse(&pkg, false)
	return &resp, nil
}

func (s *packageService) Update(id uint, req dto.PackageUpdateDTO) (*dto.PackageResponse, error) {
	pkg, err := s.packageRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: package not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding package: %w", err)
	}

	if req.Title != nil {
		pkg.Title = *req.Title
	}
	if req.Description != nil {
		pkg.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
		}
		pkg.Price = *req.Price
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}
	if req.TimeLimit != nil {
		pkg.TimeLimit = req.TimeLimit
	}
	if req.AvailableFrom != nil {
		pkg.AvailableFrom = req.AvailableFrom
	}
	if req.AvailableUntil != nil {
		pkg.AvailableUntil = req.AvailableUntil
	}

	if err := s.packageRepo.Update(pkg); err != nil {
		return nil, fmt.Errorf("updating package: %w", err)
	}
	resp := toPackageResponse(pkg, false)
	return &resp, nil
}

func (s *packageService) Delete(id uint) error {
	if _, err := s.packageRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: package not found", ErrNotFound)
		}
		return fmt.Errorf("finding package: %w", err)
	}
	if err := s.packageRepo.Delete(id); err != nil {
		return fmt.Errorf("deleting package: %w", err)
	}
	return nil
}

func (s *packageService) List(isAdmin bool) ([]dto.PackageResponse, error) {
	packages, err := s.packageRepo.FindAll(!isAdmin)
	if err != nil {
		return nil, fmt.Errorf("listing packages: %w", err)
	}
	resp := make([]dto.PackageResponse, 0, len(packages))
	for i := range packages {
		if !isAdmin && !withinAvailability(&packages[i]) {
			continue
		}
		resp = append(resp, toPackageResponse(&packages[i], false))
	}
	return resp, nil
}

// GetByID returns package metadata for everyone; question content is
// included only for admins and for users who are entitled to the package.
func (s *packageService) GetByID(id, userID uint, isAdmin bool) (*dto.PackageResponse, error) {
	pkg, err := s.packageRepo.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: package not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding package: %w", err)
	}
	if !isAdmin && (!pkg.IsActive || !withinAvailability(pkg)) {
		return nil, fmt.Errorf("%w: package not found", ErrNotFound)
	}

	includeQuestions := isAdmin || s.access.HasPackageAccess(userID, id)

	resp := toPackageResponse(pkg, includeQuestions)
	if includeQuestions && !isAdmin {
		// Entitled users still never see answer keys or explanations.
		for i := range resp.Questions {
			q := &resp.Questions[i].Question
			q.Explanation = nil
			q.ExplanationImageURL = nil
			for j := range q.Answers {
				q.Answers[j].IsCorrect = nil
			}
		}
	}
	return &resp, nil
}

func (s *packageService) AddQuestions(packageID uint, req dto.AddQuestionsDTO) (*dto.PackageResponse, error) {
	if _, err := s.packageRepo.FindByID(packageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: package not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding package: %w", err)
	}
	for _, questionID := range req.QuestionIDs {
		if _, err := s.questionRepo.FindByIDWithAnswers(questionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: question %d not found", ErrInvalidQuestionReference, questionID)
			}
			return nil, fmt.Errorf("finding question %d: %w", questionID, err)
		}
	}

	if err := s.packageRepo.AddQuestions(packageID, req.QuestionIDs); err != nil {
		return nil, fmt.Errorf("adding questions: %w", err)
	}

	pkg, err := s.packageRepo.FindByIDWithQuestions(packageID)
	if err != nil {
		return nil, fmt.Errorf("reloading package: %w", err)
	}
	resp := toPackageResponse(pkg, true)
	return &resp, nil
}

func (s *packageService) RemoveQuestion(packageID, questionID uint) error {
	if _, err := s.packageRepo.FindByID(packageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: package not found", ErrNotFound)
		}
		return fmt.Errorf("finding package: %w", err)
	}
	if err := s.packageRepo.RemoveQuestion(packageID, questionID); err != nil {
		return fmt.Errorf("removing question: %w", err)
	}
	return nil
}

func withinAvailability(pkg *model.Package) bool {
	now := time.Now()
	if pkg.AvailableFrom != nil && now.Before(*pkg.AvailableFrom) {
		return false
	}
	if pkg.AvailableUntil != nil && now.After(*pkg.AvailableUntil) {
		return false
	}
	return true
}

func toPackageResponse(pkg *model.Package, includeQuestions bool) dto.PackageResponse {
	resp := dto.PackageResponse{
		ID:             pkg.ID,
		Title:          pkg.Title,
		Description:    pkg.Description,
		Price:          pkg.Price,
		IsActive:       pkg.IsActive,
		TimeLimit:      pkg.TimeLimit,
		AvailableFrom:  pkg.AvailableFrom,
		AvailableUntil: pkg.AvailableUntil,
		QuestionCount:  len(pkg.PackageQuestions),
		CreatedAt:      pkg.CreatedAt,
	}
	if includeQuestions {
		resp.Questions = make([]dto.PackageQuestionResponse, 0, len(pkg.PackageQuestions))
		for i := range pkg.PackageQuestions {
			pq := &pkg.PackageQuestions[i]
			resp.Questions = append(resp.Questions, dto.PackageQuestionResponse{
				Order:    pq.Order,
				Question: projectQuestion(&pq.Question, true),
			})
		}
	}
	return resp
}
