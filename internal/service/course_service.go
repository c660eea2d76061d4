package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Oranguru/internal/dto"
	"github.com/lshigami/Oranguru/internal/model"
	"github.com/lshigami/Oranguru/internal/repository"
	"gorm.io/gorm"
)

type CourseService interface {
	Create(req dto.CourseCreateDTO) (*dto.CourseResponse, error)
	Update(id uint, req dto.CourseCreateDTO) (*dto.CourseResponse, error)
	Delete(id uint) error
	GetByID(id uint) (*dto.CourseResponse, error)
	List() ([]dto.CourseResponse, error)
}

type courseService struct {
	courseRepo repository.CourseRepository
}

func NewCourseService(courseRepo repository.CourseRepository) CourseService {
	return &courseService{courseRepo: courseRepo}
}

func (s *courseService) Create(req dto.CourseCreateDTO) (*dto.CourseResponse, error) {
	course := model.Course{
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.courseRepo.Create(&course); err != nil {
		return nil, fmt.Errorf("creating course: %w", err)
	}
	var resp dto.CourseResponse
	copier.Copy(&resp, &course)
	return &resp, nil
}

func (s *courseService) Update(id uint, req dto.CourseCreateDTO) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding course: %w", err)
	}
	course.Title = req.Title
	course.Description = req.Description
	if err := s.courseRepo.Update(course); err != nil {
		return nil, fmt.Errorf("updating course: %w", err)
	}
	var resp dto.CourseResponse
	copier.Copy(&resp, course)
	return &resp, nil
}

func (s *courseService) Delete(id uint) error {
	if _, err := s.courseRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: course not found", ErrNotFound)
		}
		return fmt.Errorf("finding course: %w", err)
	}
	if err := s.courseRepo.Delete(id); err != nil {
		return fmt.Errorf("deleting course: %w", err)
	}
	return nil
}

func (s *courseService) GetByID(id uint) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course not found", ErrNotFound)
		}
		return nil, fmt.Errorf("finding course: %w", err)
	}
	var resp dto.CourseResponse
	copier.Copy(&resp, course)
	return &resp, nil
}

func (s *courseService) List() ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	resp := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		var c dto.CourseResponse
		copier.Copy(&c, &courses[i])
		resp = append(resp, c)
	}
	return resp, nil
}
