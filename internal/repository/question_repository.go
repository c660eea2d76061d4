package repository

import (
	"github.com/lshigami/Oranguru/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	CreateWithAnswers(question *model.Question) error
	FindByIDWithAnswers(id uint) (*model.Question, error)
	FindByCourse(courseID uint, search string, page, limit int) ([]model.Question, int64, error)
	ReplaceAnswers(question *model.Question, answers []model.Answer) error
	Update(question *model.Question) error
	Delete(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// CreateWithAnswers writes the question and its answer set in one
// transaction; a question must never exist without answers.
func (r *questionRepository) CreateWithAnswers(question *model.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(question).Error
	})
}

func (r *questionRepository) FindByIDWithAnswers(id uint) (*model.Question, error) {
	var question model.Question
	err := r.db.
		Preload("Answers").
		Preload("Course").
		First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByCourse(courseID uint, search string, page, limit int) ([]model.Question, int64, error) {
	query := r.db.Model(&model.Question{}).Where("course_id = ?", courseID)
	if search != "" {
		query = query.Where("LOWER(text) LIKE LOWER(?)", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []model.Question
	err := query.
		Preload("Answers").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// ReplaceAnswers swaps a question's entire answer set. Old rows go away so
// stale correctness flags cannot linger after an edit.
func (r *questionRepository) ReplaceAnswers(question *model.Question, answers []model.Answer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", question.ID).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].QuestionID = question.ID
		}
		if err := tx.Create(&answers).Error; err != nil {
			return err
		}
		return tx.Save(question).Error
	})
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Question{}, id).Error
}
