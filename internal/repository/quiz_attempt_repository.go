package repository

import (
	"github.com/lshigami/Oranguru/internal/model"
	"gorm.io/gorm"
)

type AttemptFilter struct {
	UserID    *uint
	PackageID *uint
	Limit     int
	Offset    int
}

type QuizStats struct {
	TotalAttempts    int64
	AverageScore     float64
	AverageTimeSpent float64
	PassedCount      int64
}

type QuizAttemptRepository interface {
	// Create persists the attempt header and every answer row as one unit
	// of work: either all of it commits or none of it does.
	Create(attempt *model.QuizAttempt) error
	FindByIDWithDetails(id uint) (*model.QuizAttempt, error)
	FindByUser(userID uint, packageID *uint) ([]model.QuizAttempt, error)
	FindAll(filter AttemptFilter) ([]model.QuizAttempt, int64, error)
	Stats(packageID *uint, passThreshold float64) (*QuizStats, error)
}

type quizAttemptRepository struct {
	db *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) QuizAttemptRepository {
	return &quizAttemptRepository{db: db}
}

func (r *quizAttemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		answers := attempt.Answers
		attempt.Answers = nil

		if err := tx.Create(attempt).Error; err != nil {
			return err
		}

		for i := range answers {
			answers[i].QuizAttemptID = attempt.ID
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}

		attempt.Answers = answers
		return nil
	})
}

func (r *quizAttemptRepository) FindByIDWithDetails(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.db.
		Preload("Package").
		Preload("User").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_answers.created_at ASC")
		}).
		Preload("Answers.Question.Answers").
		Preload("Answers.SelectedAnswer").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *quizAttemptRepository) FindByUser(userID uint, packageID *uint) ([]model.QuizAttempt, error) {
	query := r.db.Where("user_id = ?", userID)
	if packageID != nil {
		query = query.Where("package_id = ?", *packageID)
	}
	var attempts []model.QuizAttempt
	err := query.
		Preload("Package").
		Order("completed_at desc").
		Find(&attempts).Error
	return attempts, err
}

func (r *quizAttemptRepository) FindAll(filter AttemptFilter) ([]model.QuizAttempt, int64, error) {
	query := r.db.Model(&model.QuizAttempt{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.PackageID != nil {
		query = query.Where("package_id = ?", *filter.PackageID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var attempts []model.QuizAttempt
	err := query.
		Preload("User").
		Preload("Package").
		Order("completed_at desc").
		Limit(limit).
		Offset(filter.Offset).
		Find(&attempts).Error
	if err != nil {
		return nil, 0, err
	}
	return attempts, total, nil
}

func (r *quizAttemptRepository) Stats(packageID *uint, passThreshold float64) (*QuizStats, error) {
	base := func() *gorm.DB {
		q := r.db.Model(&model.QuizAttempt{})
		if packageID != nil {
			q = q.Where("package_id = ?", *packageID)
		}
		return q
	}

	var stats QuizStats
	if err := base().Count(&stats.TotalAttempts).Error; err != nil {
		return nil, err
	}
	if stats.TotalAttempts == 0 {
		return &stats, nil
	}

	row := base().
		Select("AVG(score), AVG(time_spent)").
		Row()
	if err := row.Scan(&stats.AverageScore, &stats.AverageTimeSpent); err != nil {
		return nil, err
	}

	passed := r.db.Model(&model.QuizAttempt{}).Where("score >= ?", passThreshold)
	if packageID != nil {
		passed = passed.Where("package_id = ?", *packageID)
	}
	if err := passed.Count(&stats.PassedCount).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
