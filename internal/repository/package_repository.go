package repository

import (
	"github.com/lshigami/Oranguru/internal/model"
	"gorm.io/gorm"
)

type PackageRepository interface {
	Create(pkg *model.Package) error
	FindByID(id uint) (*model.Package, error)
	FindByIDWithQuestions(id uint) (*model.Package, error)
	FindAll(activeOnly bool) ([]model.Package, error)
	Update(pkg *model.Package) error
	Delete(id uint) error
	AddQuestions(packageID uint, questionIDs []uint) error
	RemoveQuestion(packageID, questionID uint) error
	CountQuestions(packageID uint) (int64, error)
}

type packageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) Create(pkg *model.Package) error {
	return r.db.Create(pkg).Error
}

func (r *packageRepository) FindByID(id uint) (*model.Package, error) {
	var pkg model.Package
	if err := r.db.First(&pkg, id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

// FindByIDWithQuestions loads the package with its full question set,
// answers included, ordered by position. This is the read the grading
// engine works from.
func (r *packageRepository) FindByIDWithQuestions(id uint) (*model.Package, error) {
	var pkg model.Package
	err := r.db.
		Preload("PackageQuestions", func(db *gorm.DB) *gorm.DB {
			return db.Order("package_questions.\"order\" ASC")
		}).
		Preload("PackageQuestions.Question.Answers").
		First(&pkg, id).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepository) FindAll(activeOnly bool) ([]model.Package, error) {
	query := r.db.Model(&model.Package{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var packages []model.Package
	err := query.
		Preload("PackageQuestions").
		Order("created_at desc").
		Find(&packages).Error
	if err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *packageRepository) Update(pkg *model.Package) error {
	return r.db.Save(pkg).Error
}

func (r *packageRepository) Delete(id uint) error {
	return r.db.Delete(&model.Package{}, id).Error
}

// AddQuestions appends questions to the package in the order given,
// skipping ones already present.
func (r *packageRepository) AddQuestions(packageID uint, questionIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		row := tx.Model(&model.PackageQuestion{}).
			Where("package_id = ?", packageID).
			Select("COALESCE(MAX(\"order\"), 0)").
			Row()
		if err := row.Scan(&maxOrder); err != nil {
			return err
		}

		for _, questionID := range questionIDs {
			var existing int64
			if err := tx.Model(&model.PackageQuestion{}).
				Where("package_id = ? AND question_id = ?", packageID, questionID).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				continue
			}
			maxOrder++
			pq := model.PackageQuestion{
				PackageID:  packageID,
				QuestionID: questionID,
				Order:      maxOrder,
			}
			if err := tx.Create(&pq).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *packageRepository) RemoveQuestion(packageID, questionID uint) error {
	return r.db.
		Where("package_id = ? AND question_id = ?", packageID, questionID).
		Delete(&model.PackageQuestion{}).Error
}

func (r *packageRepository) CountQuestions(packageID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.PackageQuestion{}).
		Where("package_id = ?", packageID).
		Count(&count).Error
	return count, err
}
