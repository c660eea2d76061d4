package repository

import (
	"github.com/lshigami/Oranguru/internal/model"
	"gorm.io/gorm"
)

type ReferralCodeRepository interface {
	Create(code *model.ReferralCode) error
	FindByID(id uint) (*model.ReferralCode, error)
	FindByCode(code string) (*model.ReferralCode, error)
	FindAll() ([]model.ReferralCode, error)
	Update(code *model.ReferralCode) error
	Delete(id uint) error
	IncrementUsage(id uint) error
}

type referralCodeRepository struct {
	db *gorm.DB
}

func NewReferralCodeRepository(db *gorm.DB) ReferralCodeRepository {
	return &referralCodeRepository{db: db}
}

func (r *referralCodeRepository) Create(code *model.ReferralCode) error {
	return r.db.Create(code).Error
}

func (r *referralCodeRepository) FindByID(id uint) (*model.ReferralCode, error) {
	var code model.ReferralCode
	if err := r.db.First(&code, id).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *referralCodeRepository) FindByCode(code string) (*model.ReferralCode, error) {
	var referral model.ReferralCode
	if err := r.db.Where("code = ?", code).First(&referral).Error; err != nil {
		return nil, err
	}
	return &referral, nil
}

func (r *referralCodeRepository) FindAll() ([]model.ReferralCode, error) {
	var codes []model.ReferralCode
	if err := r.db.Order("created_at desc").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *referralCodeRepository) Update(code *model.ReferralCode) error {
	return r.db.Save(code).Error
}

func (r *referralCodeRepository) Delete(id uint) error {
	return r.db.Delete(&model.ReferralCode{}, id).Error
}

// IncrementUsage bumps used_count atomically in the database rather than
// through a read-modify-write on the struct.
func (r *referralCodeRepository) IncrementUsage(id uint) error {
	return r.db.Model(&model.ReferralCode{}).
		Where("id = ?", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
}
