package service

import (
	"testing"
	"time"

	"github.com/lshigami/Oranguru/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One private in-memory database per test; cache=shared keeps every
	// connection in the pool on the same database.
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Question{},
		&model.Answer{},
		&model.Package{},
		&model.PackageQuestion{},
		&model.Bundle{},
		&model.BundlePackage{},
		&model.ReferralCode{},
		&model.PackagePurchase{},
		&model.BundlePurchase{},
		&model.QuizAttempt{},
		&model.QuizAnswer{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Name:     "Test User",
		Email:    time.Now().Format("20060102150405.000000000") + "@example.com",
		Password: "$2a$10$placeholderhashplaceholderhashplaceholde",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB) *model.Course {
	t.Helper()
	course := &model.Course{Title: "Algebra Basics"}
	require.NoError(t, db.Create(course).Error)
	return course
}

// seedQuestion creates a question with the given number of answer options,
// the first correctCount of which are flagged correct. It returns the
// reloaded question so answer IDs are populated.
func seedQuestion(t *testing.T, db *gorm.DB, courseID uint, optionCount, correctCount int) *model.Question {
	t.Helper()
	question := &model.Question{
		CourseID: courseID,
		Text:     "What is the answer?",
	}
	for i := 0; i < optionCount; i++ {
		question.Answers = append(question.Answers, model.Answer{
			Text:      "Option",
			IsCorrect: i < correctCount,
		})
	}
	require.NoError(t, db.Create(question).Error)

	var reloaded model.Question
	require.NoError(t, db.Preload("Answers").First(&reloaded, question.ID).Error)
	return &reloaded
}

func seedPackage(t *testing.T, db *gorm.DB, adminID uint, questions ...*model.Question) *model.Package {
	t.Helper()
	pkg := &model.Package{
		Title:     "Practice Set",
		Price:     100,
		IsActive:  true,
		CreatedBy: adminID,
	}
	require.NoError(t, db.Create(pkg).Error)
	for i, q := range questions {
		pq := &model.PackageQuestion{PackageID: pkg.ID, QuestionID: q.ID, Order: i + 1}
		require.NoError(t, db.Create(pq).Error)
	}
	return pkg
}

func seedApprovedPurchase(t *testing.T, db *gorm.DB, userID, packageID uint) *model.PackagePurchase {
	t.Helper()
	purchase := &model.PackagePurchase{
		UserID:        userID,
		PackageID:     packageID,
		OriginalPrice: 100,
		PricePaid:     100,
		Approved:      true,
	}
	require.NoError(t, db.Create(purchase).Error)
	return purchase
}

func seedBundleWithPackages(t *testing.T, db *gorm.DB, packageIDs ...uint) *model.Bundle {
	t.Helper()
	bundle := &model.Bundle{Title: "Starter Bundle", Price: 150, IsActive: true}
	require.NoError(t, db.Create(bundle).Error)
	for _, packageID := range packageIDs {
		bp := &model.BundlePackage{BundleID: bundle.ID, PackageID: packageID}
		require.NoError(t, db.Create(bp).Error)
	}
	return bundle
}

func timePtr(v time.Time) *time.Time { return &v }
func intPtr(v int) *int              { return &v }
func uintPtr(v uint) *uint           { return &v }
func strPtr(v string) *string        { return &v }
