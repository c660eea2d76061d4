package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/lshigami/Oranguru/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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

func sampleAttempt() *model.QuizAttempt {
	return &model.QuizAttempt{
		UserID:         1,
		PackageID:      1,
		Score:          50,
		CorrectAnswers: 1,
		TotalQuestions: 2,
		TimeSpent:      120,
		StartedAt:      time.Now().Add(-2 * time.Minute),
		CompletedAt:    time.Now(),
		Answers: []model.QuizAnswer{
			{QuestionID: 1, IsCorrect: true},
			{QuestionID: 2, IsCorrect: false},
		},
	}
}

func TestQuizAttemptCreate_WritesHeaderAndAnswers(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizAttemptRepository(db)

	attempt := sampleAttempt()
	require.NoError(t, repo.Create(attempt))
	require.NotZero(t, attempt.ID)

	var answerCount int64
	require.NoError(t, db.Model(&model.QuizAnswer{}).Where("quiz_attempt_id = ?", attempt.ID).Count(&answerCount).Error)
	assert.EqualValues(t, 2, answerCount)
}

// TestQuizAttemptCreate_RollsBackOnAnswerFailure forces the answer insert to
// fail and verifies the attempt header does not survive on its own.
func TestQuizAttemptCreate_RollsBackOnAnswerFailure(t *testing.T) {
	db := newTestDB(t)

	injected := errors.New("injected answer insert failure")
	err := db.Callback().Create().Before("gorm:create").Register("fail_quiz_answers", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "quiz_answers" {
			tx.AddError(injected)
		}
	})
	require.NoError(t, err)

	repo := NewQuizAttemptRepository(db)
	require.Error(t, repo.Create(sampleAttempt()))

	var attemptCount, answerCount int64
	require.NoError(t, db.Model(&model.QuizAttempt{}).Count(&attemptCount).Error)
	require.NoError(t, db.Model(&model.QuizAnswer{}).Count(&answerCount).Error)
	assert.Zero(t, attemptCount, "header must not persist without its answers")
	assert.Zero(t, answerCount)
}

func TestQuizAttemptStats(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizAttemptRepository(db)

	scores := []float64{90, 80, 70}
	for _, score := range scores {
		attempt := sampleAttempt()
		attempt.Score = score
		attempt.Answers = nil
		require.NoError(t, repo.Create(attempt))
	}

	stats, err := repo.Stats(nil, 80)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalAttempts)
	assert.InDelta(t, 80.0, stats.AverageScore, 1e-9)
	assert.EqualValues(t, 2, stats.PassedCount, "threshold is inclusive")
	assert.InDelta(t, 120.0, stats.AverageTimeSpent, 1e-9)

	other := uint(42)
	empty, err := repo.Stats(&other, 80)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalAttempts)
}
