package service

import (
	"testing"

	"github.com/lshigami/Oranguru/internal/dto"
	"github.com/lshigami/Oranguru/internal/model"
	"github.com/lshigami/Oranguru/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newQuestionFixture(t *testing.T) (*gorm.DB, QuestionService) {
	t.Helper()
	db := newTestDB(t)
	svc := NewQuestionService(repository.NewQuestionRepository(db), repository.NewCourseRepository(db))
	return db, svc
}

func questionPayload() dto.QuestionCreateDTO {
	return dto.QuestionCreateDTO{
		Text:                "What is 2 + 2?",
		Explanation:         strPtr("Basic addition"),
		ExplanationImageURL: strPtr("https://cdn.example.com/addition.png"),
		Answers: []dto.AnswerCreateDTO{
			{Text: "4", IsCorrect: true},
			{Text: "3"},
			{Text: "5"},
		},
	}
}

func TestCreateQuestion(t *testing.T) {
	db, svc := newQuestionFixture(t)
	course := seedCourse(t, db)

	resp, err := svc.Create(course.ID, questionPayload())
	require.NoError(t, err)
	assert.Equal(t, course.ID, resp.CourseID)
	assert.Len(t, resp.Answers, 3)

	_, err = svc.Create(9999, questionPayload())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateQuestion_RequiresCorrectAnswer(t *testing.T) {
	db, svc := newQuestionFixture(t)
	course := seedCourse(t, db)

	payload := questionPayload()
	for i := range payload.Answers {
		payload.Answers[i].IsCorrect = false
	}
	_, err := svc.Create(course.ID, payload)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetQuestion_RoleShapedProjection(t *testing.T) {
	db, svc := newQuestionFixture(t)
	course := seedCourse(t, db)
	created, err := svc.Create(course.ID, questionPayload())
	require.NoError(t, err)

	asUser, err := svc.GetByID(created.ID, false)
	require.NoError(t, err)
	assert.Nil(t, asUser.Explanation, "explanation is admin-only")
	assert.Nil(t, asUser.ExplanationImageURL, "explanation image is admin-only")
	for _, opt := range asUser.Answers {
		assert.Nil(t, opt.IsCorrect, "correctness flags are admin-only")
	}

	asAdmin, err := svc.GetByID(created.ID, true)
	require.NoError(t, err)
	require.NotNil(t, asAdmin.Explanation)
	require.NotNil(t, asAdmin.ExplanationImageURL)
	assert.Equal(t, "https://cdn.example.com/addition.png", *asAdmin.ExplanationImageURL)
	correctSeen := 0
	for _, opt := range asAdmin.Answers {
		require.NotNil(t, opt.IsCorrect)
		if *opt.IsCorrect {
			correctSeen++
		}
	}
	assert.Equal(t, 1, correctSeen)
}

func TestUpdateQuestion_ReplacesAnswerSet(t *testing.T) {
	db, svc := newQuestionFixture(t)
	course := seedCourse(t, db)
	created, err := svc.Create(course.ID, questionPayload())
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, dto.QuestionCreateDTO{
		Text: "What is 3 + 3?",
		Answers: []dto.AnswerCreateDTO{
			{Text: "6", IsCorrect: true},
			{Text: "7"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "What is 3 + 3?", updated.Text)
	assert.Len(t, updated.Answers, 2)

	var count int64
	require.NoError(t, db.Model(&model.Answer{}).Where("question_id = ?", created.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count, "old answer rows must be gone")
}

func TestListByCourse_SearchAndPagination(t *testing.T) {
	db, svc := newQuestionFixture(t)
	course := seedCourse(t, db)

	texts := []string{"Solve for x", "Graph the line", "Solve the system"}
	for _, text := range texts {
		payload := questionPayload()
		payload.Text = text
		_, err := svc.Create(course.ID, payload)
		require.NoError(t, err)
	}

	page, err := svc.ListByCourse(course.ID, "", 1, 2, false)
	require.NoError(t, err)
	assert.Len(t, page.Questions, 2)
	assert.EqualValues(t, 3, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	matched, err := svc.ListByCourse(course.ID, "solve", 1, 20, false)
	require.NoError(t, err)
	assert.Len(t, matched.Questions, 2, "search is case-insensitive")
}
