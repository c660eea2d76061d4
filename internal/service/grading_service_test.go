package service

import (
	"testing"
	"time"

	"github.com/lshigami/Oranguru/internal/dto"
	"github.com/lshigami/Oranguru/internal/model"
	"github.com/lshigami/Oranguru/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newGradingFixture(t *testing.T) (*gorm.DB, GradingService) {
	t.Helper()
	db := newTestDB(t)
	packageRepo := repository.NewPackageRepository(db)
	attemptRepo := repository.NewQuizAttemptRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	access := NewAccessService(purchaseRepo)
	return db, NewGradingService(packageRepo, attemptRepo, access)
}

func submitRequest(packageID uint, answers []dto.SubmittedAnswer) dto.SubmitAttemptRequest {
	return dto.SubmitAttemptRequest{
		PackageID: packageID,
		Answers:   answers,
		TimeSpent: intPtr(300),
		StartedAt: timePtr(time.Now().Add(-5 * time.Minute)),
	}
}

func TestQuestionPoints(t *testing.T) {
	assert.Equal(t, 1.0, questionPoints(1, true))
	assert.Equal(t, 0.0, questionPoints(1, false))
	assert.Equal(t, 0.5, questionPoints(2, true))
	assert.InDelta(t, 1.0/3.0, questionPoints(3, true), 1e-9)
	// A question with no correct option grades zero instead of erroring.
	assert.Equal(t, 0.0, questionPoints(0, true))
	assert.Equal(t, 0.0, questionPoints(0, false))
}

func TestSubmitAttempt_SingleCorrectFullCredit(t *testing.T) {
	db, svc := newGradingFixture(t)
	user := seedUser(t, db, model.RoleUser)
	course := seedCourse(t, db)
	q := seedQuestion(t, db, course.ID, 4, 1)
	pkg := seedPackage(t, db, user.ID, q)
	seedApprovedPurchase(t, db, user.ID, pkg.ID)

	resp, err := svc.SubmitAttempt(user.ID, submitRequest(pkg.ID, []dto.SubmittedAnswer{
		{QuestionID: q.ID, SelectedAnswerID: uintPtr(q.Answers[0].ID)},
	}))
	require.NoError(t, err)

	assert.Equal(t, 100.0, resp.Score)
	assert.Equal(t, 1, resp.CorrectAnswers)
	assert.Equal(t, 1, resp.TotalQuestions)
	require.Len(t, resp.Answers, 1)
	assert.True(t, resp.Answers[0].IsCorrect)
}

func TestSubmitAttempt_PartialCreditAndRounding(t *testing.T) {
	db, svc := newGradingFixture(t)
	user := seedUser(t, db, model.RoleUser)
	course := seedCourse(t, db)

	q1 := seedQuestion(t, db, course.ID, 4, 1) // answered correctly: 1.0
	q2 := seedQuestion(t, db, course.ID, 4, 2) // one of two correct: 0.5
	q3 := seedQuestion(t, db, course.ID, 4, 1) // answered wrong: 0
	q4 := seedQuestion(t, db, course.ID, 4, 1) // skipped entirely
	pkg := seedPackage(t, db, user.ID, q1, q2, q3, q4)
	seedApprovedPurchase(t, db, user.ID, pkg.ID)

	resp, err := svc.SubmitAttempt(user.ID, submitRequest(pkg.ID, []dto.SubmittedAnswer{
		{QuestionID: q1.ID, SelectedAnswerID: uintPtr(q1.Answers[0].ID)},
		{QuestionID: q2.ID, SelectedAnswerID: uintPtr(q2.Answers[1].ID)},
		{QuestionID: q3.ID, SelectedAnswerID: uintPtr(q3.Answers[3].ID)},
	}))
	require.NoError(t, err)

	// totalScore 1.5 over the package's 4 questions, skipped one included.
	assert.InDelta(t, 37.5, resp.Score, 1e-9)
	assert.Equal(t, 2, resp.CorrectAnswers) // round(1.5)
	assert.Equal(t, 4, resp.TotalQuestions)
	assert.Len(t, resp.Answers, 3)
}

func TestSubmitAttempt_NilSelectionGradesIncorrect(t *testing.T) {
	db, svc := newGradingFixture(t)
	user := seedUser(t, db, model.RoleUser)
	course := seedCourse(t, db)
	q := seedQuestion(t, db, course.ID, 4, 1)
	pkg := seedPackage(t, db, user.ID, q)
	seedApprovedPurchase(t, db, user.ID, pkg.ID)

	resp, err := svc.SubmitAttempt(user.ID, submitRequest(pkg.ID, []dto.SubmittedAnswer{
		{QuestionID: q.ID, SelectedAnswerID: nil},
	}))
	require.NoError(t, err)

	assert.Equal(t, 0.0, resp.Score)
	require.Len(t, resp.Answers, 1)
	assert.False(t, resp.Answers[0].IsCorrect)
	assert.Nil(t, resp.Answers[0].SelectedAnswerID)
}

func TestSubmitAttempt_NoCorrectOptionGradesZero(t *testing.T) {
	db, svc := newGradingFixture(t)
	user := seedUser(t, db, model.RoleUser)
	course := seedCourse(t, db)
	// Authoring defect seeded directly; the service-level validation would
	// normally reject it.
	q := seedQuestion(t, db, course.ID, 3, 0)
	pkg := seedPackage(t, db, user.ID, q)
	seedApprovedPurchase(t, db, user.ID, pkg.ID)

	resp, err := svc.SubmitAttempt(user.ID, submitRequest(pkg.ID, []dto.SubmittedAnswer{
		{QuestionID: q.ID, SelectedAnswerID: uintPtr(q.Answers[0].ID)},
	}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.Score)
}

func TestSubmitAttempt_PreconditionOrder(t *testing.T) {
	db, svc := newGradingFixture(t)
	user := seedUser(t, db, model.RoleUser)

	// Missing fields win over everything else.
	_, err := svc.SubmitAttempt(user.ID, dto.SubmitAttemptRequest{})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = svc.SubmitAttempt(user.ID, dto.SubmitAttemptRequest{
		PackageID: 1,
		Answers:   []dto.SubmittedAnswer{{QuestionID: 1}},
		TimeSpent: intPtr(10),
	})
	assert.ErrorIs(t, err, ErrMissingField)

	// Entitlement is checked before existence: submitting against a
	// package that does not exist reads as denied, not as not-found.
	_, err = svc.SubmitAttempt(user.ID, submitRequest(9999, []dto.SubmittedAnswer{{QuestionID: 1}}))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSubmitAttempt_ForeignQuestionAbortsWithoutPersisting(t *testing.T) {
	db, svc := newGradingFixture(t)
	user := seedUser(t, db, model.RoleUser)
	course := seedCourse(t, db)
	inPackage := seedQuestion(t, db, course.ID, 4, 1)
	outside := seedQuestion(t, db, course.ID, 4, 1)
	pkg := seedPackage(t, db, user.ID, inPackage)
	seedApprovedPurchase(t, db, user.ID, pkg.ID)

	_, err := svc.SubmitAttempt(user.ID, submitRequest(pkg.ID, []dto.SubmittedAnswer{
		{QuestionID: inPackage.ID, SelectedAnswerID: uintPtr(inPackage.Answers[0].ID)},
		{QuestionID: outside.ID, SelectedAnswerID: uintPtr(outside.Answers[0].ID)},
	}))
	require.ErrorIs(t, err, ErrInvalidQuestionReference)

	var count int64
	require.NoError(t, db.Model(&model.QuizAttempt{}).Count(&count).Error)
	assert.Zero(t, count, "a rejected submission must leave nothing behind")
}

func TestSubmitAttempt_RepeatsCreateNewRecords(t *testing.T) {
	db, svc := newGradingFixture(t)
	user := seedUser(t, db, model.RoleUser)
	course := seedCourse(t, db)
	q := seedQuestion(t, db, course.ID, 4, 1)
	pkg := seedPackage(t, db, user.ID, q)
	seedApprovedPurchase(t, db, user.ID, pkg.ID)

	first, err := svc.SubmitAttempt(user.ID, submitRequest(pkg.ID, []dto.SubmittedAnswer{
		{QuestionID: q.ID, SelectedAnswerID: uintPtr(q.Answers[1].ID)},
	}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, first.Score)

	second, err := svc.SubmitAttempt(user.ID, submitRequest(pkg.ID, []dto.SubmittedAnswer{
		{QuestionID: q.ID, SelectedAnswerID: uintPtr(q.Answers[0].ID)},
	}))
	require.NoError(t, err)
	assert.Equal(t, 100.0, second.Score)
	assert.NotEqual(t, first.ID, second.ID)

	// The first attempt is untouched by the second.
	var stored model.QuizAttempt
	require.NoError(t, db.First(&stored, first.ID).Error)
	assert.Equal(t, 0.0, stored.Score)

	var count int64
	require.NoError(t, db.Model(&model.QuizAttempt{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestGetAttempt_OwnerOrAdminOnly(t *testing.T) {
	db, svc := newGradingFixture(t)
	owner := seedUser(t, db, model.RoleUser)
	stranger := seedUser(t, db, model.RoleUser)
	admin := seedUser(t, db, model.RoleAdmin)
	course := seedCourse(t, db)
	q := seedQuestion(t, db, course.ID, 4, 1)
	pkg := seedPackage(t, db, owner.ID, q)
	seedApprovedPurchase(t, db, owner.ID, pkg.ID)

	created, err := svc.SubmitAttempt(owner.ID, submitRequest(pkg.ID, []dto.SubmittedAnswer{
		{QuestionID: q.ID, SelectedAnswerID: uintPtr(q.Answers[0].ID)},
	}))
	require.NoError(t, err)

	_, err = svc.GetAttempt(created.ID, owner.ID, false)
	assert.NoError(t, err)

	_, err = svc.GetAttempt(created.ID, stranger.ID, false)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetAttempt(created.ID, admin.ID, true)
	assert.NoError(t, err)

	_, err = svc.GetAttempt(99999, owner.ID, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAttempt_ReviewExposesCorrectness(t *testing.T) {
	db, svc := newGradingFixture(t)
	user := seedUser(t, db, model.RoleUser)
	course := seedCourse(t, db)
	q := seedQuestion(t, db, course.ID, 4, 1)
	require.NoError(t, db.Model(&model.Question{}).Where("id = ?", q.ID).
		Update("explanation", "Because the first option is right").Error)
	pkg := seedPackage(t, db, user.ID, q)
	seedApprovedPurchase(t, db, user.ID, pkg.ID)

	created, err := svc.SubmitAttempt(user.ID, submitRequest(pkg.ID, []dto.SubmittedAnswer{
		{QuestionID: q.ID, SelectedAnswerID: uintPtr(q.Answers[0].ID)},
	}))
	require.NoError(t, err)

	resp, err := svc.GetAttempt(created.ID, user.ID, false)
	require.NoError(t, err)
	require.Len(t, resp.Answers, 1)

	review := resp.Answers[0].Question
	require.NotNil(t, review.Explanation)
	require.Len(t, review.Answers, 4)
	for _, opt := range review.Answers {
		assert.NotNil(t, opt.IsCorrect, "review must expose correctness flags")
	}
}

func TestStats(t *testing.T) {
	db, svc := newGradingFixture(t)
	user := seedUser(t, db, model.RoleUser)
	course := seedCourse(t, db)
	q1 := seedQuestion(t, db, course.ID, 4, 1)
	q2 := seedQuestion(t, db, course.ID, 4, 1)
	pkg := seedPackage(t, db, user.ID, q1, q2)
	seedApprovedPurchase(t, db, user.ID, pkg.ID)

	// One pass (100), one fail (50).
	_, err := svc.SubmitAttempt(user.ID, submitRequest(pkg.ID, []dto.SubmittedAnswer{
		{QuestionID: q1.ID, SelectedAnswerID: uintPtr(q1.Answers[0].ID)},
		{QuestionID: q2.ID, SelectedAnswerID: uintPtr(q2.Answers[0].ID)},
	}))
	require.NoError(t, err)
	_, err = svc.SubmitAttempt(user.ID, submitRequest(pkg.ID, []dto.SubmittedAnswer{
		{QuestionID: q1.ID, SelectedAnswerID: uintPtr(q1.Answers[0].ID)},
		{QuestionID: q2.ID, SelectedAnswerID: uintPtr(q2.Answers[1].ID)},
	}))
	require.NoError(t, err)

	stats, err := svc.Stats(&pkg.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalAttempts)
	assert.InDelta(t, 75.0, stats.AverageScore, 1e-9)
	assert.EqualValues(t, 1, stats.PassedCount)
	assert.InDelta(t, 50.0, stats.PassRate, 1e-9)
	assert.InDelta(t, 300.0, stats.AverageTimeSpent, 1e-9)

	empty, err := svc.Stats(uintPtr(99999))
	require.NoError(t, err)
	assert.Zero(t, empty.TotalAttempts)
	assert.Zero(t, empty.PassRate)
}

func TestListUserAttempts_FilterByPackage(t *testing.T) {
	db, svc := newGradingFixture(t)
	user := seedUser(t, db, model.RoleUser)
	course := seedCourse(t, db)
	q1 := seedQuestion(t, db, course.ID, 4, 1)
	q2 := seedQuestion(t, db, course.ID, 4, 1)
	pkgA := seedPackage(t, db, user.ID, q1)
	pkgB := seedPackage(t, db, user.ID, q2)
	seedApprovedPurchase(t, db, user.ID, pkgA.ID)
	seedApprovedPurchase(t, db, user.ID, pkgB.ID)

	_, err := svc.SubmitAttempt(user.ID, submitRequest(pkgA.ID, []dto.SubmittedAnswer{
		{QuestionID: q1.ID, SelectedAnswerID: uintPtr(q1.Answers[0].ID)},
	}))
	require.NoError(t, err)
	_, err = svc.SubmitAttempt(user.ID, submitRequest(pkgB.ID, []dto.SubmittedAnswer{
		{QuestionID: q2.ID, SelectedAnswerID: uintPtr(q2.Answers[0].ID)},
	}))
	require.NoError(t, err)

	all, err := svc.ListUserAttempts(user.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyA, err := svc.ListUserAttempts(user.ID, &pkgA.ID)
	require.NoError(t, err)
	require.Len(t, onlyA, 1)
	assert.Equal(t, pkgA.ID, onlyA[0].PackageID)
}
