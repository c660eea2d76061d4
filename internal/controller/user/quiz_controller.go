package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Oranguru/internal/controller"
	"github.com/lshigami/Oranguru/internal/dto"
	"github.com/lshigami/Oranguru/internal/middleware"
	"github.com/lshigami/Oranguru/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	gradingService service.GradingService
}

func NewQuizController(gradingService service.GradingService) *QuizController {
	return &QuizController{gradingService: gradingService}
}

// SubmitAttempt godoc
// @Summary Submit a quiz attempt for grading
// @Description Grades the submission against the package's full question
// @Description set and persists the result. Requires an approved, unexpired
// @Description purchase of the package or of a bundle containing it.
// @Tags Quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attempt body dto.SubmitAttemptRequest true "Package ID, answers, time spent and start time"
// @Success 201 {object} dto.AttemptDetailResponse
// @Failure 400 {object} dto.ErrorResponse "Missing field or foreign question reference"
// @Failure 403 {object} dto.ErrorResponse "No entitlement to the package"
// @Failure 404 {object} dto.ErrorResponse "Package not found"
// @Router /attempts [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	var req dto.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAttempt: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	claims := middleware.CurrentUser(ctx)
	resp, err := c.gradingService.SubmitAttempt(claims.UserID, req)
	if err != nil {
		log.Warn().Err(err).Uint("userID", claims.UserID).Uint("packageID", req.PackageID).Msg("SubmitAttempt rejected")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// MyAttempts godoc
// @Summary List the authenticated user's attempts
// @Tags Quiz
// @Produce json
// @Security BearerAuth
// @Param package_id query int false "Restrict to one package"
// @Success 200 {array} dto.AttemptSummaryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /attempts [get]
func (c *QuizController) MyAttempts(ctx *gin.Context) {
	var packageID *uint
	if raw := ctx.Query("package_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid package_id format"})
			return
		}
		id := uint(parsed)
		packageID = &id
	}

	claims := middleware.CurrentUser(ctx)
	resp, err := c.gradingService.ListUserAttempts(claims.UserID, packageID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAttempt godoc
// @Summary Get one attempt with per-question review detail
// @Description Owners and admins only. The review includes correct answers
// @Description and explanations regardless of role.
// @Tags Quiz
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 403 {object} dto.ErrorResponse "Not the attempt's owner"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{id} [get]
func (c *QuizController) GetAttempt(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid attempt ID format"})
		return
	}

	claims := middleware.CurrentUser(ctx)
	resp, err := c.gradingService.GetAttempt(uint(id), claims.UserID, claims.IsAdmin())
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
