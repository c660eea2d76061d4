package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Oranguru/internal/controller"
	"github.com/lshigami/Oranguru/internal/dto"
	"github.com/lshigami/Oranguru/internal/repository"
	"github.com/lshigami/Oranguru/internal/service"
)

type AdminStatsController struct {
	gradingService service.GradingService
}

func NewAdminStatsController(gradingService service.GradingService) *AdminStatsController {
	return &AdminStatsController{gradingService: gradingService}
}

// ListAttempts godoc
// @Summary (Admin) List quiz attempts
// @Description Offset-paginated, optionally filtered by user and package.
// @Tags Admin - Stats
// @Produce json
// @Security BearerAuth
// @Param user_id query int false "Restrict to one user"
// @Param package_id query int false "Restrict to one package"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} dto.AdminAttemptListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameter"
// @Router /admin/attempts [get]
func (c *AdminStatsController) ListAttempts(ctx *gin.Context) {
	var filter repository.AttemptFilter

	if raw := ctx.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user_id format"})
			return
		}
		id := uint(parsed)
		filter.UserID = &id
	}
	if raw := ctx.Query("package_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid package_id format"})
			return
		}
		id := uint(parsed)
		filter.PackageID = &id
	}
	filter.Limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	filter.Offset, _ = strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	resp, err := c.gradingService.ListAllAttempts(filter)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// QuizStats godoc
// @Summary (Admin) Aggregate attempt statistics
// @Description Average score, average time spent and pass rate, optionally
// @Description scoped to one package.
// @Tags Admin - Stats
// @Produce json
// @Security BearerAuth
// @Param package_id query int false "Restrict to one package"
// @Success 200 {object} dto.QuizStatsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameter"
// @Router /admin/stats [get]
func (c *AdminStatsController) QuizStats(ctx *gin.Context) {
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

	resp, err := c.gradingService.Stats(packageID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
