package admin

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

type AdminPackageController struct {
	packageService service.PackageService
}

func NewAdminPackageController(packageService service.PackageService) *AdminPackageController {
	return &AdminPackageController{packageService: packageService}
}

// CreatePackage godoc
// @Summary (Admin) Create a package
// @Tags Admin - Packages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param package body dto.PackageCreateDTO true "Package data"
// @Success 201 {object} dto.PackageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /admin/packages [post]
func (c *AdminPackageController) CreatePackage(ctx *gin.Context) {
	var req dto.PackageCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreatePackage: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	claims := middleware.CurrentUser(ctx)
	resp, err := c.packageService.Create(claims.UserID, req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdatePackage godoc
// @Summary (Admin) Update a package
// @Description Partial update; absent fields keep their current value.
// @Tags Admin - Packages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Package ID"
// @Param package body dto.PackageUpdateDTO true "Fields to change"
// @Success 200 {object} dto.PackageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 404 {object} dto.ErrorResponse "Package not found"
// @Router /admin/packages/{id} [put]
func (c *AdminPackageController) UpdatePackage(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid package ID format"})
		return
	}
	var req dto.PackageUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.packageService.Update(uint(id), req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeletePackage godoc
// @Summary (Admin) Delete a package
// @Tags Admin - Packages
// @Security BearerAuth
// @Param id path int true "Package ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Package not found"
// @Router /admin/packages/{id} [delete]
func (c *AdminPackageController) DeletePackage(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid package ID format"})
		return
	}
	if err := c.packageService.Delete(uint(id)); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AddQuestions godoc
// @Summary (Admin) Append questions to a package
// @Description Questions keep the order given; ones already in the package are skipped.
// @Tags Admin - Packages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Package ID"
// @Param questions body dto.AddQuestionsDTO true "Question IDs to append"
// @Success 200 {object} dto.PackageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or unknown question ID"
// @Failure 404 {object} dto.ErrorResponse "Package not found"
// @Router /admin/packages/{id}/questions [post]
func (c *AdminPackageController) AddQuestions(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid package ID format"})
		return
	}
	var req dto.AddQuestionsDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.packageService.AddQuestions(uint(id), req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RemoveQuestion godoc
// @Summary (Admin) Remove a question from a package
// @Tags Admin - Packages
// @Security BearerAuth
// @Param id path int true "Package ID"
// @Param question_id path int true "Question ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Package not found"
// @Router /admin/packages/{id}/questions/{question_id} [delete]
func (c *AdminPackageController) RemoveQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid package ID format"})
		return
	}
	questionID, err := strconv.ParseUint(ctx.Param("question_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID format"})
		return
	}
	if err := c.packageService.RemoveQuestion(uint(id), uint(questionID)); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
