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

type AdminBundleController struct {
	bundleService service.BundleService
}

func NewAdminBundleController(bundleService service.BundleService) *AdminBundleController {
	return &AdminBundleController{bundleService: bundleService}
}

// CreateBundle godoc
// @Summary (Admin) Create a bundle of packages
// @Tags Admin - Bundles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bundle body dto.BundleCreateDTO true "Bundle data with member package IDs"
// @Success 201 {object} dto.BundleResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or unknown package ID"
// @Router /admin/bundles [post]
func (c *AdminBundleController) CreateBundle(ctx *gin.Context) {
	var req dto.BundleCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateBundle: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	claims := middleware.CurrentUser(ctx)
	resp, err := c.bundleService.Create(claims.UserID, req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateBundle godoc
// @Summary (Admin) Update a bundle
// @Description Partial update. Supplying package_ids replaces the bundle's
// @Description membership wholesale and takes effect for existing purchases
// @Description immediately.
// @Tags Admin - Bundles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bundle ID"
// @Param bundle body dto.BundleUpdateDTO true "Fields to change"
// @Success 200 {object} dto.BundleResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 404 {object} dto.ErrorResponse "Bundle not found"
// @Router /admin/bundles/{id} [put]
func (c *AdminBundleController) UpdateBundle(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid bundle ID format"})
		return
	}
	var req dto.BundleUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.bundleService.Update(uint(id), req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteBundle godoc
// @Summary (Admin) Delete a bundle
// @Tags Admin - Bundles
// @Security BearerAuth
// @Param id path int true "Bundle ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Bundle not found"
// @Router /admin/bundles/{id} [delete]
func (c *AdminBundleController) DeleteBundle(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid bundle ID format"})
		return
	}
	if err := c.bundleService.Delete(uint(id)); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
