package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Oranguru/internal/controller"
	"github.com/lshigami/Oranguru/internal/dto"
	"github.com/lshigami/Oranguru/internal/middleware"
	"github.com/lshigami/Oranguru/internal/service"
)

type BundleController struct {
	bundleService service.BundleService
}

func NewBundleController(bundleService service.BundleService) *BundleController {
	return &BundleController{bundleService: bundleService}
}

// ListBundles godoc
// @Summary List purchasable bundles
// @Tags Bundles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.BundleResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /bundles [get]
func (c *BundleController) ListBundles(ctx *gin.Context) {
	claims := middleware.CurrentUser(ctx)
	bundles, err := c.bundleService.List(claims.IsAdmin())
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, bundles)
}

// GetBundle godoc
// @Summary Get a bundle by ID
// @Tags Bundles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bundle ID"
// @Success 200 {object} dto.BundleResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Bundle not found"
// @Router /bundles/{id} [get]
func (c *BundleController) GetBundle(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid bundle ID format"})
		return
	}
	claims := middleware.CurrentUser(ctx)
	resp, err := c.bundleService.GetByID(uint(id), claims.IsAdmin())
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
