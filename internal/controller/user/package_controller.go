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

type PackageController struct {
	packageService service.PackageService
}

func NewPackageController(packageService service.PackageService) *PackageController {
	return &PackageController{packageService: packageService}
}

// ListPackages godoc
// @Summary List purchasable packages
// @Description Returns active packages within their availability window.
// @Tags Packages
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PackageResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /packages [get]
func (c *PackageController) ListPackages(ctx *gin.Context) {
	claims := middleware.CurrentUser(ctx)
	packages, err := c.packageService.List(claims.IsAdmin())
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, packages)
}

// GetPackage godoc
// @Summary Get a package by ID
// @Description Question content is included only when the caller is
// @Description entitled to the package; metadata is visible to everyone.
// @Tags Packages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Package ID"
// @Success 200 {object} dto.PackageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Package not found"
// @Router /packages/{id} [get]
func (c *PackageController) GetPackage(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid package ID format"})
		return
	}
	claims := middleware.CurrentUser(ctx)
	resp, err := c.packageService.GetByID(uint(id), claims.UserID, claims.IsAdmin())
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
