package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Oranguru/internal/controller"
	"github.com/lshigami/Oranguru/internal/dto"
	"github.com/lshigami/Oranguru/internal/middleware"
	"github.com/lshigami/Oranguru/internal/service"
	"github.com/rs/zerolog/log"
)

type PurchaseController struct {
	purchaseService service.PurchaseService
}

func NewPurchaseController(purchaseService service.PurchaseService) *PurchaseController {
	return &PurchaseController{purchaseService: purchaseService}
}

// PurchasePackage godoc
// @Summary Purchase a package
// @Description Records a pending purchase. Access is granted only after an
// @Description admin approves it. An optional referral code applies a discount.
// @Tags Purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param purchase body dto.PurchasePackageRequest true "Package ID with optional proof image and referral code"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or referral code"
// @Failure 404 {object} dto.ErrorResponse "Package not found"
// @Failure 409 {object} dto.ErrorResponse "Package already purchased"
// @Router /purchases/packages [post]
func (c *PurchaseController) PurchasePackage(ctx *gin.Context) {
	var req dto.PurchasePackageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("PurchasePackage: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	claims := middleware.CurrentUser(ctx)
	resp, err := c.purchaseService.PurchasePackage(claims.UserID, req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// PurchaseBundle godoc
// @Summary Purchase a bundle
// @Tags Purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param purchase body dto.PurchaseBundleRequest true "Bundle ID with optional proof image and referral code"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or referral code"
// @Failure 404 {object} dto.ErrorResponse "Bundle not found"
// @Failure 409 {object} dto.ErrorResponse "Bundle already purchased"
// @Router /purchases/bundles [post]
func (c *PurchaseController) PurchaseBundle(ctx *gin.Context) {
	var req dto.PurchaseBundleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	claims := middleware.CurrentUser(ctx)
	resp, err := c.purchaseService.PurchaseBundle(claims.UserID, req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// MyPurchases godoc
// @Summary List the authenticated user's purchases
// @Tags Purchases
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MyPurchasesResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /purchases/mine [get]
func (c *PurchaseController) MyPurchases(ctx *gin.Context) {
	claims := middleware.CurrentUser(ctx)
	resp, err := c.purchaseService.MyPurchases(claims.UserID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
