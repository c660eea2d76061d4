package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Oranguru/internal/controller"
	"github.com/lshigami/Oranguru/internal/dto"
	"github.com/lshigami/Oranguru/internal/service"
)

type AdminPurchaseController struct {
	purchaseService service.PurchaseService
}

func NewAdminPurchaseController(purchaseService service.PurchaseService) *AdminPurchaseController {
	return &AdminPurchaseController{purchaseService: purchaseService}
}

// ListPurchases godoc
// @Summary (Admin) List all purchases
// @Tags Admin - Purchases
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MyPurchasesResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/purchases [get]
func (c *AdminPurchaseController) ListPurchases(ctx *gin.Context) {
	resp, err := c.purchaseService.ListAllPurchases()
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ApprovePackagePurchase godoc
// @Summary (Admin) Approve a package purchase
// @Description Approval is what turns a purchase into an entitlement. The
// @Description optional expiry bounds how long the entitlement lasts.
// @Tags Admin - Purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Purchase ID"
// @Param expiry body dto.PurchaseExpiryDTO false "Optional entitlement expiry"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Purchase not found"
// @Router /admin/purchases/packages/{id}/approve [put]
func (c *AdminPurchaseController) ApprovePackagePurchase(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid purchase ID format"})
		return
	}
	var req dto.PurchaseExpiryDTO
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
			return
		}
	}
	resp, err := c.purchaseService.ApprovePackagePurchase(uint(id), req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ApproveBundlePurchase godoc
// @Summary (Admin) Approve a bundle purchase
// @Tags Admin - Purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Purchase ID"
// @Param expiry body dto.PurchaseExpiryDTO false "Optional entitlement expiry"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Purchase not found"
// @Router /admin/purchases/bundles/{id}/approve [put]
func (c *AdminPurchaseController) ApproveBundlePurchase(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid purchase ID format"})
		return
	}
	var req dto.PurchaseExpiryDTO
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
			return
		}
	}
	resp, err := c.purchaseService.ApproveBundlePurchase(uint(id), req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RevokePackagePurchase godoc
// @Summary (Admin) Revoke a package purchase's approval
// @Tags Admin - Purchases
// @Produce json
// @Security BearerAuth
// @Param id path int true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Purchase not found"
// @Router /admin/purchases/packages/{id}/revoke [put]
func (c *AdminPurchaseController) RevokePackagePurchase(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid purchase ID format"})
		return
	}
	resp, err := c.purchaseService.RevokePackagePurchase(uint(id))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RevokeBundlePurchase godoc
// @Summary (Admin) Revoke a bundle purchase's approval
// @Tags Admin - Purchases
// @Produce json
// @Security BearerAuth
// @Param id path int true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Purchase not found"
// @Router /admin/purchases/bundles/{id}/revoke [put]
func (c *AdminPurchaseController) RevokeBundlePurchase(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid purchase ID format"})
		return
	}
	resp, err := c.purchaseService.RevokeBundlePurchase(uint(id))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeletePackagePurchase godoc
// @Summary (Admin) Delete a package purchase record
// @Tags Admin - Purchases
// @Security BearerAuth
// @Param id path int true "Purchase ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Purchase not found"
// @Router /admin/purchases/packages/{id} [delete]
func (c *AdminPurchaseController) DeletePackagePurchase(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid purchase ID format"})
		return
	}
	if err := c.purchaseService.DeletePackagePurchase(uint(id)); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeleteBundlePurchase godoc
// @Summary (Admin) Delete a bundle purchase record
// @Tags Admin - Purchases
// @Security BearerAuth
// @Param id path int true "Purchase ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Purchase not found"
// @Router /admin/purchases/bundles/{id} [delete]
func (c *AdminPurchaseController) DeleteBundlePurchase(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid purchase ID format"})
		return
	}
	if err := c.purchaseService.DeleteBundlePurchase(uint(id)); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
