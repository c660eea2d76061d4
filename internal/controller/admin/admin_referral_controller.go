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

type AdminReferralController struct {
	referralService service.ReferralService
}

func NewAdminReferralController(referralService service.ReferralService) *AdminReferralController {
	return &AdminReferralController{referralService: referralService}
}

// CreateReferralCode godoc
// @Summary (Admin) Create a referral code
// @Description Codes are stored uppercase and matched case-insensitively.
// @Tags Admin - Referral Codes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code body dto.ReferralCodeCreateDTO true "Code, discount type/value, quota and optional expiry"
// @Success 201 {object} model.ReferralCode
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 409 {object} dto.ErrorResponse "Code already exists"
// @Router /admin/referral-codes [post]
func (c *AdminReferralController) CreateReferralCode(ctx *gin.Context) {
	var req dto.ReferralCodeCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateReferralCode: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	claims := middleware.CurrentUser(ctx)
	code, err := c.referralService.Create(claims.UserID, req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, code)
}

// ListReferralCodes godoc
// @Summary (Admin) List referral codes
// @Tags Admin - Referral Codes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ReferralCode
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/referral-codes [get]
func (c *AdminReferralController) ListReferralCodes(ctx *gin.Context) {
	codes, err := c.referralService.List()
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, codes)
}

// UpdateReferralCode godoc
// @Summary (Admin) Update a referral code
// @Tags Admin - Referral Codes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Referral code ID"
// @Param code body dto.ReferralCodeUpdateDTO true "Fields to change"
// @Success 200 {object} model.ReferralCode
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 404 {object} dto.ErrorResponse "Referral code not found"
// @Router /admin/referral-codes/{id} [put]
func (c *AdminReferralController) UpdateReferralCode(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid referral code ID format"})
		return
	}
	var req dto.ReferralCodeUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	code, err := c.referralService.Update(uint(id), req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, code)
}

// DeleteReferralCode godoc
// @Summary (Admin) Delete a referral code
// @Tags Admin - Referral Codes
// @Security BearerAuth
// @Param id path int true "Referral code ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Referral code not found"
// @Router /admin/referral-codes/{id} [delete]
func (c *AdminReferralController) DeleteReferralCode(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid referral code ID format"})
		return
	}
	if err := c.referralService.Delete(uint(id)); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
