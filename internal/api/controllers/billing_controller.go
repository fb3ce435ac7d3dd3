package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"stagekit/internal/models/db_models"
	"stagekit/internal/models/request_models"
	"stagekit/internal/services"
	"stagekit/pkg/utils"
)

type BillingController struct {
	billingService services.BillingServiceInterface
}

func NewBillingController(billingService services.BillingServiceInterface) *BillingController {
	return &BillingController{
		billingService: billingService,
	}
}

// StartCheckout godoc
// @Summary Start a hosted checkout for a subscription plan
// @Description Creates a pending payment record and returns the gateway redirect URL
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body request_models.CreateCheckoutRequest true "Checkout payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accounts/{id}/checkout [post]
func (b *BillingController) StartCheckout(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Account not found")
		return
	}

	var req request_models.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := b.billingService.StartCheckout(c.Request.Context(), accountID, db_models.PlanCycle(req.Plan))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Checkout session created")
}

// CheckoutStatus godoc
// @Summary Payment status snapshot for a checkout session
// @Tags Billing
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accounts/{id}/checkout/{session_id} [get]
func (b *BillingController) CheckoutStatus(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Account not found")
		return
	}

	resp, err := b.billingService.CheckoutStatus(c.Request.Context(), accountID, c.Param("session_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "")
}

// Cancel godoc
// @Summary Cancel the subscription immediately
// @Tags Billing
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accounts/{id}/cancel [post]
func (b *BillingController) Cancel(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Account not found")
		return
	}

	if err := b.billingService.Cancel(c.Request.Context(), accountID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"ok": true}, "Subscription canceled")
}

// ListPlans godoc
// @Summary List available subscription plans
// @Tags Billing
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /plans [get]
func (b *BillingController) ListPlans(c *gin.Context) {
	plans, err := b.billingService.ListPlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "")
}
