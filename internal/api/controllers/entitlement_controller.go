package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"stagekit/internal/models/response_models"
	"stagekit/internal/services"
	"stagekit/pkg/utils"
)

type EntitlementController struct {
	entitlementService services.EntitlementServiceInterface
}

func NewEntitlementController(entitlementService services.EntitlementServiceInterface) *EntitlementController {
	return &EntitlementController{
		entitlementService: entitlementService,
	}
}

// GetEntitlement godoc
// @Summary Entitlement status for the account dashboard
// @Tags Entitlement
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accounts/{id}/entitlement [get]
func (e *EntitlementController) GetEntitlement(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Account not found")
		return
	}

	status, err := e.entitlementService.Status(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, status, "")
}

// AccessCheck godoc
// @Summary Public check whether an audience page is live
// @Tags Entitlement
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /accounts/{id}/access-check [get]
func (e *EntitlementController) AccessCheck(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Account not found")
		return
	}

	snap, err := e.entitlementService.CheckAccess(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	resp := response_models.AccessCheckResponse{
		AccessGranted: snap.Entitled,
		Message:       "This page is live.",
	}
	if !snap.Entitled {
		resp.Message = "Requests are paused until the performer's subscription is active again."
	}

	utils.RespondSuccess(c, resp, "")
}
