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

type RequestController struct {
	requestService services.RequestServiceInterface
}

func NewRequestController(requestService services.RequestServiceInterface) *RequestController {
	return &RequestController{
		requestService: requestService,
	}
}

// SubmitRequest godoc
// @Summary Audience submits a song request
// @Description Public endpoint behind the access gate
// @Tags Audience
// @Accept json
// @Produce json
// @Param request body request_models.SubmitRequestRequest true "Request payload"
// @Success 200 {object} utils.APIResponse
// @Router /p/{accountId}/requests [post]
func (rc *RequestController) SubmitRequest(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Unknown performer page")
		return
	}

	var req request_models.SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.SongID == "" && req.SongTitle == "" {
		utils.RespondError(c, http.StatusBadRequest, "Pick a song or type a title")
		return
	}

	request, err := rc.requestService.SubmitRequest(c.Request.Context(), accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, request, "Request sent")
}

// ListRequests godoc
// @Summary Performer request inbox
// @Tags Requests
// @Security BearerAuth
// @Router /requests [get]
func (rc *RequestController) ListRequests(c *gin.Context) {
	accountID, ok := ownerID(c)
	if !ok {
		return
	}

	requests, err := rc.requestService.ListRequests(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, requests, "")
}

// UpdateRequestStatus godoc
// @Summary Mark a request played or dismissed
// @Tags Requests
// @Security BearerAuth
// @Router /requests/{requestId} [patch]
func (rc *RequestController) UpdateRequestStatus(c *gin.Context) {
	accountID, ok := ownerID(c)
	if !ok {
		return
	}

	requestID, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Request not found")
		return
	}

	var req request_models.UpdateRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err = rc.requestService.UpdateRequestStatus(c.Request.Context(), accountID, requestID, db_models.RequestStatus(req.Status))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"ok": true}, "Request updated")
}
