package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"stagekit/internal/models/request_models"
	"stagekit/internal/services"
	"stagekit/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
	eraserService  services.EraserServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface, eraserService services.EraserServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
		eraserService:  eraserService,
	}
}

// Register godoc
// @Summary Register a new performer account
// @Description Create an account and start its 14-day trial
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Account registration payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /auth/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.CreateAccount(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Account created successfully")
}

// Login godoc
// @Summary Login to an account
// @Description Authenticate a performer and return a token
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c,
		gin.H{"token": result.Token, "entitled": result.Entitled},
		"Login successful")
}

// Delete godoc
// @Summary Erase an account
// @Description Cascading deletion of the account and everything it owns; requires typing DELETE
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.DeleteAccountRequest true "Deletion confirmation"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (a *AccountController) Delete(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Account not found")
		return
	}

	var req request_models.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.eraserService.Erase(c.Request.Context(), accountID, req.ConfirmationText); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"ok": true}, "Account erased")
}
