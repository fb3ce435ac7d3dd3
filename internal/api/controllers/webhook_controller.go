package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"stagekit/internal/services"
	"stagekit/pkg/utils"
)

const webhookBodyLimit = 1024 * 1024 // 1 MiB

type WebhookController struct {
	webhookService services.WebhookServiceInterface
}

func NewWebhookController(webhookService services.WebhookServiceInterface) *WebhookController {
	return &WebhookController{
		webhookService: webhookService,
	}
}

// HandlePaymentGateway godoc
// @Summary Payment gateway webhook sink
// @Description Signature-verified; acknowledges every authenticated event, including no-ops
// @Tags Billing
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /webhooks/payment-gateway [post]
func (w *WebhookController) HandlePaymentGateway(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, webhookBodyLimit)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	err = w.webhookService.HandleEvent(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, utils.ErrInvalidSignature) {
			// No ack: the sender retries until it presents a valid signature.
			utils.RespondError(c, http.StatusBadRequest, "Invalid signature")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Processing failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
