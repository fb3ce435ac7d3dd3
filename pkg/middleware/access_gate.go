package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"stagekit/internal/models/response_models"
	"stagekit/pkg/utils"
)

// AccessChecker is the slice of the entitlement service the gate needs.
type AccessChecker interface {
	CheckAccess(ctx context.Context, accountID uuid.UUID) (*response_models.EntitlementSnapshot, error)
}

// AccessGate guards every audience-facing route. It only reads: a paused page
// answers with a distinct "paused" response, never a generic auth error, and
// no state is mutated here.
func AccessGate(checker AccessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, err := uuid.Parse(c.Param("accountId"))
		if err != nil {
			utils.RespondError(c, http.StatusNotFound, "Unknown performer page")
			c.Abort()
			return
		}

		snap, err := checker.CheckAccess(c.Request.Context(), accountID)
		if err != nil {
			if errors.Is(err, utils.ErrAccountNotFound) {
				utils.RespondError(c, http.StatusNotFound, "Unknown performer page")
			} else {
				utils.RespondError(c, http.StatusInternalServerError, "Internal server error")
			}
			c.Abort()
			return
		}

		if !snap.Entitled {
			c.JSON(http.StatusForbidden, utils.APIResponse{
				Status:  "paused",
				Code:    http.StatusForbidden,
				Message: "This performer's request page is currently paused",
				Data: response_models.AccessCheckResponse{
					AccessGranted: false,
					Message:       "Requests are paused until the performer's subscription is active again.",
				},
			})
			c.Abort()
			return
		}

		c.Set("performer_id", accountID.String())
		c.Next()
	}
}
