package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bossbitch/backend/internal/application/usecase/syncops"
	"github.com/bossbitch/backend/internal/integration/entrypoint/dto"
)

// SyncController handles synchronization status and replay endpoints.
type SyncController struct {
	getStatusUseCase *syncops.GetStatusUseCase
	replayUseCase    *syncops.ReplayQueueUseCase
}

// NewSyncController creates a new sync controller instance.
func NewSyncController(
	getStatusUseCase *syncops.GetStatusUseCase,
	replayUseCase *syncops.ReplayQueueUseCase,
) *SyncController {
	return &SyncController{
		getStatusUseCase: getStatusUseCase,
		replayUseCase:    replayUseCase,
	}
}

// Status handles GET /sync/status requests.
func (c *SyncController) Status(ctx *gin.Context) {
	output, err := c.getStatusUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SyncStatusResponse{
		Online:         output.Online,
		Authenticated:  output.Authenticated,
		UserEmail:      output.UserEmail,
		PendingActions: output.PendingActions,
		InFlight:       output.InFlight,
	})
}

// Replay handles POST /sync/replay requests, the manual counterpart of
// the automatic sign-in and reconnect replay triggers.
func (c *SyncController) Replay(ctx *gin.Context) {
	output, err := c.replayUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ReplayResponse{
		Applied: output.Applied,
		Failed:  output.Failed,
	})
}
