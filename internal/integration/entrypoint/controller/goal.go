package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bossbitch/backend/internal/application/usecase/goalcfg"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
	"github.com/bossbitch/backend/internal/integration/entrypoint/dto"
)

// GoalController handles goal configuration endpoints.
type GoalController struct {
	getUseCase    *goalcfg.GetGoalsUseCase
	updateUseCase *goalcfg.UpdateGoalsUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	getUseCase *goalcfg.GetGoalsUseCase,
	updateUseCase *goalcfg.UpdateGoalsUseCase,
) *GoalController {
	return &GoalController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
	}
}

// Get handles GET /goals requests.
func (c *GoalController) Get(ctx *gin.Context) {
	output, err := c.getUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalsResponse(output.Goals))
}

// Update handles PUT /goals requests.
func (c *GoalController) Update(ctx *gin.Context) {
	var req dto.UpdateGoalsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidAmount),
		})
		return
	}

	input := goalcfg.UpdateGoalsInput{
		Patch: req.ToGoalPatch(),
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalsResponse(output.Goals))
}

// handleEntryError handles entry domain errors and returns appropriate
// HTTP responses. Shared by the data controllers.
func handleEntryError(ctx *gin.Context, err error) {
	var entryErr *domainerror.EntryError
	if errors.As(err, &entryErr) {
		statusCode := getStatusCodeForEntryError(entryErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: entryErr.Message,
			Code:  string(entryErr.Code),
		})
		return
	}

	var syncErr *domainerror.SyncError
	if errors.As(err, &syncErr) {
		statusCode := getStatusCodeForSyncError(syncErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: syncErr.Message,
			Code:  string(syncErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForEntryError maps entry error codes to HTTP status codes.
func getStatusCodeForEntryError(code domainerror.EntryErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeInvalidDate,
		domainerror.ErrCodeInvalidRange,
		domainerror.ErrCodeProgressMismatch:
		return http.StatusBadRequest
	case domainerror.ErrCodeEntryNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForSyncError maps sync error codes to HTTP status codes.
func getStatusCodeForSyncError(code domainerror.SyncErrorCode) int {
	switch code {
	case domainerror.ErrCodeReplayInProgress:
		return http.StatusConflict
	case domainerror.ErrCodeRemoteUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
