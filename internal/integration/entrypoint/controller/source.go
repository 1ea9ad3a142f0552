package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bossbitch/backend/internal/application/usecase/source"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
	"github.com/bossbitch/backend/internal/integration/entrypoint/dto"
)

// SourceController handles income source catalog endpoints.
type SourceController struct {
	listUseCase             *source.ListSourcesUseCase
	addUseCase              *source.AddSourceUseCase
	updateUseCase           *source.UpdateSourceUseCase
	updateEverywhereUseCase *source.UpdateSourceEverywhereUseCase
}

// NewSourceController creates a new source controller instance.
func NewSourceController(
	listUseCase *source.ListSourcesUseCase,
	addUseCase *source.AddSourceUseCase,
	updateUseCase *source.UpdateSourceUseCase,
	updateEverywhereUseCase *source.UpdateSourceEverywhereUseCase,
) *SourceController {
	return &SourceController{
		listUseCase:             listUseCase,
		addUseCase:              addUseCase,
		updateUseCase:           updateUseCase,
		updateEverywhereUseCase: updateEverywhereUseCase,
	}
}

// List handles GET /sources requests.
func (c *SourceController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleSourceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSourceListResponse(output.Sources))
}

// Add handles POST /sources requests.
func (c *SourceController) Add(ctx *gin.Context) {
	var req dto.AddSourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidSource),
		})
		return
	}

	input := source.AddSourceInput{
		Source: req.ToIncomeSource(),
	}

	output, err := c.addUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSourceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSourceListResponse(output.Sources))
}

// Update handles PUT /sources/:id requests. With applyEverywhere set
// the rename fans out to historical entries; otherwise only the catalog
// changes.
func (c *SourceController) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.UpdateSourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidSource),
		})
		return
	}

	if req.ApplyEverywhere {
		input := source.UpdateSourceEverywhereInput{
			ID:    id,
			Patch: req.ToPatch(),
		}

		output, err := c.updateEverywhereUseCase.Execute(ctx.Request.Context(), input)
		if err != nil {
			c.handleSourceError(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, dto.UpdateSourceResponse{
			Sources:     dto.ToSourceListResponse(output.Sources).Sources,
			DaysTouched: output.DaysTouched,
		})
		return
	}

	input := source.UpdateSourceInput{
		ID:    id,
		Patch: req.ToPatch(),
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSourceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UpdateSourceResponse{
		Sources: dto.ToSourceListResponse(output.Sources).Sources,
	})
}

// handleSourceError handles source domain errors and returns appropriate
// HTTP responses.
func (c *SourceController) handleSourceError(ctx *gin.Context, err error) {
	var sourceErr *domainerror.SourceError
	if errors.As(err, &sourceErr) {
		statusCode := c.getStatusCodeForSourceError(sourceErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: sourceErr.Message,
			Code:  string(sourceErr.Code),
		})
		return
	}

	handleEntryError(ctx, err)
}

// getStatusCodeForSourceError maps source error codes to HTTP status codes.
func (c *SourceController) getStatusCodeForSourceError(code domainerror.SourceErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidSource:
		return http.StatusBadRequest
	case domainerror.ErrCodeSourceNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeSourceAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
