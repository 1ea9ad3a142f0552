package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bossbitch/backend/internal/application/usecase/preference"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
	"github.com/bossbitch/backend/internal/integration/entrypoint/dto"
)

// PreferenceController handles display preference endpoints.
type PreferenceController struct {
	getUseCase    *preference.GetPreferencesUseCase
	updateUseCase *preference.UpdatePreferencesUseCase
}

// NewPreferenceController creates a new preference controller instance.
func NewPreferenceController(
	getUseCase *preference.GetPreferencesUseCase,
	updateUseCase *preference.UpdatePreferencesUseCase,
) *PreferenceController {
	return &PreferenceController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
	}
}

// Get handles GET /preferences requests.
func (c *PreferenceController) Get(ctx *gin.Context) {
	output, err := c.getUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPreferencesResponse(output.Preferences))
}

// Update handles PUT /preferences requests.
func (c *PreferenceController) Update(ctx *gin.Context) {
	var req dto.UpdatePreferencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := preference.UpdatePreferencesInput{
		Patch: req.ToPreferencesPatch(),
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPreferencesResponse(output.Preferences))
}
