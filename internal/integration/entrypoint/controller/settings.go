package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/settings"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// SettingsController handles budget settings endpoints.
type SettingsController struct {
	getUseCase         *settings.GetSettingsUseCase
	updateUseCase      *settings.UpdateSettingsUseCase
	limitStatusUseCase *settings.GetCategoryLimitStatusUseCase
}

// NewSettingsController creates a new settings controller instance.
func NewSettingsController(
	getUseCase *settings.GetSettingsUseCase,
	updateUseCase *settings.UpdateSettingsUseCase,
	limitStatusUseCase *settings.GetCategoryLimitStatusUseCase,
) *SettingsController {
	return &SettingsController{
		getUseCase:         getUseCase,
		updateUseCase:      updateUseCase,
		limitStatusUseCase: limitStatusUseCase,
	}
}

// Get handles GET /settings requests.
func (c *SettingsController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	s, err := c.getUseCase.Execute(ctx.Request.Context(), settings.GetSettingsInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(s))
}

// Update handles PUT /settings requests.
func (c *SettingsController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingSettingsFields), err)
		return
	}

	s, err := c.updateUseCase.Execute(ctx.Request.Context(), settings.UpdateSettingsInput{
		UserID:                 userID,
		EmergencyBufferPercent: req.EmergencyBufferPercent,
		CategoryLimits:         req.CategoryLimits,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(s))
}

// CategoryLimitStatus handles GET /settings/category-limits/status requests.
func (c *SettingsController) CategoryLimitStatus(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.limitStatusUseCase.Execute(ctx.Request.Context(), settings.GetCategoryLimitStatusInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryLimitsStatusResponse(output.StartDate, output.EndDate, output.Limits))
}
