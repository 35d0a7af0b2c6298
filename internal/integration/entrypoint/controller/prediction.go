package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/prediction"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// PredictionController handles spending prediction endpoints.
type PredictionController struct {
	predictionUseCase *prediction.GetPredictionUseCase
}

// NewPredictionController creates a new prediction controller instance.
func NewPredictionController(predictionUseCase *prediction.GetPredictionUseCase) *PredictionController {
	return &PredictionController{predictionUseCase: predictionUseCase}
}

// Get handles GET /predictions requests.
func (c *PredictionController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.predictionUseCase.Execute(ctx.Request.Context(), prediction.GetPredictionInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPredictionResponse(output.Date, output.Prediction))
}
