package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// ExpenseController handles expense endpoints.
type ExpenseController struct {
	createUseCase    *expense.CreateExpenseUseCase
	listUseCase      *expense.ListExpensesUseCase
	updateUseCase    *expense.UpdateExpenseUseCase
	deleteUseCase    *expense.DeleteExpenseUseCase
	breakdownUseCase *expense.GetBreakdownUseCase
	suggestUseCase   *expense.SuggestCategoryUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	createUseCase *expense.CreateExpenseUseCase,
	listUseCase *expense.ListExpensesUseCase,
	updateUseCase *expense.UpdateExpenseUseCase,
	deleteUseCase *expense.DeleteExpenseUseCase,
	breakdownUseCase *expense.GetBreakdownUseCase,
	suggestUseCase *expense.SuggestCategoryUseCase,
) *ExpenseController {
	return &ExpenseController{
		createUseCase:    createUseCase,
		listUseCase:      listUseCase,
		updateUseCase:    updateUseCase,
		deleteUseCase:    deleteUseCase,
		breakdownUseCase: breakdownUseCase,
		suggestUseCase:   suggestUseCase,
	}
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	code := string(domainerror.ErrCodeInvalidExpenseDate)
	start, ok := queryDate(ctx, "start_date", code)
	if !ok {
		return
	}
	end, ok := queryDate(ctx, "end_date", code)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), expense.ListExpensesInput{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Category:  ctx.Query("category"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ExpenseListResponse{
		Expenses: dto.ToExpenseResponses(output.Expenses),
		Total:    output.Total,
	})
}

// Create handles POST /expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingExpenseFields), err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), expense.CreateExpenseInput{
		UserID:      userID,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(output.Expense))
}

// Update handles PATCH /expenses/:id requests.
func (c *ExpenseController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id", string(domainerror.ErrCodeMissingExpenseFields))
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingExpenseFields), err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), expense.UpdateExpenseInput{
		ExpenseID:   id,
		UserID:      userID,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense))
}

// Delete handles DELETE /expenses/:id requests.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id", string(domainerror.ErrCodeMissingExpenseFields))
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), expense.DeleteExpenseInput{
		ExpenseID: id,
		UserID:    userID,
	}); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Breakdown handles GET /expenses/breakdown requests.
func (c *ExpenseController) Breakdown(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	code := string(domainerror.ErrCodeInvalidExpenseDate)
	start, ok := queryDate(ctx, "start_date", code)
	if !ok {
		return
	}
	end, ok := queryDate(ctx, "end_date", code)
	if !ok {
		return
	}

	output, err := c.breakdownUseCase.Execute(ctx.Request.Context(), expense.GetBreakdownInput{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BreakdownResponse{
		StartDate:  output.StartDate,
		EndDate:    output.EndDate,
		Total:      output.Total,
		Count:      output.Count,
		Categories: dto.ToCategoryTotalResponses(output.Categories),
	})
}

// SuggestCategory handles POST /expenses/suggest-category requests.
func (c *ExpenseController) SuggestCategory(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.SuggestCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingExpenseFields), err)
		return
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), expense.SuggestCategoryInput{
		UserID:      userID,
		Description: req.Description,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuggestCategoryResponse{
		Category:   output.Category,
		Source:     output.Source,
		Confidence: output.Confidence,
		Reasoning:  output.Reasoning,
	})
}
