package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/recurring"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// RecurringController handles recurring expense and pending occurrence endpoints.
type RecurringController struct {
	createUseCase      *recurring.CreateRecurringExpenseUseCase
	listUseCase        *recurring.ListRecurringExpensesUseCase
	updateUseCase      *recurring.UpdateRecurringExpenseUseCase
	deleteUseCase      *recurring.DeleteRecurringExpenseUseCase
	materializeUseCase *recurring.MaterializePendingUseCase
	listPendingUseCase *recurring.ListPendingUseCase
	confirmUseCase     *recurring.ConfirmPendingUseCase
	skipUseCase        *recurring.SkipPendingUseCase
}

// NewRecurringController creates a new recurring controller instance.
func NewRecurringController(
	createUseCase *recurring.CreateRecurringExpenseUseCase,
	listUseCase *recurring.ListRecurringExpensesUseCase,
	updateUseCase *recurring.UpdateRecurringExpenseUseCase,
	deleteUseCase *recurring.DeleteRecurringExpenseUseCase,
	materializeUseCase *recurring.MaterializePendingUseCase,
	listPendingUseCase *recurring.ListPendingUseCase,
	confirmUseCase *recurring.ConfirmPendingUseCase,
	skipUseCase *recurring.SkipPendingUseCase,
) *RecurringController {
	return &RecurringController{
		createUseCase:      createUseCase,
		listUseCase:        listUseCase,
		updateUseCase:      updateUseCase,
		deleteUseCase:      deleteUseCase,
		materializeUseCase: materializeUseCase,
		listPendingUseCase: listPendingUseCase,
		confirmUseCase:     confirmUseCase,
		skipUseCase:        skipUseCase,
	}
}

// List handles GET /recurring-expenses requests.
func (c *RecurringController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), recurring.ListRecurringExpensesInput{
		UserID:     userID,
		ActiveOnly: ctx.Query("active") == "true",
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RecurringExpenseListResponse{
		RecurringExpenses: dto.ToRecurringExpenseResponses(output.RecurringExpenses),
	})
}

// Create handles POST /recurring-expenses requests.
func (c *RecurringController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateRecurringExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingRecurringFields), err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), recurring.CreateRecurringExpenseInput{
		UserID:               userID,
		Amount:               req.Amount,
		Description:          req.Description,
		Category:             req.Category,
		IntervalDays:         req.IntervalDays,
		ExecutionDates:       req.ExecutionDates,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		RequiresConfirmation: req.RequiresConfirmation,
		NotifyDaysBefore:     req.NotifyDaysBefore,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecurringExpenseResponse(output.RecurringExpense))
}

// Update handles PATCH /recurring-expenses/:id requests.
func (c *RecurringController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id", string(domainerror.ErrCodeMissingRecurringFields))
	if !ok {
		return
	}

	var req dto.UpdateRecurringExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingRecurringFields), err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), recurring.UpdateRecurringExpenseInput{
		RecurringExpenseID:   id,
		UserID:               userID,
		Amount:               req.Amount,
		Description:          req.Description,
		Category:             req.Category,
		IntervalDays:         req.IntervalDays,
		ExecutionDates:       req.ExecutionDates,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		ClearEndDate:         req.ClearEndDate,
		IsActive:             req.IsActive,
		RequiresConfirmation: req.RequiresConfirmation,
		NotifyDaysBefore:     req.NotifyDaysBefore,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringExpenseResponse(output.RecurringExpense))
}

// Delete handles DELETE /recurring-expenses/:id requests.
func (c *RecurringController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id", string(domainerror.ErrCodeMissingRecurringFields))
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), recurring.DeleteRecurringExpenseInput{
		RecurringExpenseID: id,
		UserID:             userID,
	}); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Materialize handles POST /recurring-expenses/materialize requests.
// The run always uses the server's today; the request body is ignored.
func (c *RecurringController) Materialize(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.materializeUseCase.Execute(ctx.Request.Context(), recurring.MaterializePendingInput{
		UserID: userID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MaterializeResponse{
		Created:  dto.ToPendingExpenseResponses(output.Created),
		Inserted: output.Inserted,
		Advanced: output.Advanced,
	})
}

// ListPending handles GET /recurring-expenses/pending requests.
func (c *RecurringController) ListPending(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listPendingUseCase.Execute(ctx.Request.Context(), recurring.ListPendingInput{
		UserID:          userID,
		IncludeResolved: ctx.Query("include_resolved") == "true",
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	warnings := output.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	ctx.JSON(http.StatusOK, dto.PendingListResponse{
		Pending:  dto.ToPendingViewResponses(output.Items),
		Warnings: warnings,
	})
}

// Confirm handles POST /recurring-expenses/pending/:id/confirm requests.
func (c *RecurringController) Confirm(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id", string(domainerror.ErrCodeMissingRecurringFields))
	if !ok {
		return
	}

	var req dto.ConfirmPendingRequest
	if !bindOptionalJSON(ctx, &req, string(domainerror.ErrCodeInvalidRecurringAmount)) {
		return
	}

	output, err := c.confirmUseCase.Execute(ctx.Request.Context(), recurring.ConfirmPendingInput{
		PendingID: id,
		UserID:    userID,
		Amount:    req.Amount,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ConfirmPendingResponse{
		Pending: dto.ToPendingExpenseResponse(output.Pending),
		Expense: dto.ToExpenseResponse(output.Expense),
	})
}

// Skip handles POST /recurring-expenses/pending/:id/skip requests.
func (c *RecurringController) Skip(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id", string(domainerror.ErrCodeMissingRecurringFields))
	if !ok {
		return
	}

	pending, err := c.skipUseCase.Execute(ctx.Request.Context(), recurring.SkipPendingInput{
		PendingID: id,
		UserID:    userID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPendingExpenseResponse(pending))
}

// bindOptionalJSON binds a request body that may be empty.
func bindOptionalJSON(ctx *gin.Context, obj any, code string) bool {
	if ctx.Request.Body == nil || ctx.Request.ContentLength == 0 {
		return true
	}
	if err := ctx.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(ctx, "Invalid request body", code, err)
		return false
	}
	return true
}
