// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// domainCode extracts the code and message of any feature error in the chain.
func domainCode(err error) (code, message string, ok bool) {
	var authErr *domainerror.AuthError
	var expenseErr *domainerror.ExpenseError
	var budgetErr *domainerror.BudgetError
	var recurringErr *domainerror.RecurringError
	var settingsErr *domainerror.SettingsError
	var emailErr *domainerror.EmailError

	switch {
	case errors.As(err, &authErr):
		return string(authErr.Code), authErr.Message, true
	case errors.As(err, &expenseErr):
		return string(expenseErr.Code), expenseErr.Message, true
	case errors.As(err, &budgetErr):
		return string(budgetErr.Code), budgetErr.Message, true
	case errors.As(err, &recurringErr):
		return string(recurringErr.Code), recurringErr.Message, true
	case errors.As(err, &settingsErr):
		return string(settingsErr.Code), settingsErr.Message, true
	case errors.As(err, &emailErr):
		return string(emailErr.Code), emailErr.Message, true
	}
	return "", "", false
}

// statusForCode maps a PREFIX-XXYYYY code to an HTTP status using its category digits.
func statusForCode(code string) int {
	switch code {
	case string(domainerror.ErrCodeEmailExists):
		return http.StatusConflict
	case string(domainerror.ErrCodeRateLimited):
		return http.StatusTooManyRequests
	case string(domainerror.ErrCodeSuggestionUnavailable):
		return http.StatusServiceUnavailable
	case string(domainerror.ErrCodeOrphanPendingExpense):
		return http.StatusInternalServerError
	}

	prefix, digits, found := strings.Cut(code, "-")
	if !found || len(digits) < 2 {
		return http.StatusInternalServerError
	}

	switch digits[:2] {
	case "01":
		return http.StatusBadRequest
	case "02":
		if prefix == "AUTH" {
			return http.StatusUnauthorized
		}
		return http.StatusNotFound
	case "03":
		if prefix == "AUTH" {
			return http.StatusUnauthorized
		}
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes the error response for a use case failure.
func respondError(ctx *gin.Context, err error) {
	code, message, ok := domainCode(err)
	if !ok {
		slog.Error("Request failed",
			"request_id", requestid.Get(ctx),
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:     "Internal server error",
			RequestID: requestid.Get(ctx),
		})
		return
	}

	ctx.JSON(statusForCode(code), dto.ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestid.Get(ctx),
	})
}

// respondBadRequest writes a 400 with the given code.
func respondBadRequest(ctx *gin.Context, message, code string, err error) {
	resp := dto.ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestid.Get(ctx),
	}
	if err != nil {
		resp.Details = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, resp)
}

// requireUser returns the authenticated user id or writes a 401.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	id, exists := middleware.GetUserIDFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:     "Unauthorized",
			Code:      string(domainerror.ErrCodeMissingToken),
			RequestID: requestid.Get(ctx),
		})
		return id, false
	}
	return id, true
}
