// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Suggestion sources.
const (
	SourceHistory = "history"
	SourceAI      = "ai"
	SourceNone    = "none"
)

// SuggestCategoryInput represents the input for a category suggestion.
type SuggestCategoryInput struct {
	UserID      uuid.UUID
	Description string
}

// SuggestCategoryOutput represents a suggested category. Category is empty when nothing fits.
type SuggestCategoryOutput struct {
	Category   string
	Source     string
	Confidence float64
	Reasoning  string
}

// SuggestCategoryUseCase suggests a category from the user's history, then from the AI service.
type SuggestCategoryUseCase struct {
	expenseRepo adapter.ExpenseRepository
	suggester   adapter.CategorySuggester
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance.
// suggester may be nil when no AI service is configured.
func NewSuggestCategoryUseCase(expenseRepo adapter.ExpenseRepository, suggester adapter.CategorySuggester) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{
		expenseRepo: expenseRepo,
		suggester:   suggester,
	}
}

// Execute returns the best available suggestion.
func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, input SuggestCategoryInput) (*SuggestCategoryOutput, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeMissingExpenseFields,
			"description is required",
			domainerror.ErrDescriptionRequired,
		)
	}

	category, err := uc.expenseRepo.MostUsedCategory(ctx, input.UserID, description)
	if err != nil {
		return nil, fmt.Errorf("failed to look up category history: %w", err)
	}
	if category != "" {
		return &SuggestCategoryOutput{Category: category, Source: SourceHistory, Confidence: 1}, nil
	}

	if uc.suggester == nil || !uc.suggester.IsAvailable() {
		return &SuggestCategoryOutput{Source: SourceNone}, nil
	}

	known, err := uc.expenseRepo.ListCategories(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	suggestion, err := uc.suggester.Suggest(ctx, description, known)
	if err != nil {
		slog.Warn("Category suggestion failed",
			"user_id", input.UserID,
			"error", err,
		)
		return &SuggestCategoryOutput{Source: SourceNone}, nil
	}

	return &SuggestCategoryOutput{
		Category:   suggestion.Category,
		Source:     SourceAI,
		Confidence: suggestion.Confidence,
		Reasoning:  suggestion.Reasoning,
	}, nil
}
