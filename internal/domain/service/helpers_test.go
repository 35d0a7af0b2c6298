package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

var testUserID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

func date(s string) valueobject.Date {
	return valueobject.MustParseDate(s)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(value, category, day string) *entity.Expense {
	return entity.NewExpense(testUserID, amount(value), category, date(day), "")
}

func intPtr(v int) *int {
	return &v
}

func datePtr(s string) *valueobject.Date {
	d := date(s)
	return &d
}
