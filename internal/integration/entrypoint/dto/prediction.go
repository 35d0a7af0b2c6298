package dto

import (
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// WeeklyTrendResponse compares the last seven days with the seven before.
type WeeklyTrendResponse struct {
	CurrentWeek   decimal.Decimal `json:"current_week"`
	PreviousWeek  decimal.Decimal `json:"previous_week"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Direction     string          `json:"direction"`
	Confidence    string          `json:"confidence"`
}

// MonthlyProjectionResponse extrapolates month-to-date spending.
type MonthlyProjectionResponse struct {
	SpentToDate    decimal.Decimal `json:"spent_to_date"`
	DailyAverage   decimal.Decimal `json:"daily_average"`
	ProjectedTotal decimal.Decimal `json:"projected_total"`
	DaysElapsed    int             `json:"days_elapsed"`
	DaysInMonth    int             `json:"days_in_month"`
	Confidence     string          `json:"confidence"`
}

// DominantCategoryResponse names the category with the largest share this month.
type DominantCategoryResponse struct {
	Category   string          `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Percentage decimal.Decimal `json:"percentage"`
	Confidence string          `json:"confidence"`
}

// BudgetOverrunRiskResponse compares the projection with the active budget.
type BudgetOverrunRiskResponse struct {
	BudgetAmount   decimal.Decimal `json:"budget_amount"`
	ProjectedTotal decimal.Decimal `json:"projected_total"`
	ProjectedOver  decimal.Decimal `json:"projected_over"`
	WillExceed     bool            `json:"will_exceed"`
	Confidence     string          `json:"confidence"`
}

// WeekdayConcentrationResponse names the weekday with the most spending.
type WeekdayConcentrationResponse struct {
	Weekday    string          `json:"weekday"`
	Total      decimal.Decimal `json:"total"`
	Percentage decimal.Decimal `json:"percentage"`
	Confidence string          `json:"confidence"`
}

// PredictionResponse groups the predictions; absent entries lacked enough data.
type PredictionResponse struct {
	Date                 valueobject.Date              `json:"date"`
	WeeklyTrend          *WeeklyTrendResponse          `json:"weekly_trend"`
	MonthlyProjection    *MonthlyProjectionResponse    `json:"monthly_projection"`
	DominantCategory     *DominantCategoryResponse     `json:"dominant_category"`
	BudgetOverrunRisk    *BudgetOverrunRiskResponse    `json:"budget_overrun_risk"`
	WeekdayConcentration *WeekdayConcentrationResponse `json:"weekday_concentration"`
}

// ToPredictionResponse converts a domain SpendingPrediction.
func ToPredictionResponse(date valueobject.Date, p entity.SpendingPrediction) PredictionResponse {
	resp := PredictionResponse{Date: date}
	if t := p.WeeklyTrend; t != nil {
		resp.WeeklyTrend = &WeeklyTrendResponse{
			CurrentWeek:   t.CurrentWeek,
			PreviousWeek:  t.PreviousWeek,
			ChangePercent: t.ChangePercent,
			Direction:     string(t.Direction),
			Confidence:    string(t.Confidence),
		}
	}
	if m := p.MonthlyProjection; m != nil {
		resp.MonthlyProjection = &MonthlyProjectionResponse{
			SpentToDate:    m.SpentToDate,
			DailyAverage:   m.DailyAverage,
			ProjectedTotal: m.ProjectedTotal,
			DaysElapsed:    m.DaysElapsed,
			DaysInMonth:    m.DaysInMonth,
			Confidence:     string(m.Confidence),
		}
	}
	if d := p.DominantCategory; d != nil {
		resp.DominantCategory = &DominantCategoryResponse{
			Category:   d.Category,
			Total:      d.Total,
			Percentage: d.Percentage,
			Confidence: string(d.Confidence),
		}
	}
	if r := p.BudgetOverrunRisk; r != nil {
		resp.BudgetOverrunRisk = &BudgetOverrunRiskResponse{
			BudgetAmount:   r.BudgetAmount,
			ProjectedTotal: r.ProjectedTotal,
			ProjectedOver:  r.ProjectedOver,
			WillExceed:     r.WillExceed,
			Confidence:     string(r.Confidence),
		}
	}
	if w := p.WeekdayConcentration; w != nil {
		resp.WeekdayConcentration = &WeekdayConcentrationResponse{
			Weekday:    w.Weekday.String(),
			Total:      w.Total,
			Percentage: w.Percentage,
			Confidence: string(w.Confidence),
		}
	}
	return resp
}
