package models

import "github.com/shopspring/decimal"

// Budget is a spending cap tracked per category over a period, with a
// running total maintained by the backend. Period counts days; the
// backend derives EndDate from StartDate plus the period.
type Budget struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	StartDate   Date            `json:"startDate"`
	EndDate     Date            `json:"endDate"`
	Current     decimal.Decimal `json:"current"`
	BudgetLimit decimal.Decimal `json:"budgetLimit"`
	Period      int             `json:"period"`
	CategoryID  *string         `json:"categoryId,omitempty"`
}

// BudgetCreate is the payload for creating or updating a budget.
type BudgetCreate struct {
	Name        string          `json:"name" validate:"required"`
	StartDate   Date            `json:"startDate"`
	Period      int             `json:"period" validate:"gt=0"`
	BudgetLimit decimal.Decimal `json:"budgetLimit" validate:"gt=0"`
	CategoryID  *string         `json:"categoryId,omitempty"`
	UserID      string          `json:"userId" validate:"required"`
}

// Remaining returns how much of the budget limit is left. Negative when
// the budget is already overspent.
func (b Budget) Remaining() decimal.Decimal {
	return b.BudgetLimit.Sub(b.Current)
}
