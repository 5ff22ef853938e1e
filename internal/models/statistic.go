package models

import "github.com/shopspring/decimal"

// DailySummary is one day of pre-aggregated totals computed server-side
// for the statistics view.
type DailySummary struct {
	Date    Date            `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Outcome decimal.Decimal `json:"outcome"`
}

// CategorySpending is the spend total for one category over the
// requested window.
type CategorySpending struct {
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
}

// Statistic is the server-side aggregate for a duration window. The
// client only requests and reshapes it; no sums are recomputed locally.
type Statistic struct {
	Duration          int                `json:"duration"`
	DailySummaries    []DailySummary     `json:"dailySummaries"`
	CategorySpendings []CategorySpending `json:"categorySpendings"`
}
