package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income is a single recorded inflow against an account. Incomes are
// append-only from the client's perspective: there is no update or
// delete endpoint, removal only happens server-side when the owning
// account is deleted.
type Income struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  *string         `json:"description,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	AccountID    string          `json:"accountId"`
	AccountName  *string         `json:"accountName,omitempty"`
	CategoryID   *string         `json:"categoryId,omitempty"`
	CategoryName *string         `json:"categoryName,omitempty"`
}

// Outcome is a single recorded outflow (expense) against an account.
// Same lifecycle as Income.
type Outcome struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  *string         `json:"description,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	AccountID    string          `json:"accountId"`
	AccountName  *string         `json:"accountName,omitempty"`
	CategoryID   *string         `json:"categoryId,omitempty"`
	CategoryName *string         `json:"categoryName,omitempty"`
}

// IncomeCreate is the payload for recording an income.
type IncomeCreate struct {
	Title       string          `json:"title" validate:"required"`
	Description *string         `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	AccountID   string          `json:"accountId" validate:"required"`
	CategoryID  *string         `json:"categoryId,omitempty"`
}

// OutcomeCreate is the payload for recording an outcome.
type OutcomeCreate struct {
	Title       string          `json:"title" validate:"required"`
	Description *string         `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	AccountID   string          `json:"accountId" validate:"required"`
	CategoryID  *string         `json:"categoryId,omitempty"`
}
