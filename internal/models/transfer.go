package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is a balance movement between two accounts, recorded as its
// own entity.
type Transfer struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	CreatedAt       time.Time       `json:"createdAt"`
	SourceAccountID string          `json:"sourceAccountId"`
	TargetAccountID string          `json:"targetAccountId"`
	CategoryID      *string         `json:"categoryId,omitempty"`
}

// TransferCreate is the payload for recording a transfer.
type TransferCreate struct {
	Title           string          `json:"title" validate:"required"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount" validate:"gt=0"`
	SourceAccountID string          `json:"sourceAccountId" validate:"required"`
	TargetAccountID string          `json:"targetAccountId" validate:"required,nefield=SourceAccountID"`
	CategoryID      *string         `json:"categoryId,omitempty"`
}
