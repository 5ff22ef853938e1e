package models

import "github.com/shopspring/decimal"

// Account represents a financial account owned by one user. The balance
// is server-authoritative; the client never mutates it directly.
type Account struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// AccountCreate is the payload for creating an account.
type AccountCreate struct {
	Name    string          `json:"name" validate:"required"`
	Balance decimal.Decimal `json:"balance" validate:"gte=0"`
}
