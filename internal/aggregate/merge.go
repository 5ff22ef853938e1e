package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"spendo/internal/models"
)

// Kind tags a merged history entry with its origin.
type Kind string

// History entry kinds.
const (
	KindIncome   Kind = "income"
	KindOutcome  Kind = "outcome"
	KindTransfer Kind = "transfer"
)

// HistoryEntry is one row of the unified transaction history.
type HistoryEntry struct {
	Kind      Kind
	ID        string
	Title     string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// Signed returns the amount with outcomes negated, for display of
// flows against an account.
func (e HistoryEntry) Signed() decimal.Decimal {
	if e.Kind == KindOutcome {
		return e.Amount.Neg()
	}
	return e.Amount
}

// Merge combines incomes, outcomes and transfers into one sequence
// sorted most-recent-first by creation timestamp. The sort is stable,
// so ties keep fetch order and identical inputs always produce the
// identical sequence.
func Merge(incomes []models.Income, outcomes []models.Outcome, transfers []models.Transfer) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(incomes)+len(outcomes)+len(transfers))

	for _, in := range incomes {
		entries = append(entries, HistoryEntry{
			Kind:      KindIncome,
			ID:        in.ID,
			Title:     in.Title,
			Amount:    in.Amount,
			CreatedAt: in.CreatedAt,
		})
	}
	for _, out := range outcomes {
		entries = append(entries, HistoryEntry{
			Kind:      KindOutcome,
			ID:        out.ID,
			Title:     out.Title,
			Amount:    out.Amount,
			CreatedAt: out.CreatedAt,
		})
	}
	for _, tr := range transfers {
		entries = append(entries, HistoryEntry{
			Kind:      KindTransfer,
			ID:        tr.ID,
			Title:     tr.Title,
			Amount:    tr.Amount,
			CreatedAt: tr.CreatedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries
}
