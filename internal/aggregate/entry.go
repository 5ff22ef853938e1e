package aggregate

import (
	"github.com/shopspring/decimal"

	"spendo/internal/models"
)

// EntryState is the derived state of an outcome entry form. It is pure
// UI state, recomputed from current inputs and the latest snapshots on
// every change; nothing here is persisted.
type EntryState int

const (
	// EntryIdle: no amount entered yet.
	EntryIdle EntryState = iota
	// EntryEvaluating: an amount is present but the snapshots needed to
	// judge it have not arrived, or nothing is selected yet.
	EntryEvaluating
	// EntryWarned: the amount would take the category budget past its
	// limit. A warning only; submission stays allowed.
	EntryWarned
	// EntryBlocked: the amount exceeds the account balance. Submission
	// is refused without a network call.
	EntryBlocked
	// EntryClear: no signal fired.
	EntryClear
)

// String returns the state name for logging.
func (s EntryState) String() string {
	switch s {
	case EntryIdle:
		return "idle"
	case EntryEvaluating:
		return "evaluating"
	case EntryWarned:
		return "warned"
	case EntryBlocked:
		return "blocked"
	case EntryClear:
		return "clear"
	default:
		return "unknown"
	}
}

// EntryInput is what the user has typed and selected so far.
type EntryInput struct {
	// Amount is nil until the amount field holds a parseable value.
	Amount *decimal.Decimal
	// AccountSelected and CategorySelected mirror the pickers.
	AccountSelected  bool
	CategorySelected bool
}

// EntrySnapshot holds the latest fetched state the checks run against.
// Nil fields mean the corresponding fetch has not completed (or the
// category simply has no budget, which also clears the warning).
type EntrySnapshot struct {
	Account *models.Account
	Budget  *models.Budget
}

// EvaluateEntry computes the entry state from inputs and snapshots.
// The balance block wins over the budget warning.
func EvaluateEntry(snap EntrySnapshot, in EntryInput) EntryState {
	if in.Amount == nil {
		return EntryIdle
	}
	if !in.AccountSelected && !in.CategorySelected {
		return EntryEvaluating
	}

	if in.AccountSelected {
		if snap.Account == nil {
			return EntryEvaluating
		}
		if ExceedsBalance(snap.Account.Balance, *in.Amount) {
			return EntryBlocked
		}
	}

	if in.CategorySelected && snap.Budget != nil && ExceedsLimit(*snap.Budget, *in.Amount) {
		return EntryWarned
	}
	return EntryClear
}
