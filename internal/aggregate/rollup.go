// Package aggregate combines raw resource-client results into the
// derived values the presentation layer needs: per-account totals,
// budget and balance signals, and a merged transaction history. It is
// the single home for cross-resource joins, so no caller re-implements
// them per screen.
package aggregate

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"spendo/internal/api"
	"spendo/internal/logger"
	"spendo/internal/models"
)

// IncomeSource lists incomes; implemented by *api.IncomesService.
type IncomeSource interface {
	List(ctx context.Context, filter api.TransactionFilter) ([]models.Income, error)
}

// OutcomeSource lists outcomes; implemented by *api.OutcomesService.
type OutcomeSource interface {
	List(ctx context.Context, filter api.TransactionFilter) ([]models.Outcome, error)
}

// AccountTotals is the published rollup for one account. A stale flag
// marks a slice whose fetch failed, so the value shown is the previous
// one (or zero on the first rollup) rather than an aggregate-wide
// failure.
type AccountTotals struct {
	AccountID    string
	Income       decimal.Decimal
	Outcome      decimal.Decimal
	IncomeStale  bool
	OutcomeStale bool
}

// Roller computes and publishes per-account income/outcome totals.
// Refreshing an account that already has a refresh in flight cancels
// the older one, so a slow stale response can never overwrite a newer
// result.
type Roller struct {
	incomes  IncomeSource
	outcomes OutcomeSource
	log      *zap.SugaredLogger

	mu      sync.Mutex
	totals  map[string]AccountTotals
	cancels map[string]context.CancelFunc
}

// NewRoller creates a Roller over the given sources.
func NewRoller(incomes IncomeSource, outcomes OutcomeSource) *Roller {
	return &Roller{
		incomes:  incomes,
		outcomes: outcomes,
		log:      logger.Named("aggregate"),
		totals:   make(map[string]AccountTotals),
		cancels:  make(map[string]context.CancelFunc),
	}
}

// Totals returns the last published rollup for an account.
func (r *Roller) Totals(accountID string) (AccountTotals, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.totals[accountID]
	return t, ok
}

// Refresh fetches incomes and outcomes for the account concurrently,
// sums each side with exact decimal addition, and publishes the result.
// The two fetches are independent: either may fail without blocking the
// other, and neither ordering is assumed.
func (r *Roller) Refresh(ctx context.Context, accountID string) (AccountTotals, error) {
	ctx, cancel := context.WithCancel(ctx)
	r.supersede(accountID, cancel)
	defer cancel()

	filter := api.TransactionFilter{AccountIDs: []string{accountID}}

	prev, _ := r.Totals(accountID)
	next := AccountTotals{AccountID: accountID, Income: prev.Income, Outcome: prev.Outcome}

	var mu sync.Mutex
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		incomes, err := r.incomes.List(ctx, filter)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			r.log.Warnw("income fetch failed, keeping previous total",
				"account_id", accountID, "error", err)
			next.IncomeStale = true
			return
		}
		next.Income = SumIncomes(incomes)
	}()
	go func() {
		defer wg.Done()
		outcomes, err := r.outcomes.List(ctx, filter)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			r.log.Warnw("outcome fetch failed, keeping previous total",
				"account_id", accountID, "error", err)
			next.OutcomeStale = true
			return
		}
		next.Outcome = SumOutcomes(outcomes)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		// Superseded by a newer refresh; its result stands, not ours.
		return next, err
	}

	r.publish(accountID, next)
	return next, nil
}

// supersede registers cancel for the account, cancelling any refresh
// already in flight.
func (r *Roller) supersede(accountID string, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.cancels[accountID]; ok {
		prev()
	}
	r.cancels[accountID] = cancel
}

func (r *Roller) publish(accountID string, t AccountTotals) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.totals[accountID] = t
	delete(r.cancels, accountID)
}

// SumIncomes adds income amounts with exact decimal arithmetic.
func SumIncomes(incomes []models.Income) decimal.Decimal {
	total := decimal.Zero
	for _, in := range incomes {
		total = total.Add(in.Amount)
	}
	return total
}

// SumOutcomes adds outcome amounts with exact decimal arithmetic.
func SumOutcomes(outcomes []models.Outcome) decimal.Decimal {
	total := decimal.Zero
	for _, out := range outcomes {
		total = total.Add(out.Amount)
	}
	return total
}
