package aggregate

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	apperrors "spendo/internal/errors"
	"spendo/internal/models"
)

// BudgetSource finds the budget for a category; implemented by
// *api.BudgetsService.
type BudgetSource interface {
	GetByCategory(ctx context.Context, categoryID string) (*models.Budget, error)
}

// BudgetSignal is the outcome of a budget check for a candidate amount.
// A nil Budget means no budget covers the category, which is never a
// warning.
type BudgetSignal struct {
	Budget       *models.Budget
	Projected    decimal.Decimal
	ExceedsLimit bool
}

// ExceedsLimit reports whether spending candidate on top of the
// budget's running total would pass its limit. Landing exactly on the
// limit is not exceeding.
func ExceedsLimit(budget models.Budget, candidate decimal.Decimal) bool {
	return budget.Current.Add(candidate).GreaterThan(budget.BudgetLimit)
}

// ExceedsBalance reports whether candidate is more than the account
// balance. Spending the exact balance is allowed. Unlike the budget
// warning, this signal blocks submission.
func ExceedsBalance(balance, candidate decimal.Decimal) bool {
	return candidate.GreaterThan(balance)
}

// BudgetChecker evaluates candidate amounts against category budgets.
// The check runs on every keystroke, so lookups are deduplicated with
// singleflight and the last fetched budget is kept as a snapshot per
// category.
type BudgetChecker struct {
	budgets BudgetSource
	group   singleflight.Group

	mu        sync.RWMutex
	snapshots map[string]*models.Budget // nil entry: category has no budget
}

// NewBudgetChecker creates a checker over the given source.
func NewBudgetChecker(budgets BudgetSource) *BudgetChecker {
	return &BudgetChecker{
		budgets:   budgets,
		snapshots: make(map[string]*models.Budget),
	}
}

// Check evaluates candidate against the category's budget. A category
// without a budget yields a clear signal, not an error; only a failed
// lookup is an error.
func (c *BudgetChecker) Check(ctx context.Context, categoryID string, candidate decimal.Decimal) (BudgetSignal, error) {
	budget, err := c.lookup(ctx, categoryID)
	if err != nil {
		return BudgetSignal{}, err
	}
	if budget == nil {
		return BudgetSignal{Projected: candidate}, nil
	}
	projected := budget.Current.Add(candidate)
	return BudgetSignal{
		Budget:       budget,
		Projected:    projected,
		ExceedsLimit: projected.GreaterThan(budget.BudgetLimit),
	}, nil
}

// Invalidate drops the cached snapshot for a category, forcing the next
// check to re-fetch. Call after creating an outcome, since the server
// advances the budget's running total.
func (c *BudgetChecker) Invalidate(categoryID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.snapshots, categoryID)
}

func (c *BudgetChecker) lookup(ctx context.Context, categoryID string) (*models.Budget, error) {
	c.mu.RLock()
	budget, ok := c.snapshots[categoryID]
	c.mu.RUnlock()
	if ok {
		return budget, nil
	}

	v, err, _ := c.group.Do(categoryID, func() (interface{}, error) {
		budget, err := c.budgets.GetByCategory(ctx, categoryID)
		if errors.Is(err, apperrors.ErrBudgetNotFound) {
			budget, err = nil, nil
		}
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.snapshots[categoryID] = budget
		c.mu.Unlock()
		return budget, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Budget), nil
}
