package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendo/internal/aggregate"
	"spendo/internal/models"
)

// TestEntryFlow_BudgetWarningAndBalanceBlock walks the outcome entry
// screen: a grocery budget close to its limit warns without blocking,
// an amount over the account balance blocks outright, and a submitted
// outcome advances the budget's running total server-side.
func TestEntryFlow_BudgetWarningAndBalanceBlock(t *testing.T) {
	client, backend := setup(t)
	login(t, client)
	ctx := context.Background()

	account, err := client.Accounts.Create(ctx, models.AccountCreate{
		Name:    "Wallet",
		Balance: decimal.RequireFromString("120"),
	})
	require.NoError(t, err)

	groceries := "cat-groceries"
	backend.Categories = []models.Category{{ID: groceries, Name: "Groceries"}}
	backend.Budgets = []models.Budget{{
		ID:          "b-1",
		Name:        "Groceries",
		Current:     decimal.RequireFromString("450"),
		BudgetLimit: decimal.RequireFromString("500"),
		Period:      30,
		CategoryID:  &groceries,
	}}

	checker := aggregate.NewBudgetChecker(client.Budgets)

	// Amount 50 keeps the budget exactly at its limit: no warning.
	signal, err := checker.Check(ctx, groceries, decimal.RequireFromString("50"))
	require.NoError(t, err)
	assert.False(t, signal.ExceedsLimit)

	// Amount 100 pushes it to 550: warned, but still submittable because
	// the wallet covers it.
	amount := decimal.RequireFromString("100")
	signal, err = checker.Check(ctx, groceries, amount)
	require.NoError(t, err)
	assert.True(t, signal.ExceedsLimit)

	state := aggregate.EvaluateEntry(aggregate.EntrySnapshot{
		Account: account,
		Budget:  signal.Budget,
	}, aggregate.EntryInput{
		Amount:           &amount,
		AccountSelected:  true,
		CategorySelected: true,
	})
	assert.Equal(t, aggregate.EntryWarned, state)

	// Amount 130 exceeds the wallet balance: blocked wins over warned.
	tooMuch := decimal.RequireFromString("130")
	state = aggregate.EvaluateEntry(aggregate.EntrySnapshot{
		Account: account,
		Budget:  signal.Budget,
	}, aggregate.EntryInput{
		Amount:           &tooMuch,
		AccountSelected:  true,
		CategorySelected: true,
	})
	assert.Equal(t, aggregate.EntryBlocked, state)

	// Submit the warned amount anyway. The server moves both the balance
	// and the budget's running total.
	_, err = client.Outcomes.Create(ctx, models.OutcomeCreate{
		Title:      "Weekly shop",
		Amount:     amount,
		AccountID:  account.ID,
		CategoryID: &groceries,
	})
	require.NoError(t, err)

	accounts, err := client.Accounts.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.True(t, accounts[0].Balance.Equal(decimal.RequireFromString("20")),
		"balance %s", accounts[0].Balance)

	// The checker's snapshot is stale until invalidated.
	checker.Invalidate(groceries)
	signal, err = checker.Check(ctx, groceries, decimal.RequireFromString("1"))
	require.NoError(t, err)
	require.NotNil(t, signal.Budget)
	assert.True(t, signal.Budget.Current.Equal(decimal.RequireFromString("550")),
		"current %s", signal.Budget.Current)
	assert.True(t, signal.ExceedsLimit)
}

// A category without a budget never warns, and the absence itself does
// not surface as an error on the entry screen.
func TestEntryFlow_NoBudgetCategory(t *testing.T) {
	client, backend := setup(t)
	login(t, client)
	ctx := context.Background()

	account, err := client.Accounts.Create(ctx, models.AccountCreate{
		Name:    "Wallet",
		Balance: decimal.RequireFromString("100"),
	})
	require.NoError(t, err)
	backend.Categories = []models.Category{{ID: "cat-fun", Name: "Fun"}}

	checker := aggregate.NewBudgetChecker(client.Budgets)
	signal, err := checker.Check(ctx, "cat-fun", decimal.RequireFromString("40"))
	require.NoError(t, err)
	assert.Nil(t, signal.Budget)
	assert.False(t, signal.ExceedsLimit)

	amount := decimal.RequireFromString("40")
	state := aggregate.EvaluateEntry(aggregate.EntrySnapshot{Account: account}, aggregate.EntryInput{
		Amount:           &amount,
		AccountSelected:  true,
		CategorySelected: true,
	})
	assert.Equal(t, aggregate.EntryClear, state)
}
