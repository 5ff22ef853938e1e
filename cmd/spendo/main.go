package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"spendo/internal/aggregate"
	"spendo/internal/api"
	"spendo/internal/auth"
	"spendo/internal/config"
	apperrors "spendo/internal/errors"
	"spendo/internal/logger"
	"spendo/internal/models"
)

func main() {
	logger.Init(os.Getenv("SPENDO_ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func usage() error {
	return fmt.Errorf(`usage: spendo <command> [args]

commands:
  login <email>                        sign in and persist the token
  logout                               clear the persisted token
  whoami                               show the authenticated user
  accounts                             list accounts with balances
  account-create <name> <balance>      create an account
  account-delete <id>                  delete an account
  history                              unified transaction history
  rollup <account-id>                  income/outcome totals for one account
  budgets                              list budgets with remaining amounts
  stats [days]                         statistics window (default 30)`)
}

func run() error {
	if len(os.Args) < 2 {
		return usage()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := api.New(api.Config{
		BaseURL:    cfg.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout},
		Tokens:     auth.NewFileStore(cfg.TokenPath),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.RequestTimeout)
	defer cancel()

	command := os.Args[1]
	args := os.Args[2:]

	// Everything except session management needs a stored token.
	switch command {
	case "whoami", "accounts", "account-create", "account-delete",
		"history", "rollup", "budgets", "stats", "statistics":
		if err := requireSession(client); err != nil {
			return err
		}
	}

	switch command {
	case "login":
		if len(args) != 1 {
			return fmt.Errorf("usage: spendo login <email>")
		}
		return runLogin(ctx, client, args[0])
	case "logout":
		return client.Tokens().Clear()
	case "whoami":
		return runWhoami(ctx, client)
	case "accounts":
		return runAccounts(ctx, client)
	case "account-create":
		if len(args) != 2 {
			return fmt.Errorf("usage: spendo account-create <name> <balance>")
		}
		return runAccountCreate(ctx, client, args[0], args[1])
	case "account-delete":
		if len(args) != 1 {
			return fmt.Errorf("usage: spendo account-delete <id>")
		}
		return runAccountDelete(ctx, client, args[0])
	case "history":
		return runHistory(ctx, client)
	case "rollup":
		if len(args) != 1 {
			return fmt.Errorf("usage: spendo rollup <account-id>")
		}
		return runRollup(ctx, client, args[0])
	case "budgets":
		return runBudgets(ctx, client)
	case "stats", "statistics":
		days := api.DurationMonth
		if len(args) == 1 {
			days, err = strconv.Atoi(args[0])
			if err != nil || days <= 0 {
				return fmt.Errorf("invalid duration %q", args[0])
			}
		}
		return runStats(ctx, client, days)
	default:
		return usage()
	}
}

// requireSession fails fast with a friendly error instead of letting
// the server answer 401.
func requireSession(client *api.Client) error {
	if _, ok := client.Tokens().Token(); !ok {
		return apperrors.WithMessage(apperrors.ErrNoToken, "not signed in; run: spendo login <email>")
	}
	return nil
}

func runLogin(ctx context.Context, client *api.Client, email string) error {
	token, err := client.Users.Login(ctx, email)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if claims, err := auth.Inspect(token); err == nil && !claims.Expiry.IsZero() {
		fmt.Printf("Signed in as %s (session expires %s)\n", email, claims.Expiry.Format(time.RFC1123))
		return nil
	}
	fmt.Printf("Signed in as %s\n", email)
	return nil
}

func runWhoami(ctx context.Context, client *api.Client) error {
	user, err := client.Users.Get(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	return nil
}

func runAccounts(ctx context.Context, client *api.Client) error {
	accounts, err := client.Accounts.List(ctx)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Println("No accounts yet.")
		return nil
	}
	for _, account := range accounts {
		fmt.Printf("%-14s %-20s %12s\n", account.ID, account.Name, account.Balance.StringFixed(2))
	}
	return nil
}

func runAccountCreate(ctx context.Context, client *api.Client, name, balance string) error {
	amount, err := decimal.NewFromString(balance)
	if err != nil {
		return fmt.Errorf("invalid balance %q: %w", balance, err)
	}
	account, err := client.Accounts.Create(ctx, models.AccountCreate{Name: name, Balance: amount})
	if err != nil {
		return err
	}
	fmt.Printf("Created account %s (%s)\n", account.Name, account.ID)
	return nil
}

func runAccountDelete(ctx context.Context, client *api.Client, id string) error {
	remaining, err := client.Accounts.Delete(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted. %d account(s) remaining.\n", len(remaining))
	return nil
}

func runHistory(ctx context.Context, client *api.Client) error {
	incomes, err := client.Incomes.List(ctx, api.TransactionFilter{})
	if err != nil {
		return err
	}
	outcomes, err := client.Outcomes.List(ctx, api.TransactionFilter{})
	if err != nil {
		return err
	}
	transfers, err := client.Transfers.List(ctx)
	if err != nil {
		return err
	}

	for _, entry := range aggregate.Merge(incomes, outcomes, transfers) {
		fmt.Printf("%s  %-8s %-24s %12s\n",
			entry.CreatedAt.Format("2006-01-02"),
			entry.Kind,
			entry.Title,
			entry.Signed().StringFixed(2),
		)
	}
	return nil
}

func runRollup(ctx context.Context, client *api.Client, accountID string) error {
	roller := aggregate.NewRoller(client.Incomes, client.Outcomes)
	totals, err := roller.Refresh(ctx, accountID)
	if err != nil {
		return err
	}
	fmt.Printf("Income:  %12s%s\n", totals.Income.StringFixed(2), staleMark(totals.IncomeStale))
	fmt.Printf("Outcome: %12s%s\n", totals.Outcome.StringFixed(2), staleMark(totals.OutcomeStale))
	fmt.Printf("Net:     %12s\n", totals.Income.Sub(totals.Outcome).StringFixed(2))
	return nil
}

func staleMark(stale bool) string {
	if stale {
		return "  (stale)"
	}
	return ""
}

func runBudgets(ctx context.Context, client *api.Client) error {
	budgets, err := client.Budgets.List(ctx)
	if err != nil {
		return err
	}
	if len(budgets) == 0 {
		fmt.Println("No budgets yet.")
		return nil
	}
	for _, budget := range budgets {
		fmt.Printf("%-20s %12s of %12s (remaining %s)\n",
			budget.Name,
			budget.Current.StringFixed(2),
			budget.BudgetLimit.StringFixed(2),
			budget.Remaining().StringFixed(2),
		)
	}
	return nil
}

func runStats(ctx context.Context, client *api.Client, days int) error {
	stat, err := client.Statistics.Get(ctx, days)
	if err != nil {
		return err
	}
	fmt.Printf("Last %d days\n", stat.Duration)
	for _, day := range stat.DailySummaries {
		fmt.Printf("  %s  in %12s  out %12s\n",
			day.Date.String(), day.Income.StringFixed(2), day.Outcome.StringFixed(2))
	}
	if len(stat.CategorySpendings) > 0 {
		fmt.Println("By category:")
		for _, spending := range stat.CategorySpendings {
			fmt.Printf("  %-20s %12s\n", spending.CategoryName, spending.Amount.StringFixed(2))
		}
	}
	return nil
}
