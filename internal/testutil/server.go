// Package testutil provides the in-memory fake Spendo backend and
// fixture helpers shared by the test suites. The fake models the
// server-side behavior the client depends on: bearer auth, cascade
// deletes, budget running totals and pre-aggregated statistics.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"spendo/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// FakeBackend is an in-memory Spendo API. All state is guarded by one
// mutex; tests may inspect the exported fields between requests.
type FakeBackend struct {
	mu sync.Mutex

	// ValidToken is the bearer token issued by login and required on
	// protected routes.
	ValidToken string

	Accounts   []models.Account
	Incomes    []models.Income
	Outcomes   []models.Outcome
	Transfers  []models.Transfer
	Budgets    []models.Budget
	Categories []models.Category
	Currencies []models.Currency
	Users      []models.User

	nextID int
	// Clock stamps created records; tests may override it for
	// deterministic history ordering.
	Clock func() time.Time
}

// NewFakeBackend creates an empty backend issuing the given token.
func NewFakeBackend(token string) *FakeBackend {
	return &FakeBackend{
		ValidToken: token,
		Clock:      time.Now,
	}
}

// Start runs the backend on an httptest server that is torn down with
// the test. The returned URL already includes the /api prefix.
func (b *FakeBackend) Start(t *testing.T) (baseURL string, client *http.Client) {
	t.Helper()

	server := httptest.NewServer(b.router())
	t.Cleanup(server.Close)
	return server.URL + "/api", server.Client()
}

func (b *FakeBackend) id(prefix string) string {
	b.nextID++
	return fmt.Sprintf("%s-%d", prefix, b.nextID)
}

func (b *FakeBackend) router() *gin.Engine {
	router := gin.New()
	api := router.Group("/api")

	// Public routes: session issuance and the currency picker.
	api.POST("/user/login", b.login)
	api.POST("/user/signup", b.signup)
	api.GET("/currency", b.listCurrencies)

	protected := api.Group("/", b.requireBearer)
	protected.GET("/user", b.currentUser)

	protected.GET("/account", b.listAccounts)
	protected.POST("/account", b.createAccount)
	protected.DELETE("/account/:id", b.deleteAccount)

	protected.GET("/income", b.listIncomes)
	protected.POST("/income", b.createIncome)
	protected.GET("/expense", b.listOutcomes)
	protected.POST("/expense", b.createOutcome)

	protected.GET("/category", b.listCategories)

	protected.GET("/budget", b.listBudgets)
	protected.POST("/budget", b.createBudget)
	protected.GET("/budget/:id", b.getBudget)
	protected.PUT("/budget/:id", b.updateBudget)
	protected.DELETE("/budget/:id", b.deleteBudget)

	protected.GET("/transfer", b.listTransfers)
	protected.POST("/transfer", b.createTransfer)

	protected.GET("/statistic", b.statistic)

	return router
}

func (b *FakeBackend) requireBearer(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") || strings.TrimPrefix(header, "Bearer ") != b.ValidToken {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}

func (b *FakeBackend) login(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": b.ValidToken})
}

func (b *FakeBackend) signup(c *gin.Context) {
	var req models.Signup
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	user := models.User{
		ID:         b.id("user"),
		Email:      req.Email,
		Name:       req.Name,
		CurrencyID: req.CurrencyID,
	}
	b.Users = append(b.Users, user)
	c.JSON(http.StatusCreated, user)
}

func (b *FakeBackend) currentUser(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.Users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no user"})
		return
	}
	c.JSON(http.StatusOK, b.Users[0])
}

func (b *FakeBackend) listCurrencies(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, b.Currencies)
}

func (b *FakeBackend) listAccounts(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, b.Accounts)
}

func (b *FakeBackend) createAccount(c *gin.Context) {
	var req models.AccountCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	account := models.Account{ID: b.id("acc"), Name: req.Name, Balance: req.Balance}
	b.Accounts = append(b.Accounts, account)
	c.JSON(http.StatusCreated, account)
}

// deleteAccount removes the account and cascades to its incomes and
// outcomes, like the real backend.
func (b *FakeBackend) deleteAccount(c *gin.Context) {
	id := c.Param("id")

	b.mu.Lock()
	defer b.mu.Unlock()
	idx := -1
	for i, a := range b.Accounts {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	b.Accounts = append(b.Accounts[:idx], b.Accounts[idx+1:]...)

	kept := b.Incomes[:0]
	for _, in := range b.Incomes {
		if in.AccountID != id {
			kept = append(kept, in)
		}
	}
	b.Incomes = kept

	keptOut := b.Outcomes[:0]
	for _, out := range b.Outcomes {
		if out.AccountID != id {
			keptOut = append(keptOut, out)
		}
	}
	b.Outcomes = keptOut

	c.Status(http.StatusNoContent)
}

type txFilter struct {
	accountIDs  map[string]bool
	categoryIDs map[string]bool
	start, end  *time.Time
}

func parseTxFilter(c *gin.Context) (txFilter, error) {
	f := txFilter{}
	if ids := c.QueryArray("accountIds"); len(ids) > 0 {
		f.accountIDs = make(map[string]bool)
		for _, id := range ids {
			f.accountIDs[id] = true
		}
	}
	if ids := c.QueryArray("categoryIds"); len(ids) > 0 {
		f.categoryIDs = make(map[string]bool)
		for _, id := range ids {
			f.categoryIDs[id] = true
		}
	}
	if s := c.Query("startDate"); s != "" {
		d, err := time.Parse(models.DateLayout, s)
		if err != nil {
			return f, err
		}
		f.start = &d
	}
	if s := c.Query("endDate"); s != "" {
		d, err := time.Parse(models.DateLayout, s)
		if err != nil {
			return f, err
		}
		end := d.AddDate(0, 0, 1)
		f.end = &end
	}
	return f, nil
}

func (f txFilter) matches(accountID string, categoryID *string, createdAt time.Time) bool {
	if f.accountIDs != nil && !f.accountIDs[accountID] {
		return false
	}
	if f.categoryIDs != nil && (categoryID == nil || !f.categoryIDs[*categoryID]) {
		return false
	}
	if f.start != nil && createdAt.Before(*f.start) {
		return false
	}
	if f.end != nil && !createdAt.Before(*f.end) {
		return false
	}
	return true
}

func (b *FakeBackend) listIncomes(c *gin.Context) {
	filter, err := parseTxFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	result := []models.Income{}
	for _, in := range b.Incomes {
		if filter.matches(in.AccountID, in.CategoryID, in.CreatedAt) {
			result = append(result, in)
		}
	}
	c.JSON(http.StatusOK, result)
}

func (b *FakeBackend) createIncome(c *gin.Context) {
	var req models.IncomeCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.Clock()
	income := models.Income{
		ID:          b.id("in"),
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		CreatedAt:   now,
		UpdatedAt:   now,
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
	}
	b.Incomes = append(b.Incomes, income)
	b.adjustBalance(req.AccountID, req.Amount)
	c.JSON(http.StatusCreated, income)
}

func (b *FakeBackend) listOutcomes(c *gin.Context) {
	filter, err := parseTxFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	result := []models.Outcome{}
	for _, out := range b.Outcomes {
		if filter.matches(out.AccountID, out.CategoryID, out.CreatedAt) {
			result = append(result, out)
		}
	}
	c.JSON(http.StatusOK, result)
}

func (b *FakeBackend) createOutcome(c *gin.Context) {
	var req models.OutcomeCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.Clock()
	outcome := models.Outcome{
		ID:          b.id("out"),
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		CreatedAt:   now,
		UpdatedAt:   now,
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
	}
	b.Outcomes = append(b.Outcomes, outcome)
	b.adjustBalance(req.AccountID, req.Amount.Neg())

	// The server advances the matching budget's running total.
	if req.CategoryID != nil {
		for i := range b.Budgets {
			if b.Budgets[i].CategoryID != nil && *b.Budgets[i].CategoryID == *req.CategoryID {
				b.Budgets[i].Current = b.Budgets[i].Current.Add(req.Amount)
				break
			}
		}
	}
	c.JSON(http.StatusCreated, outcome)
}

func (b *FakeBackend) adjustBalance(accountID string, delta decimal.Decimal) {
	for i := range b.Accounts {
		if b.Accounts[i].ID == accountID {
			b.Accounts[i].Balance = b.Accounts[i].Balance.Add(delta)
			return
		}
	}
}

func (b *FakeBackend) listCategories(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, b.Categories)
}

func (b *FakeBackend) listBudgets(c *gin.Context) {
	categoryIDs := c.QueryArray("categoryIds")

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(categoryIDs) == 0 {
		c.JSON(http.StatusOK, b.Budgets)
		return
	}
	wanted := make(map[string]bool)
	for _, id := range categoryIDs {
		wanted[id] = true
	}
	result := []models.Budget{}
	for _, budget := range b.Budgets {
		if budget.CategoryID != nil && wanted[*budget.CategoryID] {
			result = append(result, budget)
		}
	}
	c.JSON(http.StatusOK, result)
}

func (b *FakeBackend) createBudget(c *gin.Context) {
	var req models.BudgetCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	budget := models.Budget{
		ID:          b.id("b"),
		Name:        req.Name,
		StartDate:   req.StartDate,
		EndDate:     models.NewDate(req.StartDate.AddDate(0, 0, req.Period)),
		Current:     decimal.Zero,
		BudgetLimit: req.BudgetLimit,
		Period:      req.Period,
		CategoryID:  req.CategoryID,
	}
	b.Budgets = append(b.Budgets, budget)
	c.JSON(http.StatusCreated, budget)
}

func (b *FakeBackend) getBudget(c *gin.Context) {
	id := c.Param("id")

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, budget := range b.Budgets {
		if budget.ID == id {
			c.JSON(http.StatusOK, budget)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "budget not found"})
}

func (b *FakeBackend) updateBudget(c *gin.Context) {
	id := c.Param("id")
	var req models.BudgetCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Budgets {
		if b.Budgets[i].ID == id {
			b.Budgets[i].Name = req.Name
			b.Budgets[i].StartDate = req.StartDate
			b.Budgets[i].EndDate = models.NewDate(req.StartDate.AddDate(0, 0, req.Period))
			b.Budgets[i].Period = req.Period
			b.Budgets[i].BudgetLimit = req.BudgetLimit
			b.Budgets[i].CategoryID = req.CategoryID
			c.JSON(http.StatusOK, b.Budgets[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "budget not found"})
}

func (b *FakeBackend) deleteBudget(c *gin.Context) {
	id := c.Param("id")

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Budgets {
		if b.Budgets[i].ID == id {
			b.Budgets = append(b.Budgets[:i], b.Budgets[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "budget not found"})
}

func (b *FakeBackend) listTransfers(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, b.Transfers)
}

func (b *FakeBackend) createTransfer(c *gin.Context) {
	var req models.TransferCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	transfer := models.Transfer{
		ID:              b.id("tr"),
		Title:           req.Title,
		Description:     req.Description,
		Amount:          req.Amount,
		CreatedAt:       b.Clock(),
		SourceAccountID: req.SourceAccountID,
		TargetAccountID: req.TargetAccountID,
		CategoryID:      req.CategoryID,
	}
	b.Transfers = append(b.Transfers, transfer)
	b.adjustBalance(req.SourceAccountID, req.Amount.Neg())
	b.adjustBalance(req.TargetAccountID, req.Amount)
	c.JSON(http.StatusCreated, transfer)
}

// statistic computes the pre-aggregated daily summaries and category
// spending the way the real backend does, over the requested window.
func (b *FakeBackend) statistic(c *gin.Context) {
	duration := 30
	if s := c.Query("duration"); s != "" {
		if _, err := fmt.Sscanf(s, "%d", &duration); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid duration"})
			return
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	cutoff := b.Clock().AddDate(0, 0, -duration)

	type daily struct{ income, outcome decimal.Decimal }
	days := map[string]*daily{}
	byCategory := map[string]decimal.Decimal{}

	for _, in := range b.Incomes {
		if in.CreatedAt.Before(cutoff) {
			continue
		}
		key := in.CreatedAt.Format(models.DateLayout)
		if days[key] == nil {
			days[key] = &daily{income: decimal.Zero, outcome: decimal.Zero}
		}
		days[key].income = days[key].income.Add(in.Amount)
	}
	for _, out := range b.Outcomes {
		if out.CreatedAt.Before(cutoff) {
			continue
		}
		key := out.CreatedAt.Format(models.DateLayout)
		if days[key] == nil {
			days[key] = &daily{income: decimal.Zero, outcome: decimal.Zero}
		}
		days[key].outcome = days[key].outcome.Add(out.Amount)
		if out.CategoryID != nil {
			byCategory[*out.CategoryID] = byCategory[*out.CategoryID].Add(out.Amount)
		}
	}

	stat := models.Statistic{Duration: duration}
	for key, d := range days {
		date, _ := models.ParseDate(key)
		stat.DailySummaries = append(stat.DailySummaries, models.DailySummary{
			Date:    date,
			Income:  d.income,
			Outcome: d.outcome,
		})
	}
	for id, amount := range byCategory {
		name := id
		for _, cat := range b.Categories {
			if cat.ID == id {
				name = cat.Name
				break
			}
		}
		stat.CategorySpendings = append(stat.CategorySpendings, models.CategorySpending{
			CategoryID:   id,
			CategoryName: name,
			Amount:       amount,
		})
	}
	c.JSON(http.StatusOK, stat)
}
