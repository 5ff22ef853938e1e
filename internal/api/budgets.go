package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	apperrors "spendo/internal/errors"
	"spendo/internal/models"
	"spendo/internal/validator"
)

// BudgetsService wraps the /budget resource.
type BudgetsService struct {
	client *Client
}

// List returns all budgets for the authenticated user.
func (s *BudgetsService) List(ctx context.Context) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.client.get(ctx, "/budget", nil, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

// Get returns a single budget by id. A 404 surfaces as NOT_FOUND so
// callers can treat a deleted budget differently from a failing server.
func (s *BudgetsService) Get(ctx context.Context, id string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.client.get(ctx, "/budget/"+id, nil, &budget); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.StatusCode == http.StatusNotFound {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "budget "+id+" not found")
		}
		return nil, err
	}
	return &budget, nil
}

// GetByCategory returns the first budget associated with a category.
// An empty result is BUDGET_NOT_FOUND, which callers treat as "no
// warning needed"; only a failed call is an operational error.
func (s *BudgetsService) GetByCategory(ctx context.Context, categoryID string) (*models.Budget, error) {
	q := url.Values{}
	q.Add("categoryIds", categoryID)

	var budgets []models.Budget
	if err := s.client.get(ctx, "/budget", q, &budgets); err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrBudgetNotFound, "no budget for category "+categoryID)
	}
	return &budgets[0], nil
}

// Create creates a budget.
func (s *BudgetsService) Create(ctx context.Context, dto models.BudgetCreate) (*models.Budget, error) {
	if err := validator.Struct(dto); err != nil {
		return nil, err
	}
	var budget models.Budget
	if err := s.client.post(ctx, "/budget", dto, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

// Update replaces a budget's fields.
func (s *BudgetsService) Update(ctx context.Context, id string, dto models.BudgetCreate) (*models.Budget, error) {
	if err := validator.Struct(dto); err != nil {
		return nil, err
	}
	var budget models.Budget
	if err := s.client.put(ctx, "/budget/"+id, dto, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

// Delete removes a budget.
func (s *BudgetsService) Delete(ctx context.Context, id string) error {
	return s.client.delete(ctx, "/budget/"+id)
}
