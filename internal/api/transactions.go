package api

import (
	"context"

	"spendo/internal/models"
	"spendo/internal/validator"
)

// IncomesService wraps the /income resource. Incomes are append-only:
// list and create, no update or delete.
type IncomesService struct {
	client *Client
}

// List returns incomes matching the filter. No matches is an empty
// slice, not an error.
func (s *IncomesService) List(ctx context.Context, filter TransactionFilter) ([]models.Income, error) {
	var incomes []models.Income
	if err := s.client.get(ctx, "/income", filter.query(), &incomes); err != nil {
		return nil, err
	}
	return incomes, nil
}

// Create records a new income.
func (s *IncomesService) Create(ctx context.Context, dto models.IncomeCreate) (*models.Income, error) {
	if err := validator.Struct(dto); err != nil {
		return nil, err
	}
	var income models.Income
	if err := s.client.post(ctx, "/income", dto, &income); err != nil {
		return nil, err
	}
	return &income, nil
}

// OutcomesService wraps the /expense resource. Same append-only shape
// as incomes.
type OutcomesService struct {
	client *Client
}

// List returns outcomes matching the filter.
func (s *OutcomesService) List(ctx context.Context, filter TransactionFilter) ([]models.Outcome, error) {
	var outcomes []models.Outcome
	if err := s.client.get(ctx, "/expense", filter.query(), &outcomes); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Create records a new outcome. Balance and budget checks are the
// aggregation layer's job; by the time Create is called the caller has
// already decided to submit.
func (s *OutcomesService) Create(ctx context.Context, dto models.OutcomeCreate) (*models.Outcome, error) {
	if err := validator.Struct(dto); err != nil {
		return nil, err
	}
	var outcome models.Outcome
	if err := s.client.post(ctx, "/expense", dto, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}
