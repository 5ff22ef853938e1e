package api

import (
	"context"

	"spendo/internal/models"
	"spendo/internal/validator"
)

// AccountsService wraps the /account resource.
type AccountsService struct {
	client *Client
}

// List returns all accounts for the authenticated user.
func (s *AccountsService) List(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.client.get(ctx, "/account", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Create creates an account with an opening balance.
func (s *AccountsService) Create(ctx context.Context, dto models.AccountCreate) (*models.Account, error) {
	if err := validator.Struct(dto); err != nil {
		return nil, err
	}
	var account models.Account
	if err := s.client.post(ctx, "/account", dto, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Delete removes an account and returns the refreshed account list.
// Income/outcome cleanup cascades server-side. The list is re-fetched
// rather than trimmed locally so the caller always sees the server's
// view after the delete.
func (s *AccountsService) Delete(ctx context.Context, id string) ([]models.Account, error) {
	if err := s.client.delete(ctx, "/account/"+id); err != nil {
		return nil, err
	}
	return s.List(ctx)
}
