package api

import (
	"context"

	"spendo/internal/models"
	"spendo/internal/validator"
)

// TransfersService wraps the /transfer resource.
type TransfersService struct {
	client *Client
}

// List returns all transfers for the authenticated user.
func (s *TransfersService) List(ctx context.Context) ([]models.Transfer, error) {
	var transfers []models.Transfer
	if err := s.client.get(ctx, "/transfer", nil, &transfers); err != nil {
		return nil, err
	}
	return transfers, nil
}

// Create records a transfer between two accounts.
func (s *TransfersService) Create(ctx context.Context, dto models.TransferCreate) (*models.Transfer, error) {
	if err := validator.Struct(dto); err != nil {
		return nil, err
	}
	var transfer models.Transfer
	if err := s.client.post(ctx, "/transfer", dto, &transfer); err != nil {
		return nil, err
	}
	return &transfer, nil
}
