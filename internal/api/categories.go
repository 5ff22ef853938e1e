package api

import (
	"context"

	"spendo/internal/models"
)

// CategoriesService wraps the /category resource. Categories are
// read-only from the client.
type CategoriesService struct {
	client *Client
}

// List returns all categories.
func (s *CategoriesService) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.client.get(ctx, "/category", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
