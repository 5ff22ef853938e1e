package api

import (
	"context"

	"spendo/internal/models"
	"spendo/internal/validator"
)

// UsersService wraps the user and session endpoints.
type UsersService struct {
	client *Client
}

// Login exchanges an email for a bearer token and stores it in the
// client's token store. The Google sign-in flow happens outside this
// client; by the time Login is called the email is already verified.
func (s *UsersService) Login(ctx context.Context, email string) (string, error) {
	body := struct {
		Email string `json:"email"`
	}{Email: email}

	var resp struct {
		Token string `json:"token"`
	}
	if err := s.client.post(ctx, "/user/login", body, &resp); err != nil {
		return "", err
	}
	if err := s.client.tokens.SetToken(resp.Token); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Signup registers a new user and returns the created record.
func (s *UsersService) Signup(ctx context.Context, dto models.Signup) (*models.User, error) {
	if err := validator.Struct(dto); err != nil {
		return nil, err
	}
	var user models.User
	if err := s.client.post(ctx, "/user/signup", dto, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Get returns the authenticated user.
func (s *UsersService) Get(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := s.client.get(ctx, "/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
