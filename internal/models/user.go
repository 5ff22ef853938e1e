package models

// User is the registered account holder. Immutable client-side; used to
// resolve identity and display currency.
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	CurrencyID string `json:"currencyId"`
}

// Signup is the registration payload.
type Signup struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"required"`
	CurrencyID string `json:"currencyId" validate:"required"`
}

// Currency is a display currency offered at registration.
type Currency struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	Sign string `json:"sign"`
}
