package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"spendo/internal/models"
)

func TestAccountsList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/account" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"acc-1","name":"Cash","balance":"100.50"},
			{"id":"acc-2","name":"VCB","balance":250}
		]`))
	}))
	defer server.Close()

	c := newTestClient(t, server)
	accounts, err := c.Accounts.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].ID != "acc-1" || !accounts[0].Balance.Equal(decimal.RequireFromString("100.50")) {
		t.Errorf("first account mismatch: %+v", accounts[0])
	}
	// Numeric and string balances both decode exactly.
	if !accounts[1].Balance.Equal(decimal.NewFromInt(250)) {
		t.Errorf("second balance mismatch: %s", accounts[1].Balance)
	}
}

func TestAccountsCreate(t *testing.T) {
	var capturedBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var err error
		capturedBody, err = io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("reading body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"acc-9","name":"Savings","balance":"42.00"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server)
	account, err := c.Accounts.Create(context.Background(), models.AccountCreate{
		Name:    "Savings",
		Balance: decimal.RequireFromString("42.00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID != "acc-9" {
		t.Errorf("expected id acc-9, got %s", account.ID)
	}

	var parsed struct {
		Name    string          `json:"name"`
		Balance decimal.Decimal `json:"balance"`
	}
	if err := json.Unmarshal(capturedBody, &parsed); err != nil {
		t.Fatalf("parsing captured body: %v", err)
	}
	if parsed.Name != "Savings" || !parsed.Balance.Equal(decimal.RequireFromString("42.00")) {
		t.Errorf("request body mismatch: %+v", parsed)
	}
}

func TestAccountsCreateRejectsInvalidInputLocally(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no request should be sent for invalid input")
	}))
	defer server.Close()

	c := newTestClient(t, server)
	if _, err := c.Accounts.Create(context.Background(), models.AccountCreate{Name: ""}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestAccountsDeleteRefetchesList(t *testing.T) {
	var deleted bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/api/account/acc-1":
			deleted = true
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/api/account":
			if !deleted {
				t.Error("list must be re-fetched after the delete, not before")
			}
			_, _ = w.Write([]byte(`[{"id":"acc-2","name":"VCB","balance":"10"}]`))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	c := newTestClient(t, server)
	remaining, err := c.Accounts.Delete(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "acc-2" {
		t.Errorf("expected the server's refreshed list, got %+v", remaining)
	}
}
