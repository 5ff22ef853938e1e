package api

import (
	"net/url"

	"spendo/internal/models"
)

// TransactionFilter narrows income/outcome list calls. Every field is
// optional; an absent field is left out of the query string entirely,
// because the backend reads an empty set as "match nothing" rather
// than "no filter".
type TransactionFilter struct {
	AccountIDs  []string
	CategoryIDs []string
	StartDate   *models.Date
	EndDate     *models.Date
}

// query renders the filter as URL parameters, omitting absent fields.
func (f TransactionFilter) query() url.Values {
	q := url.Values{}
	for _, id := range f.AccountIDs {
		q.Add("accountIds", id)
	}
	for _, id := range f.CategoryIDs {
		q.Add("categoryIds", id)
	}
	if f.StartDate != nil {
		q.Set("startDate", f.StartDate.String())
	}
	if f.EndDate != nil {
		q.Set("endDate", f.EndDate.String())
	}
	if len(q) == 0 {
		return nil
	}
	return q
}
