package models

// Category is a flat spending category. There is no hierarchy.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
