package examples

import "time"

// Example is the demonstration resource showing the baseline CRUD contract
// over an int key, with no authorization rules.
type Example struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Detail      string    `json:"detail"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Request struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Detail      string `json:"detail"`
}
