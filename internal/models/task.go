package models

type Task struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	DueDate      string  `json:"due_date,omitempty"` // YYYY-MM-DD format
	EstimatedMin int     `json:"estimated_min"`
	Priority     int     `json:"priority"`
	CreatedAt    string  `json:"created_at"`           // RFC3339 timestamp
	DeletedAt    *string `json:"deleted_at,omitempty"` // RFC3339 timestamp
}
