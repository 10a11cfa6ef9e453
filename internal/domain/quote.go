package domain

import "time"

// QuoteRequest is a customer's "contact me about this" submission.
// Stored first, emailed to sales second; the row is the source of truth.
type QuoteRequest struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Message   string
	ProductID *string
	CreatedAt time.Time
}
