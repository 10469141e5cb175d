package domain

import "time"

// Message is a note a user sends about a rental.
type Message struct {
	ID        string    `json:"id"`
	RentalID  string    `json:"rental_id"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
