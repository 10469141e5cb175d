package domain

import "time"

// Rental is a property listing. Picture holds the raw uploaded image bytes;
// the transport layer projects it as a base64 data URL.
type Rental struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Surface     int       `json:"surface"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Picture     []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
