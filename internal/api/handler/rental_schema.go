package handler

import "time"

// rentalResponse is the wire projection of a rental. Picture is a
// "data:image/jpeg;base64,..." data URL or empty when no picture is stored.
type rentalResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Surface     int       `json:"surface"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Picture     string    `json:"picture,omitempty"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type rentalsResponse struct {
	Rentals []rentalResponse `json:"rentals"`
}

// messageResponse is the confirmation envelope returned by write endpoints,
// mirroring the {"message": "..."} contract of the original frontend.
type messageResponse struct {
	Message string `json:"message"`
}

type createMessageRequest struct {
	RentalID string `json:"rental_id" validate:"required"`
	UserID   string `json:"user_id"   validate:"required"`
	Message  string `json:"message"   validate:"required"`
}
