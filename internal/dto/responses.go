package dto

import (
	"github.com/google/uuid"

	"github.com/ignatzorin/gig-marketplace/internal/models"
)

// ErrorResponse represents a standardized error payload
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a standardized success payload
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AuthResponse represents the result of register/login/refresh
type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
}

// CreateGigResponse carries the identifier of a freshly created gig
type CreateGigResponse struct {
	GigID uuid.UUID `json:"gig_id"`
}

// SeedResponse reports how many catalog rows a seed run actually inserted
type SeedResponse struct {
	Message  string `json:"message"`
	Inserted int64  `json:"inserted"`
}
