package dto

// RegisterRequest represents the request to register a user
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginRequest represents the request to log in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the request to refresh a token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateGigRequest represents the request to create a gig
type CreateGigRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	SubcategoryID string `json:"subcategory_id" binding:"required"`
}
