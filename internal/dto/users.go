package dto

type RegisterUserRequest struct {
	Email string `json:"email" binding:"required"`
	Role  string `json:"role"`
}

type ProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD
}

type ProfileResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
}

type UserResponse struct {
	ID        string           `json:"id"`
	Email     string           `json:"email"`
	Role      string           `json:"role"`
	IsActive  bool             `json:"is_active"`
	Profile   *ProfileResponse `json:"profile,omitempty"`
	CreatedAt string           `json:"created_at"`
}
