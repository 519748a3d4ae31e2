package dto

type LoginRequestDTO struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

type LoginResponseDTO struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

type RateLimitResponse struct {
	Message string `json:"message"`
}
