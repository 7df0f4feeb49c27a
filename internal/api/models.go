package api

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
// Length rules are enforced by the authentication service.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse defines the successful response for authentication endpoints.
type TokenResponse struct {
	// Token is the JWT used for API authorization
	Token string `json:"token"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title string `json:"title" validate:"required"`
}

// UpdateTaskRequest defines the payload for updating a task. Omitting status
// leaves it unchanged.
type UpdateTaskRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=pending complete"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Msg string `json:"msg"`
}
