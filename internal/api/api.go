// Package api defines the request and response bodies of the HTTP API.
package api

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ErrorResponse is the body returned on any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body returned on successful requests that carry
// no resource representation.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Name     string              `json:"name" binding:"required,max=100"`
	Email    openapi_types.Email `json:"email" binding:"required,email"`
	Password string              `json:"password" binding:"required,min=8"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    openapi_types.Email `json:"email" binding:"required,email"`
	Password string              `json:"password" binding:"required"`
}

// UpdateProfileRequest is the body of PUT /profile.
// Password is optional; when present it replaces the stored password.
type UpdateProfileRequest struct {
	Name     string              `json:"name" binding:"required,max=100"`
	Email    openapi_types.Email `json:"email" binding:"required,email"`
	Password string              `json:"password" binding:"omitempty,min=8"`
}

// ProfileResponse is the representation of the authenticated user's profile.
type ProfileResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
