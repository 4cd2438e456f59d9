package domain

import "fmt"

var (
	ErrEmailRequired = fmt.Errorf("email is required: %w", ErrInvalidInput)
)

type (
	IssueTokenRequest struct {
		Email string `json:"email" validate:"required,email"`
		Name  string `json:"name"`
	}

	IssueTokenResponse struct {
		UserID string `json:"user_id"`
		Token  string `json:"token"`
	}
)
