package domain

import (
	"errors"
	"fmt"
)

const (
	RoleUser = "user"
)

const DateLayout = "2006-01-02"

var (
	MesaageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	// Error taxonomy. Feature errors wrap one of these so handlers can map
	// them to a status code with errors.Is.
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConcurrentUpdate = errors.New("concurrent update, please retry")

	ErrParseUUID      = fmt.Errorf("failed to parse UUID: %w", ErrInvalidInput)
	ErrUserNotAllowed = fmt.Errorf("user not allowed: %w", ErrForbidden)
	ErrTokenNotFound  = fmt.Errorf("failed to token not found: %w", ErrUnauthorized)
	ErrTokenInvalid   = fmt.Errorf("token invalid: %w", ErrUnauthorized)
	ErrTokenExpired   = fmt.Errorf("token expired: %w", ErrUnauthorized)
)

type (
	PaginationResponse struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"total_pages"`
	}
)

func NewPagination(page, limit int, total int64) PaginationResponse {
	return PaginationResponse{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
}
