package types

import "github.com/authorityshow/editor-api/internal/models"

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// BalanceResponse for the credit balance endpoint
type BalanceResponse struct {
	UserID  string `json:"userId"`
	Balance int64  `json:"balance"`
}

// EditHistoryResponse for the edit history endpoint
type EditHistoryResponse struct {
	Edits []models.EditRecord `json:"edits"`
	Count int                 `json:"count"`
}
