package dto

import "encoding/json"

// Envelope is the body shape every /api route except /api/generate answers
// with. ErrorType carries the apperror kind on failures.
type Envelope struct {
	Success   bool            `json:"success"`
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
	ErrorType string          `json:"error_type,omitempty"`
}
