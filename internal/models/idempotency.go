package models

import (
	"encoding/json"
	"time"
)

// IdempotencyKey represents a stored idempotency key record.
// Scope is the resource the key is bound to, such as a patient id.
type IdempotencyKey struct {
	ID           string          `json:"id,omitempty"`
	Key          string          `json:"key"`
	Route        string          `json:"route"`
	Scope        string          `json:"scope"`
	ResponseBody json.RawMessage `json:"response_body"`
	StatusCode   int             `json:"status_code"`
	CreatedAt    time.Time       `json:"created_at"`
}
