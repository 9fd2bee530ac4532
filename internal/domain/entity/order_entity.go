package entity

import (
	"encoding/json"
	"time"
)

// Order is append-only. PaymentInfo is whatever the payment provider returned.
type Order struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	CourseID    string          `json:"course_id"`
	PaymentInfo json.RawMessage `json:"payment_info,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
