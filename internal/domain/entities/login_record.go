package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// LoginRecord is one append-only audit row per verification attempt.
// StudentID is null when the email matched no student row.
type LoginRecord struct {
	ID        uuid.UUID   `json:"id"`
	StudentID null.String `json:"studentId,omitempty"`
	Email     string      `json:"email"`
	IP        string      `json:"ip"`
	UserAgent string      `json:"userAgent"`
	Success   bool        `json:"success"`
	LoginTime time.Time   `json:"loginTime"`
}
