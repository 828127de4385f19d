package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Student represents one authorized (or formerly authorized) learner.
// The token is the student's only credential; there is no password.
type Student struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Token     string      `json:"token"`
	IsActive  bool        `json:"isActive"`
	ExpiresAt time.Time   `json:"expiresAt"`
	LastLogin null.Time   `json:"lastLogin,omitempty"`
	LastIP    null.String `json:"lastIp,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// IssueTokenInput represents input for issuing an access token
type IssueTokenInput struct {
	Email string `json:"email" binding:"required"`
}

// IssueTokenResult represents the outcome of a token issuance
type IssueTokenResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// VerifyInput represents input for a student login attempt
type VerifyInput struct {
	Email string `json:"email" binding:"required"`
	Token string `json:"token" binding:"required"`
}

// LoginAttempt carries the caller metadata recorded with every attempt
type LoginAttempt struct {
	Email     string
	Token     string
	IP        string
	UserAgent string
}

// VerifyResult represents an accepted login
type VerifyResult struct {
	StudentID      uuid.UUID `json:"studentId"`
	RedirectTarget string    `json:"redirectTarget"`
}
