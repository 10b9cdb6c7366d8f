package model

import "time"

// FactorStatus shows whether second factor was confirmed by the user
type FactorStatus string

const (
	// FactorUnverified is enrolled factor which never passed a challenge
	FactorUnverified FactorStatus = "unverified"
	// FactorVerified is factor confirmed at least once
	FactorVerified FactorStatus = "verified"
)

// Factor is TOTP second factor of the user
type Factor struct {
	ID        string
	UserID    string
	Secret    string
	Status    FactorStatus
	CreatedAt time.Time
}
