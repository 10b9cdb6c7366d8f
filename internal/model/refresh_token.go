package model

import "time"

// AssuranceLevel is authenticator assurance level reached by session
type AssuranceLevel string

const (
	// AAL1 means session is authenticated by password only
	AAL1 AssuranceLevel = "aal1"
	// AAL2 means second factor was verified within session
	AAL2 AssuranceLevel = "aal2"
)

// RefreshToken is refresh token model entity, SessionID survives token rotation
type RefreshToken struct {
	ID          string
	SessionID   string
	UserID      string
	Fingerprint string
	ExpiresIn   int
	CreatedAt   time.Time
	AAL         AssuranceLevel
}

// ExpiresAt returns moment when token stops being valid
func (r *RefreshToken) ExpiresAt() time.Time {
	return r.CreatedAt.Add(time.Duration(r.ExpiresIn) * time.Second)
}
