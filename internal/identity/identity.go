// Package identity describes the identity service contract: sessions, second factor and
// asynchronous auth state notifications.
package identity

import (
	"context"
	"time"

	"github.com/giahoa6/crm/internal/model"
)

// MfaStatus is derived from assurance levels of the session
type MfaStatus string

const (
	// MfaNotEnrolled means user has no verified second factor
	MfaNotEnrolled MfaStatus = "not_enrolled"
	// MfaUnverified means user has second factor but session didn't pass it yet
	MfaUnverified MfaStatus = "unverified"
	// MfaVerified means session passed second factor challenge
	MfaVerified MfaStatus = "verified"
)

// AssuranceLevels is current level of the session and the level it can reach
type AssuranceLevels struct {
	Current model.AssuranceLevel `json:"currentLevel"`
	Next    model.AssuranceLevel `json:"nextLevel"`
}

// MfaStatus maps assurance levels to mfa status
func (l AssuranceLevels) MfaStatus() MfaStatus {
	switch {
	case l.Current == model.AAL2:
		return MfaVerified
	case l.Next == model.AAL2:
		return MfaUnverified
	default:
		return MfaNotEnrolled
	}
}

// AuthState is what the session gate renders from
type AuthState struct {
	User      *model.User `json:"user"`
	MfaStatus MfaStatus   `json:"mfaStatus"`
	IsAdmin   bool        `json:"isAdmin"`
	Loading   bool        `json:"loading"`
}

// InitialState is state before identity service reported anything
func InitialState() AuthState {
	return AuthState{MfaStatus: MfaNotEnrolled, Loading: true}
}

// SignedOutState is state without user
func SignedOutState() AuthState {
	return AuthState{MfaStatus: MfaNotEnrolled}
}

// StateOf builds signed in state
func StateOf(u *model.User, levels AssuranceLevels) AuthState {
	return AuthState{
		User:      u,
		MfaStatus: levels.MfaStatus(),
		IsAdmin:   u.IsAdmin(),
	}
}

// EventKind names auth state transition
type EventKind string

const (
	// SignedIn is emitted after password sign in
	SignedIn EventKind = "SIGNED_IN"
	// SignedOut is emitted after session termination
	SignedOut EventKind = "SIGNED_OUT"
	// TokenRefreshed is emitted after refresh token rotation
	TokenRefreshed EventKind = "TOKEN_REFRESHED"
	// MfaChallengeVerified is emitted after second factor verification
	MfaChallengeVerified EventKind = "MFA_CHALLENGE_VERIFIED"
)

// Event is auth state change of a single session
type Event struct {
	Kind      EventKind
	SessionID string
	State     AuthState
}

// Principal identifies authenticated caller
type Principal struct {
	UserID    string
	SessionID string
	AAL       model.AssuranceLevel
}

// Session is issued access and refresh token pair
type Session struct {
	AccessToken  string               `json:"accessToken"`
	ExpiresAt    int64                `json:"expiresAt"`
	RefreshToken string               `json:"refreshToken"`
	SessionID    string               `json:"sessionId"`
	AAL          model.AssuranceLevel `json:"aal"`
}

// Enrollment is newly enrolled TOTP factor
type Enrollment struct {
	FactorID string `json:"factorId"`
	Secret   string `json:"secret"`
	URI      string `json:"uri"`
}

// Provider is identity service contract
type Provider interface {
	SignInWithPassword(ctx context.Context, email, password, fingerprint string, at time.Time) (*Session, error)
	SignOut(ctx context.Context, p Principal) error
	Refresh(ctx context.Context, refreshToken, fingerprint string, at time.Time) (*Session, error)
	GetSession(ctx context.Context, p Principal) (AuthState, error)
	EnrollFactor(ctx context.Context, p Principal) (*Enrollment, error)
	ChallengeAndVerify(ctx context.Context, p Principal, factorID, code, fingerprint string, at time.Time) (*Session, error)
	AssuranceLevel(ctx context.Context, p Principal) (AssuranceLevels, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	CreateUser(ctx context.Context, email, password string, role model.Role) (*model.User, error)
	OnAuthStateChange(func(Event)) (unsubscribe func())
}
