// Package session decides which top-level view a signed-in caller gets and keeps
// one gate per identity session.
package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/giahoa6/crm/internal/identity"
	"github.com/giahoa6/crm/internal/model"
)

// View is top-level view rendered for the caller
type View string

// views in the order a caller normally passes them
const (
	ViewLoading   View = "loading"
	ViewLogin     View = "login"
	ViewMfaSetup  View = "mfa_setup"
	ViewMfaVerify View = "mfa_verify"
	ViewApp       View = "app"
)

// Decide maps auth state to view, skipped enrollment satisfies not enrolled status only
func Decide(state identity.AuthState, mfaSkipped bool) View {
	switch {
	case state.Loading:
		return ViewLoading
	case state.User == nil:
		return ViewLogin
	case state.MfaStatus == identity.MfaNotEnrolled && !mfaSkipped:
		return ViewMfaSetup
	case state.MfaStatus == identity.MfaUnverified:
		return ViewMfaVerify
	default:
		return ViewApp
	}
}

// Gate holds declared auth state of a single session
type Gate struct {
	provider identity.Provider

	mu         sync.RWMutex
	principal  identity.Principal
	state      identity.AuthState
	mfaSkipped bool

	hooksMu sync.Mutex
	nextID  int
	hooks   map[int]func()
	closed  bool
}

func newGate(provider identity.Provider, p identity.Principal) *Gate {
	return &Gate{
		provider:  provider,
		principal: p,
		state:     identity.InitialState(),
		hooks:     make(map[int]func()),
	}
}

// View returns view for current state
func (g *Gate) View() View {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Decide(g.state, g.mfaSkipped)
}

// State returns current auth state
func (g *Gate) State() identity.AuthState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Principal returns identity the gate acts on behalf of
func (g *Gate) Principal() identity.Principal {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.principal
}

// SkipEnrollment lets user into the app without second factor until the gate is discarded
func (g *Gate) SkipEnrollment() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mfaSkipped = true
}

// Enroll starts second factor enrollment
func (g *Gate) Enroll(ctx context.Context) (*identity.Enrollment, error) {
	return g.provider.EnrollFactor(ctx, g.Principal())
}

// Verify passes second factor challenge, new state arrives through provider notification
func (g *Gate) Verify(ctx context.Context, factorID, code, fingerprint string, at time.Time) (*identity.Session, error) {
	return g.provider.ChallengeAndVerify(ctx, g.Principal(), factorID, code, fingerprint, at)
}

// SignOut terminates the session, gate is discarded once provider reports sign out
func (g *Gate) SignOut(ctx context.Context) error {
	return g.provider.SignOut(ctx, g.Principal())
}

// OnTeardown registers hook executed when session ends, returned func removes it.
// Hook registered on already closed gate runs immediately.
func (g *Gate) OnTeardown(fn func()) func() {
	g.hooksMu.Lock()
	if g.closed {
		g.hooksMu.Unlock()
		fn()
		return func() {}
	}

	id := g.nextID
	g.nextID++
	g.hooks[id] = fn
	g.hooksMu.Unlock()

	return func() {
		g.hooksMu.Lock()
		defer g.hooksMu.Unlock()
		delete(g.hooks, id)
	}
}

func (g *Gate) apply(state identity.AuthState) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = state
	if state.MfaStatus == identity.MfaVerified {
		g.principal.AAL = model.AAL2
	}
}

// teardown runs hooks in reverse registration order
func (g *Gate) teardown() {
	g.hooksMu.Lock()
	if g.closed {
		g.hooksMu.Unlock()
		return
	}
	g.closed = true

	ids := make([]int, 0, len(g.hooks))
	for id := range g.hooks {
		ids = append(ids, id)
	}
	hooks := g.hooks
	g.hooks = nil
	g.hooksMu.Unlock()

	sort.Ints(ids)
	for i := len(ids) - 1; i >= 0; i-- {
		hooks[ids[i]]()
	}
}
