package session

import (
	"context"
	"sync"
	"time"

	"github.com/giahoa6/crm/internal/identity"
	"github.com/giahoa6/crm/internal/model"
	"github.com/sirupsen/logrus"
)

// Registry keeps one gate per identity session and feeds gates from provider notifications
type Registry struct {
	provider    identity.Provider
	unsubscribe func()

	mu    sync.Mutex
	gates map[string]*Gate
}

// NewRegistry builds registry subscribed to provider auth state changes
func NewRegistry(provider identity.Provider) *Registry {
	r := &Registry{
		provider: provider,
		gates:    make(map[string]*Gate),
	}
	r.unsubscribe = provider.OnAuthStateChange(r.handle)
	return r
}

// SignIn forwards credentials to provider, gate of new session is created by the notification
func (r *Registry) SignIn(ctx context.Context, email, password, fingerprint string, at time.Time) (*identity.Session, error) {
	return r.provider.SignInWithPassword(ctx, email, password, fingerprint, at)
}

// Refresh forwards refresh token rotation to provider
func (r *Registry) Refresh(ctx context.Context, refreshToken, fingerprint string, at time.Time) (*identity.Session, error) {
	return r.provider.Refresh(ctx, refreshToken, fingerprint, at)
}

// Gate returns gate of the session, unknown session is restored from provider
func (r *Registry) Gate(ctx context.Context, p identity.Principal) (*Gate, error) {
	r.mu.Lock()
	g, ok := r.gates[p.SessionID]
	r.mu.Unlock()

	if ok {
		return g, nil
	}

	state, err := r.provider.GetSession(ctx, p)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.gates[p.SessionID]; ok {
		return g, nil
	}

	g = newGate(r.provider, p)
	g.apply(state)
	r.gates[p.SessionID] = g
	return g, nil
}

// Len returns number of live gates
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.gates)
}

// Close stops listening provider and tears down every gate
func (r *Registry) Close() {
	r.unsubscribe()

	r.mu.Lock()
	gates := r.gates
	r.gates = make(map[string]*Gate)
	r.mu.Unlock()

	for _, g := range gates {
		g.teardown()
	}
}

func (r *Registry) handle(e identity.Event) {
	if e.SessionID == "" {
		return
	}

	if e.Kind == identity.SignedOut {
		r.mu.Lock()
		g, ok := r.gates[e.SessionID]
		delete(r.gates, e.SessionID)
		r.mu.Unlock()

		if ok {
			g.teardown()
			logrus.Debugf("session %s is closed", e.SessionID)
		}
		return
	}

	r.mu.Lock()
	g, ok := r.gates[e.SessionID]
	if !ok {
		p := identity.Principal{SessionID: e.SessionID, AAL: model.AAL1}
		if e.State.User != nil {
			p.UserID = e.State.User.ID
		}

		g = newGate(r.provider, p)
		r.gates[e.SessionID] = g
	}
	r.mu.Unlock()

	g.apply(e.State)
}
