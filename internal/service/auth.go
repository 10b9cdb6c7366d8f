package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/giahoa6/crm/internal/auth"
	"github.com/giahoa6/crm/internal/config"
	"github.com/giahoa6/crm/internal/identity"
	"github.com/giahoa6/crm/internal/model"
	"github.com/giahoa6/crm/internal/repository"
	"github.com/giahoa6/crm/pkg/db/transactor"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/giahoa6/crm/internal/errors"
)

type authService struct {
	*identity.Broadcaster
	jwtIssuer   *auth.JwtIssuer
	rfrTokenCfg *config.RefreshTokenCfg
	mfaCfg      *config.MfaCfg
	transactor  transactor.Transactor
	userRps     repository.UserRepository
	rfrTokenRps repository.RefreshTokenRepository
	factorRps   repository.FactorRepository
}

// NewAuthService builds local identity provider on top of users, refresh tokens and factors repositories
func NewAuthService(
	jwtIssuer *auth.JwtIssuer,
	rfrTokenCfg *config.RefreshTokenCfg,
	mfaCfg *config.MfaCfg,
	transactor transactor.Transactor,
	userRps repository.UserRepository,
	rfrTokenRps repository.RefreshTokenRepository,
	factorRps repository.FactorRepository,
) identity.Provider {
	return &authService{
		Broadcaster: identity.NewBroadcaster(),
		jwtIssuer:   jwtIssuer,
		rfrTokenCfg: rfrTokenCfg,
		mfaCfg:      mfaCfg,
		transactor:  transactor,
		userRps:     userRps,
		rfrTokenRps: rfrTokenRps,
		factorRps:   factorRps,
	}
}

func (s *authService) OnAuthStateChange(fn func(identity.Event)) func() {
	return s.Subscribe(fn)
}

func (s *authService) SignInWithPassword(ctx context.Context, email, password, fingerprint string, at time.Time) (*identity.Session, error) {
	user, err := s.userRps.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewRemoteErr("sign in", err)
	}

	if user == nil {
		return nil, echo.ErrUnauthorized
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, echo.ErrUnauthorized
	}

	sessionID := uuid.NewString()

	var rfrToken *model.RefreshToken
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		tokens, err := s.rfrTokenRps.FindTokensByUserID(ctx, user.ID)
		if err != nil {
			return err
		}

		if len(tokens) >= s.rfrTokenCfg.MaxCount {
			if err := s.rfrTokenRps.DeleteByUserID(ctx, user.ID); err != nil {
				return err
			}
		}

		rfrToken, err = s.createRefreshToken(ctx, user.ID, sessionID, fingerprint, model.AAL1, at)
		return err
	})
	if err != nil {
		return nil, apperrors.NewRemoteErr("sign in", err)
	}

	session, err := s.session(user, rfrToken, at)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, identity.SignedIn, user, session.SessionID, session.AAL)
	return session, nil
}

func (s *authService) SignOut(ctx context.Context, p identity.Principal) error {
	if err := s.rfrTokenRps.DeleteBySessionID(ctx, p.SessionID); err != nil {
		return apperrors.NewRemoteErr("sign out", err)
	}

	s.Publish(identity.Event{
		Kind:      identity.SignedOut,
		SessionID: p.SessionID,
		State:     identity.SignedOutState(),
	})
	return nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken, fingerprint string, at time.Time) (*identity.Session, error) {
	var user *model.User
	var newRfrToken *model.RefreshToken

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		rfrToken, err := s.rfrTokenRps.FindByID(ctx, refreshToken)
		if err != nil {
			return err
		}

		if rfrToken == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh token is invalid")
		}

		if err := s.rfrTokenRps.DeleteByID(ctx, rfrToken.ID); err != nil {
			return err
		}

		if rfrToken.Fingerprint != fingerprint {
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh token was issued for another client")
		}

		if at.After(rfrToken.ExpiresAt()) {
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh token is expired")
		}

		user, err = s.userRps.FindByID(ctx, rfrToken.UserID)
		if err != nil {
			return err
		}

		if user == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "user doesn't exist anymore")
		}

		newRfrToken, err = s.createRefreshToken(ctx, user.ID, rfrToken.SessionID, fingerprint, rfrToken.AAL, at)
		return err
	})
	if err != nil {
		return nil, s.remoteOrHTTP("refresh session", err)
	}

	session, err := s.session(user, newRfrToken, at)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, identity.TokenRefreshed, user, session.SessionID, session.AAL)
	return session, nil
}

func (s *authService) GetSession(ctx context.Context, p identity.Principal) (identity.AuthState, error) {
	user, err := s.userRps.FindByID(ctx, p.UserID)
	if err != nil {
		return identity.AuthState{}, apperrors.NewRemoteErr("get session", err)
	}

	if user == nil {
		return identity.SignedOutState(), nil
	}

	levels, err := s.AssuranceLevel(ctx, p)
	if err != nil {
		return identity.AuthState{}, err
	}
	return identity.StateOf(user, levels), nil
}

func (s *authService) AssuranceLevel(ctx context.Context, p identity.Principal) (identity.AssuranceLevels, error) {
	factors, err := s.factorRps.FindByUserID(ctx, p.UserID)
	if err != nil {
		return identity.AssuranceLevels{}, apperrors.NewRemoteErr("get assurance level", err)
	}

	levels := identity.AssuranceLevels{Current: p.AAL, Next: model.AAL1}
	if levels.Current == "" {
		levels.Current = model.AAL1
	}

	for _, f := range factors {
		if f.Status == model.FactorVerified {
			levels.Next = model.AAL2
			break
		}
	}
	return levels, nil
}

func (s *authService) EnrollFactor(ctx context.Context, p identity.Principal) (*identity.Enrollment, error) {
	user, err := s.userRps.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, apperrors.NewRemoteErr("enroll factor", err)
	}

	if user == nil {
		return nil, echo.ErrUnauthorized
	}

	key, err := auth.GenerateTotpKey(s.mfaCfg.Issuer, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate totp secret - %w", err)
	}

	f := &model.Factor{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Secret:    key.Secret,
		Status:    model.FactorUnverified,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.factorRps.Create(ctx, f); err != nil {
		return nil, apperrors.NewRemoteErr("enroll factor", err)
	}

	return &identity.Enrollment{
		FactorID: f.ID,
		Secret:   key.Secret,
		URI:      key.URI,
	}, nil
}

func (s *authService) ChallengeAndVerify(ctx context.Context, p identity.Principal, factorID, code, fingerprint string, at time.Time) (*identity.Session, error) {
	user, err := s.userRps.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, apperrors.NewRemoteErr("verify factor", err)
	}

	if user == nil {
		return nil, echo.ErrUnauthorized
	}

	factor, err := s.resolveFactor(ctx, user.ID, factorID)
	if err != nil {
		return nil, err
	}

	if !auth.VerifyTotp(code, factor.Secret, at) {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "verification code is invalid")
	}

	var rfrToken *model.RefreshToken
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if factor.Status != model.FactorVerified {
			if err := s.factorRps.MarkVerified(ctx, factor.ID); err != nil {
				return err
			}
		}

		if err := s.rfrTokenRps.DeleteBySessionID(ctx, p.SessionID); err != nil {
			return err
		}

		rfrToken, err = s.createRefreshToken(ctx, user.ID, p.SessionID, fingerprint, model.AAL2, at)
		return err
	})
	if err != nil {
		return nil, apperrors.NewRemoteErr("verify factor", err)
	}

	session, err := s.session(user, rfrToken, at)
	if err != nil {
		return nil, err
	}

	s.Publish(identity.Event{
		Kind:      identity.MfaChallengeVerified,
		SessionID: session.SessionID,
		State:     identity.StateOf(user, identity.AssuranceLevels{Current: model.AAL2, Next: model.AAL2}),
	})
	return session, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRps.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewRemoteErr("list users", err)
	}
	return users, nil
}

func (s *authService) CreateUser(ctx context.Context, email, password string, role model.Role) (*model.User, error) {
	if role != model.RoleUser && role != model.RoleAdmin {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown role %s", role))
	}

	existing, err := s.userRps.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewRemoteErr("create user", err)
	}

	if existing != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("user with email %s already exists", email))
	}

	hash, err := auth.GeneratePasswordHash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password - %w", err)
	}

	u := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRps.Create(ctx, u); err != nil {
		return nil, apperrors.NewRemoteErr("create user", err)
	}
	return u, nil
}

func (s *authService) resolveFactor(ctx context.Context, userID, factorID string) (*model.Factor, error) {
	if factorID != "" {
		f, err := s.factorRps.FindByID(ctx, factorID)
		if err != nil {
			return nil, apperrors.NewRemoteErr("verify factor", err)
		}

		if f == nil || f.UserID != userID {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "second factor doesn't exist")
		}
		return f, nil
	}

	factors, err := s.factorRps.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewRemoteErr("verify factor", err)
	}

	var latestUnverified *model.Factor
	for _, f := range factors {
		if f.Status == model.FactorVerified {
			return f, nil
		}

		if latestUnverified == nil {
			latestUnverified = f
		}
	}

	if latestUnverified == nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "no second factor enrolled")
	}
	return latestUnverified, nil
}

func (s *authService) createRefreshToken(ctx context.Context, userID, sessionID, fingerprint string, aal model.AssuranceLevel, at time.Time) (*model.RefreshToken, error) {
	tkn := &model.RefreshToken{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		UserID:      userID,
		Fingerprint: fingerprint,
		ExpiresIn:   int(s.rfrTokenCfg.TimeToLive.Seconds()),
		CreatedAt:   at,
		AAL:         aal,
	}

	if err := s.rfrTokenRps.Create(ctx, tkn); err != nil {
		return nil, err
	}
	return tkn, nil
}

func (s *authService) session(user *model.User, rfrToken *model.RefreshToken, at time.Time) (*identity.Session, error) {
	jwtToken, err := s.jwtIssuer.Sign(user, rfrToken.SessionID, rfrToken.AAL, at)
	if err != nil {
		return nil, fmt.Errorf("failed to sign jwt - %w", err)
	}

	return &identity.Session{
		AccessToken:  jwtToken.Signed,
		ExpiresAt:    jwtToken.ExpiresAt,
		RefreshToken: rfrToken.ID,
		SessionID:    rfrToken.SessionID,
		AAL:          rfrToken.AAL,
	}, nil
}

// publish reports state change, failure to resolve assurance levels degrades to not enrolled
func (s *authService) publish(ctx context.Context, kind identity.EventKind, user *model.User, sessionID string, aal model.AssuranceLevel) {
	levels, err := s.AssuranceLevel(ctx, identity.Principal{UserID: user.ID, SessionID: sessionID, AAL: aal})
	if err != nil {
		levels = identity.AssuranceLevels{Current: aal, Next: aal}
	}

	s.Publish(identity.Event{
		Kind:      kind,
		SessionID: sessionID,
		State:     identity.StateOf(user, levels),
	})
}

func (s *authService) remoteOrHTTP(op string, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return apperrors.NewRemoteErr(op, err)
}
