package handlers

import (
	"net/http"
	"time"

	"github.com/giahoa6/crm/internal/auth"
	"github.com/giahoa6/crm/internal/identity"
	"github.com/giahoa6/crm/internal/middleware"
	"github.com/giahoa6/crm/internal/model"
	"github.com/giahoa6/crm/internal/session"
	"github.com/labstack/echo/v4"
)

type login struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	Fingerprint string `json:"fingerprint" validate:"required"`
}

type refresh struct {
	Fingerprint  string `json:"fingerprint" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required,uuid"`
}

type mfaVerify struct {
	FactorID    string `json:"factorId" validate:"omitempty,uuid"`
	Code        string `json:"code" validate:"required,numeric,len=6"`
	Fingerprint string `json:"fingerprint" validate:"required"`
}

type sessionView struct {
	View  session.View       `json:"view"`
	State identity.AuthState `json:"state"`
}

type newUser struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6,max=72"`
	Role     model.Role `json:"role" validate:"required,oneof=user admin"`
}

// AuthHTTPHandler is http handler for auth endpoint
type AuthHTTPHandler struct {
	registry *session.Registry
}

// NewAuthHTTPHandler builds new AuthHTTPHandler
func NewAuthHTTPHandler(registry *session.Registry) *AuthHTTPHandler {
	return &AuthHTTPHandler{registry: registry}
}

// Login logins user
// @Summary     Login user
// @Description Verifies provided credentials, signs access and refresh token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       login  body	    login true "User credentials"
// @Success     200    {object} identity.Session
// @Failure     400    {object} echo.HTTPError
// @Failure     401    {object} echo.HTTPError
// @Failure     502    {object} errors.RemoteErr
// @Router      /api/auth/login [post]
func (h *AuthHTTPHandler) Login(c echo.Context) error {
	var lgn login
	if err := c.Bind(&lgn); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&lgn); err != nil {
		return err
	}

	sess, err := h.registry.SignIn(c.Request().Context(), lgn.Email, lgn.Password, lgn.Fingerprint, time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess)
}

// Logout logouts user
// @Summary     Logout user
// @Description Terminates caller session, live conversations of the session are stopped
// @Tags        auth
// @Security	ApiKeyAuth
// @Success     204    "Successful status code"
// @Failure     401    {object} echo.HTTPError
// @Failure     502    {object} errors.RemoteErr
// @Router      /api/auth/logout [post]
func (h *AuthHTTPHandler) Logout(c echo.Context) error {
	gate, err := h.gate(c)
	if err != nil {
		return err
	}

	if err := gate.SignOut(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Refresh refreshes user session
// @Summary     Refresh auth
// @Description Signs new access and refresh token, session id and assurance level are kept
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       refresh body	 refresh true "Fingerprint and refresh token id"
// @Success     200     {object} identity.Session
// @Failure     400     {object} echo.HTTPError
// @Failure     401     {object} echo.HTTPError
// @Router      /api/auth/refresh [post]
func (h *AuthHTTPHandler) Refresh(c echo.Context) error {
	var r refresh
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&r); err != nil {
		return err
	}

	sess, err := h.registry.Refresh(c.Request().Context(), r.RefreshToken, r.Fingerprint, time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess)
}

// Session returns gate view
// @Summary     Current session
// @Description Returns view the caller has to pass next together with auth state
// @Tags        auth
// @Security	ApiKeyAuth
// @Produce     json
// @Success     200    {object} sessionView
// @Failure     401    {object} echo.HTTPError
// @Router      /api/auth/session [get]
func (h *AuthHTTPHandler) Session(c echo.Context) error {
	gate, err := h.gate(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, viewOf(gate))
}

// Enroll enrolls TOTP factor
// @Summary     Enroll second factor
// @Description Creates unverified TOTP factor, secret and otpauth uri are returned once
// @Tags        mfa
// @Security	ApiKeyAuth
// @Produce     json
// @Success     200    {object} identity.Enrollment
// @Failure     403    {object} echo.HTTPError
// @Router      /api/auth/mfa/enroll [post]
func (h *AuthHTTPHandler) Enroll(c echo.Context) error {
	gate, ok := middleware.GateFrom(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	enrollment, err := gate.Enroll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollment)
}

// Verify passes TOTP challenge
// @Summary     Verify second factor
// @Description Verifies TOTP code and upgrades session to aal2, new token pair is returned
// @Tags        mfa
// @Security	ApiKeyAuth
// @Accept      json
// @Produce     json
// @Param       mfaVerify body	   mfaVerify true "Factor and code"
// @Success     200       {object} identity.Session
// @Failure     400       {object} echo.HTTPError
// @Failure     401       {object} echo.HTTPError
// @Router      /api/auth/mfa/verify [post]
func (h *AuthHTTPHandler) Verify(c echo.Context) error {
	gate, ok := middleware.GateFrom(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	var v mfaVerify
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&v); err != nil {
		return err
	}

	sess, err := gate.Verify(c.Request().Context(), v.FactorID, v.Code, v.Fingerprint, time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess)
}

// Skip skips enrollment
// @Summary     Skip second factor enrollment
// @Description Lets caller into the app without second factor until session ends
// @Tags        mfa
// @Security	ApiKeyAuth
// @Produce     json
// @Success     200    {object} sessionView
// @Failure     403    {object} echo.HTTPError
// @Router      /api/auth/mfa/skip [post]
func (h *AuthHTTPHandler) Skip(c echo.Context) error {
	gate, ok := middleware.GateFrom(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	gate.SkipEnrollment()
	return c.JSON(http.StatusOK, viewOf(gate))
}

func (h *AuthHTTPHandler) gate(c echo.Context) (*session.Gate, error) {
	claims, ok := auth.ClaimsFrom(c.Request().Context())
	if !ok {
		return nil, echo.ErrUnauthorized
	}
	return h.registry.Gate(c.Request().Context(), claims.Principal())
}

func viewOf(g *session.Gate) sessionView {
	return sessionView{View: g.View(), State: g.State()}
}

// UserHTTPHandler is http handler for users administration
type UserHTTPHandler struct {
	provider identity.Provider
}

// NewUserHTTPHandler builds new UserHTTPHandler
func NewUserHTTPHandler(provider identity.Provider) *UserHTTPHandler {
	return &UserHTTPHandler{provider: provider}
}

// GetAll gets all users
// @Summary     Get all users
// @Description Returns all users, administrators only
// @Tags        users
// @Security	ApiKeyAuth
// @Produce     json
// @Success     200    {array}  model.User
// @Failure     403    {object} echo.HTTPError
// @Failure     502    {object} errors.RemoteErr
// @Router      /api/users [get]
func (h *UserHTTPHandler) GetAll(c echo.Context) error {
	users, err := h.provider.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Post creates new user
// @Summary     New user
// @Description Creates user with role, administrators only
// @Tags        users
// @Security	ApiKeyAuth
// @Accept		json
// @Produce     json
// @Param 		newUser body	 newUser true "Data for new user"
// @Success     201     {object} model.User
// @Failure     400     {object} echo.HTTPError
// @Failure     403     {object} echo.HTTPError
// @Router      /api/users [post]
func (h *UserHTTPHandler) Post(c echo.Context) error {
	var nu newUser
	if err := c.Bind(&nu); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&nu); err != nil {
		return err
	}

	u, err := h.provider.CreateUser(c.Request().Context(), nu.Email, nu.Password, nu.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}
