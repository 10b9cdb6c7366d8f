package infra

import (
	"errors"
	"net/http"

	"github.com/giahoa6/crm/internal/advisor"
	"github.com/giahoa6/crm/internal/auth"
	"github.com/giahoa6/crm/internal/catalog"
	"github.com/giahoa6/crm/internal/handlers"
	"github.com/giahoa6/crm/internal/identity"
	"github.com/giahoa6/crm/internal/middleware"
	"github.com/giahoa6/crm/internal/session"
	"github.com/giahoa6/crm/internal/validation"
	"github.com/giahoa6/crm/internal/voice"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	_ "github.com/giahoa6/crm/docs"
	apperrors "github.com/giahoa6/crm/internal/errors"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Services is everything http layer is built from
type Services struct {
	JwtValidator *auth.JwtValidator
	Provider     identity.Provider
	Registry     *session.Registry
	Catalog      *catalog.Catalog
	Advisor      *advisor.Service
	// nil disables live conversations
	Connector voice.Connector
	// nil disables notifications stream
	Redis                *redis.Client
	NotificationsChannel string
}

// Router builds echo app with all API routes
func Router(svc Services) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	v, err := validation.English()
	if err != nil {
		return nil, err
	}
	e.Validator = v
	e.HTTPErrorHandler = ErrorHandler(e)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURIPath:  true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logrus.WithFields(logrus.Fields{
				"method":  v.Method,
				"path":    v.URIPath,
				"status":  v.Status,
				"latency": v.Latency.String(),
				"ip":      v.RemoteIP,
			}).Info("request processed")
			return nil
		},
	}))

	// Middleware
	authorizeMw := middleware.Authorize(svc.JwtValidator)
	appMw := middleware.RequireView(svc.Registry, session.ViewApp)

	// Handlers
	authHandler := handlers.NewAuthHTTPHandler(svc.Registry)
	userHandler := handlers.NewUserHTTPHandler(svc.Provider)
	customerHandler := handlers.NewCustomerHTTPHandler(svc.Catalog)
	advisorHandler := handlers.NewAdvisorHTTPHandler(svc.Catalog, svc.Advisor)
	voiceHandler := handlers.NewVoiceHTTPHandler(svc.Connector)
	notificationHandler := handlers.NewNotificationHTTPHandler(svc.Redis, svc.NotificationsChannel)

	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API routes
	api := e.Group("/api")

	// auth
	authAPI := api.Group("/auth")
	authAPI.POST("/login", authHandler.Login)
	authAPI.POST("/refresh", authHandler.Refresh)
	authAPI.POST("/logout", authHandler.Logout, authorizeMw)
	authAPI.GET("/session", authHandler.Session, authorizeMw)

	// second factor
	mfaAPI := authAPI.Group("/mfa", authorizeMw)
	mfaAPI.POST("/enroll", authHandler.Enroll, middleware.RequireView(svc.Registry, session.ViewMfaSetup, session.ViewApp))
	mfaAPI.POST("/verify", authHandler.Verify, middleware.RequireView(svc.Registry, session.ViewMfaSetup, session.ViewMfaVerify, session.ViewApp))
	mfaAPI.POST("/skip", authHandler.Skip, middleware.RequireView(svc.Registry, session.ViewMfaSetup))

	// app
	appAPI := api.Group("", authorizeMw, appMw)

	usersAPI := appAPI.Group("/users", middleware.RequireAdmin)
	usersAPI.GET("", userHandler.GetAll)
	usersAPI.POST("", userHandler.Post)

	customersAPI := appAPI.Group("/customers")
	customersAPI.GET("", customerHandler.GetAll)
	customersAPI.GET("/export", customerHandler.Export)
	customersAPI.GET("/:id", customerHandler.Get)
	customersAPI.POST("", customerHandler.Post)
	customersAPI.PATCH("/:id", customerHandler.Patch)

	appAPI.GET("/catalog/models", customerHandler.Models)
	appAPI.GET("/dashboard", advisorHandler.Dashboard)
	appAPI.POST("/advice/sales", advisorHandler.Sales)
	appAPI.POST("/advice/color", advisorHandler.Color)
	appAPI.GET("/voice", voiceHandler.Connect)
	appAPI.GET("/notifications", notificationHandler.Stream)

	return e, nil
}

// ErrorHandler logs error and maps application errors to status codes
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		logrus.Errorf("error occurred on http request processing - %v", err)

		if c.Response().Committed {
			return
		}

		var pldErr *validation.PayloadError
		var remoteErr *apperrors.RemoteErr
		var httpErr *echo.HTTPError

		switch {
		case errors.As(err, &pldErr):
			err = c.JSON(http.StatusBadRequest, pldErr)
		case errors.As(err, &httpErr):
			e.DefaultHTTPErrorHandler(httpErr, c)
			return
		case apperrors.IsNotFound(err):
			e.DefaultHTTPErrorHandler(echo.NewHTTPError(http.StatusNotFound, err.Error()), c)
			return
		case errors.As(err, &remoteErr):
			err = c.JSON(http.StatusBadGateway, remoteErr)
		default:
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		if err != nil {
			logrus.Errorf("failed to send error response - %v", err)
		}
	}
}
