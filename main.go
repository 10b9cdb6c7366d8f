package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giahoa6/crm/internal/advisor"
	"github.com/giahoa6/crm/internal/auth"
	"github.com/giahoa6/crm/internal/catalog"
	"github.com/giahoa6/crm/internal/config"
	"github.com/giahoa6/crm/internal/infra"
	"github.com/giahoa6/crm/internal/notify"
	"github.com/giahoa6/crm/internal/repository"
	"github.com/giahoa6/crm/internal/service"
	"github.com/giahoa6/crm/internal/session"
	"github.com/giahoa6/crm/internal/store"
	"github.com/giahoa6/crm/internal/voice"
	"github.com/giahoa6/crm/pkg/db/transactor"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const defaultConnectTimeout = 5 * time.Second

// @title                      GIA HÒA 6 CRM API
// @version                    1.0
// @description                Customers, sessions with second factor, advisory widgets and live voice of the dealership CRM.
// @BasePath                   /
// @securityDefinitions.apikey ApiKeyAuth
// @in                         header
// @name                       Authorization
func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Build()
	if err != nil {
		logrus.Fatal(err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Fatalf("invalid log level %s - %v", cfg.LogLevel, err)
	}
	logrus.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logrus.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	connectCtx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()

	// identity always lives in postgres
	pgPool, err := infra.Postgresql(connectCtx, cfg.PostgresCfg)
	if err != nil {
		return err
	}
	defer pgPool.Close()

	customerStore, closeStore, err := openCustomerStore(connectCtx, cfg, pgPool)
	if err != nil {
		return err
	}
	defer closeStore()

	redisClient := notificationsClient(connectCtx, cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var publisher notify.Publisher
	if redisClient != nil {
		publisher = notify.NewRedisPublisher(redisClient, cfg.NotificationsCfg.Channel)
	}
	dispatcher := notify.NewDispatcher(publisher, cfg.NotificationsCfg.Enabled)
	defer dispatcher.Close()

	// Identity
	jwtCfg := cfg.AuthCfg.JwtCfg
	jwtIssuer := auth.NewJwtIssuer(jwtCfg.Issuer, jwtCfg.SigningMethod, jwtCfg.TimeToLive, jwtCfg.PrivateKey)
	jwtValidator := auth.NewJwtValidator(jwtCfg.SigningMethod, jwtCfg.PublicKey)

	txExecutor := transactor.NewPgxWithinTransactionExecutor(pgPool)
	provider := service.NewAuthService(
		jwtIssuer,
		&cfg.AuthCfg.RefreshTokenCfg,
		&cfg.AuthCfg.MfaCfg,
		transactor.NewPgxTransactor(pgPool),
		repository.NewPostgresUserRepository(txExecutor),
		repository.NewPostgresRefreshTokenRepository(txExecutor),
		repository.NewPostgresFactorRepository(txExecutor),
	)

	registry := session.NewRegistry(provider)
	defer registry.Close()

	// Inference
	advisorSvc, connector := inference(ctx, cfg.GeminiCfg)

	// Customers read model follows store change feed, broken feed is resubscribed
	customers := catalog.New(customerStore, dispatcher)

	catalogCtx, stopCatalog := context.WithCancel(ctx)
	catalogDone := make(chan struct{})
	go func() {
		defer close(catalogDone)
		customers.Follow(catalogCtx)
	}()
	defer func() {
		stopCatalog()
		<-catalogDone
	}()

	app, err := infra.Router(infra.Services{
		JwtValidator:         jwtValidator,
		Provider:             provider,
		Registry:             registry,
		Catalog:              customers,
		Advisor:              advisorSvc,
		Connector:            connector,
		Redis:                redisClient,
		NotificationsChannel: cfg.NotificationsCfg.Channel,
	})
	if err != nil {
		return err
	}

	errorCh := make(chan error, 1)
	go func() {
		errorCh <- app.Start(fmt.Sprintf(":%d", cfg.HTTPCfg.Port))
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPCfg.ShutdownTimeout)
		defer cancel()

		logrus.Info("shutdown signal has been sent, stopping the server...")
		if err := app.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server gracefully - %w", err)
		}
	case err := <-errorCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("shutting down the server, unexpected error occurred - %w", err)
		}
	}
	return nil
}

func openCustomerStore(ctx context.Context, cfg config.Config, pgPool *pgxpool.Pool) (store.CustomerStore, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreMongo:
		client, err := infra.Mongodb(ctx, cfg.MongoCfg)
		if err != nil {
			return nil, nil, err
		}

		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logrus.Errorf("failed to disconnect from mongodb - %v", err)
			}
		}
		return store.NewMongoCustomerStore(client.Database(cfg.MongoCfg.Database)), closeFn, nil
	case config.StoreMemory:
		logrus.Warn("customers are kept in memory and will be lost on restart")
		return store.NewMemoryCustomerStore(), func() {}, nil
	default:
		return store.NewPostgresCustomerStore(pgPool), func() {}, nil
	}
}

// notificationsClient returns nil when notifications are off or redis is unreachable
func notificationsClient(ctx context.Context, cfg config.Config) *redis.Client {
	if !cfg.NotificationsCfg.Enabled {
		return nil
	}

	client, err := infra.Redis(ctx, cfg.RedisCfg)
	if err != nil {
		logrus.Warnf("notifications are disabled - %v", err)
		return nil
	}
	return client
}

// inference falls back to offline advice and disables voice without api key
func inference(ctx context.Context, cfg config.GeminiCfg) (*advisor.Service, voice.Connector) {
	if cfg.APIKey == "" {
		logrus.Warn("GEMINI_API_KEY is not set, advice falls back to built-in texts and voice is disabled")
		return advisor.NewService(nil), nil
	}

	client, err := advisor.NewGeminiClient(ctx, cfg.APIKey)
	if err != nil {
		logrus.Warnf("inference is disabled - %v", err)
		return advisor.NewService(nil), nil
	}
	return advisor.NewService(advisor.NewGeminiGenerator(client, cfg.TextModel)), voice.NewGeminiConnector(client, cfg.LiveModel)
}
