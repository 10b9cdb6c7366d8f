package infra

import (
	"context"
	"fmt"

	"github.com/giahoa6/crm/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongodb connects to mongodb and checks primary is reachable
func Mongodb(ctx context.Context, cfg config.MongoCfg) (*mongo.Client, error) {
	opts := options.Client().
		SetHosts([]string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)}).
		SetMaxPoolSize(uint64(cfg.MaxPoolSize))

	if cfg.User != "" {
		opts.SetAuth(options.Credential{Username: cfg.User, Password: cfg.Password})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to establish connection to mongodb - %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("didn't get response from mongodb after sending ping request - %w", err)
	}
	return client, nil
}
