// pkg/connector/factory.go
package connector

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/David-Botos/movie-ingress/pkg/config"
)

// ConnectorFactory creates publishers for the configured target
type ConnectorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewConnectorFactory creates a new connector factory
func NewConnectorFactory(cfg *config.Config, logger *zap.Logger) *ConnectorFactory {
	return &ConnectorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreatePublisher connects to the configured target. Destination tables are
// not touched until the publisher's EnsureTables is called.
// It returns nil when publishing is disabled.
func (f *ConnectorFactory) CreatePublisher(ctx context.Context) (Publisher, error) {
	if !f.cfg.PublishEnabled() {
		return nil, nil
	}

	var (
		publisher Publisher
		err       error
	)

	switch f.cfg.PublishTarget {
	case config.PublishPostgres:
		f.logger.Info("Creating PostgreSQL connector")
		publisher, err = NewPostgresConnector(ctx, f.cfg.Postgres, f.cfg.PublishBatchSize, f.cfg.PublishTimeout)
	case config.PublishSnowflake:
		f.logger.Info("Creating Snowflake connector")
		var sfConn *SnowflakeConnector
		sfConn, err = NewSnowflakeConnector(ctx, f.cfg.Snowflake, f.cfg.PublishBatchSize, f.cfg.PublishTimeout)
		if err == nil {
			if err = sfConn.Validate(ctx); err != nil {
				sfConn.Close()
			}
		}
		publisher = sfConn
	default:
		return nil, fmt.Errorf("unknown publish target %q", f.cfg.PublishTarget)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s connector: %w", f.cfg.PublishTarget, err)
	}

	return publisher, nil
}
