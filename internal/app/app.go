package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/carebridge/caregiver-service/internal/cache"
	"github.com/carebridge/caregiver-service/internal/config"
	"github.com/carebridge/caregiver-service/internal/utils"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

// App owns the process-lifetime resources: the registry pool and the
// pairing cache, both opened at boot and released by Close.
type App struct {
	Config       *config.Config
	DB           *pgxpool.Pool
	PairingCache cache.PairingCache
}

func NewApp(cfg *config.Config) (*App, error) {
	var (
		dbPool  *pgxpool.Pool
		err     error
		backoff = initialBackoff
	)

	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		dbPool, err = newDBPool(ctx, cfg.DBUrl)
		if err == nil {
			utils.Logger.Infof("Successfully connected to database on attempt %d", i)
			break
		}

		utils.Logger.WithError(err).Warnf(
			"Failed to connect to database on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)

		if i == maxRetries {
			return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
		}

		time.Sleep(backoff)
		backoff *= 2
	}

	return &App{
		Config:       cfg,
		DB:           dbPool,
		PairingCache: cache.NewPairingCache(cfg.PairingTTL),
	}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
		utils.Logger.Info("Database connection closed.")
	}
	// The pairing cache is in-process; its entries die with the process.
	a.PairingCache = nil
}

// newDBPool constructs the pgx pool with production-safe settings.
//
//   - MaxConnIdleTime   – closes idle sockets before the edge proxy does
//   - HealthCheckPeriod – background "SELECT 1" keeps every conn warm
func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	return pgxpool.ConnectConfig(ctx, cfg)
}
