package di

import (
	"context"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	goRedis "github.com/redis/go-redis/v9"
)

const traceFlushTimeout = 5 * time.Second

// provideHTTP builds the server and hands it the connections it must release on shutdown.
func provideHTTP(
	cfg *config.Config,
	r router.Router,
	app middleware.AppMiddleware,
	auth middleware.AuthRole,
	db *postgres.Connection,
	redisClient *goRedis.Client,
	kafkaClient kafka.Client,
	tracer otel.Otel,
) *http.HTTP {
	server := http.New(cfg, r, app, auth, db)

	server.OnShutdown(kafkaClient.Close)
	server.OnShutdown(redisClient.Close)
	server.OnShutdown(db.Close)
	server.OnShutdown(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), traceFlushTimeout)
		defer cancel()

		return tracer.Shutdown(ctx)
	})

	return server
}
