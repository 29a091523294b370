// Command api serves the blog over HTTP.
//
//	@title						Blog API
//	@version					1.0
//	@description				Personal blog service: users, posts and comments.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the session token.
package main

//go:generate swag init -g cmd/api/main.go -d ../../ -o ../../docs

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/blog-api/internal/api"
	"github.com/sirpyerre/blog-api/internal/api/metrics"
	"github.com/sirpyerre/blog-api/internal/core/domain"
	"github.com/sirpyerre/blog-api/internal/core/ports"
	"github.com/sirpyerre/blog-api/internal/core/service"
	"github.com/sirpyerre/blog-api/internal/infrastructure/broker/kafka"
	"github.com/sirpyerre/blog-api/internal/infrastructure/db/redis"
	"github.com/sirpyerre/blog-api/internal/infrastructure/queue"
	"github.com/sirpyerre/blog-api/internal/pkg/config"
	"github.com/sirpyerre/blog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "blog-api",
		Env:     cfg.Env,
		Storage: cfg.Storage.Driver,
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			log.Error().Err(err).Msg("close store")
		}
	}()
	log.Info().Msg("store ready")

	pingers := map[string]ports.Pinger{"store": st.health}

	var revoker ports.TokenRevoker
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		revoker = redis.NewRevocationStore(rdb)
		pingers["redis"] = redis.NewHealthChecker(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("token revocation enabled")
	}

	var sink queue.Sink = queue.NewLogSink(logger.Component(log, "events"))
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := kafka.NewPublisher(kafka.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error().Err(err).Msg("close kafka publisher")
			}
		}()
		sink = publisher
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("event publishing enabled")
	}

	dispatcher := queue.NewDispatcher(cfg.EventWorkers, sink, logger.Component(log, "dispatcher"))
	dispatcher.OnDrop = func(ev domain.BlogEvent) {
		metrics.EventsDroppedTotal.WithLabelValues(string(ev.Type)).Inc()
	}
	dispatcher.Start(context.Background())
	// deferred last so it drains before the publisher and store close
	defer dispatcher.Stop()

	hasher, err := service.NewPasswordHasher(service.HasherOptions{
		Algorithm:  cfg.Password.Algorithm,
		Iterations: cfg.Password.Iterations,
		SaltLength: cfg.Password.SaltLength,
	})
	if err != nil {
		return err
	}

	authService := service.NewAuthService(st.users, hasher, revoker, dispatcher, service.AuthOptions{
		JWTSecret:           cfg.JWTSecret,
		TokenTTL:            cfg.TokenTTL,
		AdminEmails:         cfg.Admin.Emails,
		BootstrapFirstAdmin: cfg.Admin.BootstrapFirst,
	}, logger.Component(log, "auth"))
	blogService := service.NewBlogService(st.users, st.posts, st.comments, dispatcher, logger.Component(log, "blog"))

	e := api.NewRouter(api.Deps{
		Auth:    authService,
		Blog:    blogService,
		Pingers: pingers,
		Log:     logger.Component(log, "http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
