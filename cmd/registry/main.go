package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AlibekovAA/app-registry/internal/common/bootstrap"
	"github.com/AlibekovAA/app-registry/internal/common/constants"
	commonhttp "github.com/AlibekovAA/app-registry/internal/common/http"
	srv "github.com/AlibekovAA/app-registry/internal/common/server"
	registryhttp "github.com/AlibekovAA/app-registry/internal/registry/http"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.NewRegistryApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start registry: %v\n", err)
		os.Exit(1)
	}
	log := app.Log
	cfg := app.Config

	handler := registryhttp.NewHandler(app.Service, registryhttp.Options{
		RequestTimeout: cfg.RequestTimeout,
		LegacyRoutes:   cfg.LegacyRoutes,
		HealthCheck:    app.HealthCheck,
	}, log)

	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := commonhttp.NewStrictRateLimiter(commonhttp.RateLimitConfig{
		RequestsPerSecond:      cfg.RateLimitRPS,
		Burst:                  cfg.RateLimitBurst,
		LoginRequestsPerSecond: cfg.LoginRateLimitRPS,
		LoginBurst:             cfg.LoginRateLimitBurst,
	})
	baseHandler := commonhttp.BuildBaseHandler(log, rateLimiter, mux)

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), baseHandler)

	shutdownHooks := []srv.ShutdownHook{
		func(context.Context) error {
			rateLimiter.Stop()
			return nil
		},
		func(context.Context) error {
			app.Close()
			return nil
		},
	}

	log.Infof("storage=%s unique_alias=%t legacy_routes=%t", cfg.Storage, cfg.UniqueAlias, cfg.LegacyRoutes)
	if err := srv.Run(ctx, server, log, constants.ServiceName, shutdownHooks); err != nil {
		log.Errorf("%v", err)
		app.Close()
		os.Exit(1)
	}
}
