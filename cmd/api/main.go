package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wom-connector/config"
	httpHandler "wom-connector/internal/adapter/http/handler"
	"wom-connector/internal/adapter/http/middleware"
	"wom-connector/internal/adapter/metrics"
	"wom-connector/internal/adapter/registry"
	pgStorage "wom-connector/internal/adapter/storage/postgres"
	redisStorage "wom-connector/internal/adapter/storage/redis"
	"wom-connector/internal/core/domain"
	"wom-connector/internal/core/ports"
	"wom-connector/internal/service"
	"wom-connector/pkg/keyfile"
	"wom-connector/pkg/logger"

	"github.com/rs/zerolog"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("registry", cfg.Registry.Domain).
		Msg("Starting WOM connector gateway")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("jwt.secret must be set")
	}

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize Redis stores
	nonceStore := redisStorage.NewNonceStore(rdb)
	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Registry client, shared by every role
	m := metrics.New()
	transport := metrics.WrapTransport(
		registry.NewHTTPTransport(cfg.Registry.Scheme, cfg.Registry.Domain, registry.NewHTTPClient(cfg.Registry.Timeout), log),
		m,
	)

	var registryKey *domain.AsymmetricKey
	if cfg.Registry.PublicKeyPath != "" {
		if registryKey, err = keyfile.LoadPublicKey(cfg.Registry.PublicKeyPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to load Registry public key")
		}
	}

	client, err := service.NewClient(service.ClientConfig{
		Domain:            cfg.Registry.Domain,
		RegistryPublicKey: registryKey,
	}, transport, service.NewEnvelopeService(log), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Registry client")
	}
	client.UseNonceStore(nonceStore, service.DefaultNonceTTL)

	// Roles
	var issuer ports.VoucherIssuer
	if cfg.Instrument.Enabled() {
		id, key := loadActor(log, "instrument", cfg.Instrument)
		instrument, err := client.NewInstrument(id, key)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create instrument")
		}
		issuer = instrument
	}

	var registrar ports.PaymentRegistrar
	if cfg.POS.Enabled() {
		id, key := loadActor(log, "pos", cfg.POS)
		pos, err := client.NewPointOfSale(id, key)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create POS")
		}
		registrar = pos
	}

	pocketSvc := service.NewPocketService(client.NewPocket(), pgStorage.NewVoucherRepo(pool), log)
	if err := pocketSvc.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load pocket vouchers")
	}

	// Initialize gateway services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	authSvc := service.NewAuthService(cfg.Auth.Operators, hashSvc, tokenSvc, log)
	handshakeSvc := service.NewHandshakeService(issuer, registrar, idempotencyCache, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		TokenSvc:       tokenSvc,
		HandshakeSvc:   handshakeSvc,
		WalletSvc:      pocketSvc,
		AimCatalog:     client,
		RateLimitStore: rateLimitStore,
		RateLimitRule:  middleware.RateLimitRule{Limit: cfg.RateLimit.Requests, Window: cfg.RateLimit.Window},
		Metrics:        m,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// loadActor parses an actor id and reads its private key, exiting on failure.
func loadActor(log zerolog.Logger, role string, actor config.ActorConfig) (domain.Identifier, *domain.AsymmetricKey) {
	id, err := domain.NewIdentifier(actor.ID)
	if err != nil {
		log.Fatal().Err(err).Str("role", role).Msg("Invalid actor id")
	}
	key, err := keyfile.LoadPrivateKey(actor.PrivateKeyPath)
	if err != nil {
		log.Fatal().Err(err).Str("role", role).Msg("Failed to load private key")
	}
	log.Info().Str("role", role).Str("id", id.String()).Msg("Role enabled")
	return id, key
}
