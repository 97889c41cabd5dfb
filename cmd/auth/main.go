package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/chatter-app/chatter/backend/internal/auth/http"
	authrepo "github.com/chatter-app/chatter/backend/internal/auth/repository"
	"github.com/chatter-app/chatter/backend/internal/auth/service"
	"github.com/chatter-app/chatter/backend/internal/common/clock"
	"github.com/chatter-app/chatter/backend/internal/common/config"
	commoncrypto "github.com/chatter-app/chatter/backend/internal/common/crypto"
	"github.com/chatter-app/chatter/backend/internal/common/db"
	commonhttp "github.com/chatter-app/chatter/backend/internal/common/http"
	"github.com/chatter-app/chatter/backend/internal/common/logger"
	srv "github.com/chatter-app/chatter/backend/internal/common/server"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "auth", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	signingKeys, err := commoncrypto.NewSigningKeys()
	if err != nil {
		log.Fatalf("failed to generate signing keys: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	clk := clock.NewRealClock()
	idGenerator := commoncrypto.NewUUIDGenerator()
	hasher := commoncrypto.NewArgon2idHasher()

	userRepo := authrepo.NewPgUserRepository(pool)
	sessionRepo := authrepo.NewPgSessionRepository(pool, idGenerator, clk)

	authService, err := service.NewAuthService(
		userRepo,
		sessionRepo,
		hasher,
		signingKeys,
		idGenerator,
		cfg.SessionDuration,
		clk,
		log,
	)
	if err != nil {
		log.Fatalf("failed to initialize auth service: %v", err)
	}

	handler := authhttp.NewHandler(authService, sessionRepo, clk, cfg.RequestTimeout, log)

	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/metrics", promhttp.Handler())

	baseHandler := commonhttp.BuildBaseHandler(log, mux)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, baseHandler)

	srv.StartWithGracefulShutdown(server, log, "auth", nil)
}
