package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"stayhub/internal/adapters/authtoken"
	server "stayhub/internal/adapters/http_server"
	"stayhub/internal/adapters/observability"
	redisad "stayhub/internal/adapters/redis"
	"stayhub/internal/adapters/ws"
	"stayhub/internal/app"
	"stayhub/internal/clock"
	"stayhub/internal/shared"
	mysqlrepo "stayhub/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	tokens := authtoken.NewJWT(cfg.JWTSecret, cfg.JWTTTL)
	registry := ws.NewRegistry()
	clk := clock.NewSystem()

	handlers := &server.Handlers{
		Auth:          app.NewAuthService(repo, tokens, cfg.BcryptCost),
		Properties:    app.NewPropertyService(repo, cache, int(cfg.CacheTTL.Seconds())),
		Bookings:      app.NewBookingService(repo, repo, repo, clk),
		Payments:      app.NewPaymentService(repo, repo, repo, repo, cfg.FeePercent),
		Reviews:       app.NewReviewService(repo, repo, repo),
		Verifications: app.NewVerificationService(repo, repo, clk),
		Chat:          app.NewChatService(repo, repo, repo, registry),
		Tokens:        tokens,
		WS:            registry,
		Clock:         clk,
	}

	// http
	srv := server.New(cfg.RateLimit)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(handlers)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
