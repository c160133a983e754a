package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"lightbnb/internal/auth"
	"lightbnb/internal/cache"
	"lightbnb/internal/config"
	"lightbnb/internal/database"
	"lightbnb/internal/handler"
	"lightbnb/internal/health"
	"lightbnb/internal/logger"
	"lightbnb/internal/middleware"
	"lightbnb/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.New("info", "console")
		l.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat).With().Str("env", cfg.Env).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Migrate {
		if err := database.Migrate(ctx, cfg.DatabaseURL, log); err != nil {
			log.Fatal().Err(err).Msg("migrate")
		}
	}

	pool, err := database.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	defer pool.Close()

	rc := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rc.Close()
	if err := rc.Ping(ctx); err != nil {
		// logout still works, revocations are just not remembered
		log.Warn().Err(err).Msg("redis unavailable, token revocation disabled")
	}
	revoker := auth.NewRevoker(rc)

	// grpc health
	checker := health.NewChecker(pool, cfg.HealthInterval, log)
	go checker.Run(ctx)

	grpcSrv := grpc.NewServer()
	checker.Register(grpcSrv)
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		log.Fatal().Err(err).Msg("listen grpc")
	}
	go func() {
		log.Info().Str("port", cfg.GRPCPort).Msg("grpc health listening")
		if err := grpcSrv.Serve(lis); err != nil {
			log.Error().Err(err).Msg("grpc")
		}
	}()

	// http api
	rl := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	defer rl.Stop()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout
	e.Use(echomw.RequestID())
	e.Use(requestLogger(log))
	e.Use(echomw.Recover())

	h := handler.New(store.New(pool), revoker, pool, handler.Options{
		Secret:       cfg.JWTSecret,
		TokenTTL:     cfg.TokenTTL,
		SecureCookie: cfg.IsProduction(),
	}, log)
	h.Routes(e, middleware.RequireAuth(cfg.JWTSecret, revoker), middleware.RateLimit(rl))

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("http listening")
		if err := e.Start(":" + cfg.HTTPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	grpcSrv.GracefulStop()
}

// requestLogger writes one line per request. It is the only place a 5xx
// cause is logged; handlers attach it to the returned error.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			status := v.Status
			// the error handler has not written the response yet
			var he *echo.HTTPError
			if errors.As(v.Error, &he) {
				status = he.Code
			} else if v.Error != nil {
				status = http.StatusInternalServerError
			}

			ev := log.Info()
			if status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			} else if status >= http.StatusBadRequest {
				ev = log.Warn()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
