package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	docs "github.com/TejasJagadale/backendofficial/docs"
	"github.com/TejasJagadale/backendofficial/internal/config"
	"github.com/TejasJagadale/backendofficial/internal/fuel"
	httpapi "github.com/TejasJagadale/backendofficial/internal/http"
	"github.com/TejasJagadale/backendofficial/internal/log"
	"github.com/TejasJagadale/backendofficial/internal/mail"
	"github.com/TejasJagadale/backendofficial/internal/metrics"
	"github.com/TejasJagadale/backendofficial/internal/oauth"
	"github.com/TejasJagadale/backendofficial/internal/queue"
	"github.com/TejasJagadale/backendofficial/internal/repo"
)

// @title MPC Content Backend API
// @version 1.0.0
// @description Auth, comments, likes and Tamil Nadu fuel price API.
// @schemes http https
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	if _, err := log.Init(cfg.IsProduction()); err != nil {
		stdlog.Fatalf("logger: %v", err)
	}
	defer log.L().Sync()

	metrics.MustRegister()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.L().Fatal("mongo connect", zap.Error(err))
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		log.L().Fatal("ensure indexes", zap.Error(err))
	}

	var rl httpapi.RateLimiter
	window := time.Duration(cfg.LikeRateWindowMins) * time.Minute
	if cfg.RedisAddr != "" {
		rdb := repo.NewRedis(cfg.RedisAddr)
		defer rdb.Close()
		if err := rdb.Ping(ctx); err != nil {
			log.L().Fatal("redis connect", zap.Error(err))
		}
		rl = httpapi.NewRedisLimiter(rdb, cfg.LikeRateLimit, window)
	} else {
		rl = httpapi.NewMemoryLimiter(cfg.LikeRateLimit, window)
	}

	var events queue.Publisher = queue.NewNoop()
	if cfg.RabbitURL != "" {
		events, err = queue.NewRabbit(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			log.L().Fatal("rabbit connect", zap.Error(err))
		}
	}
	defer events.Close()

	var sender mail.Sender = mail.LogSender{}
	if cfg.SMTPHost != "" {
		sender = mail.NewSMTP(mail.SMTPConfig{
			Host:    cfg.SMTPHost,
			Port:    cfg.SMTPPort,
			User:    cfg.SMTPUser,
			Pass:    cfg.SMTPPass,
			From:    cfg.MailFrom,
			AppName: cfg.AppName,
		})
	}

	google := oauth.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)

	fuelSvc := fuel.NewService(store, fuel.NewClient(cfg.FuelAPIHost, cfg.FuelAPIKey), events)
	sched, err := fuel.StartScheduler(cfg.FuelCron, fuelSvc)
	if err != nil {
		log.L().Fatal("fuel scheduler", zap.Error(err))
	}
	defer sched.Stop()

	docs.SwaggerInfo.BasePath = "/"

	h := httpapi.NewHandler(store, cfg.JWTSecret, sender, events, google, fuelSvc,
		cfg.FrontendURL, !cfg.IsProduction())
	r := httpapi.NewRouter(h, rl)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	log.L().Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.L().Info("shutting down", zap.String("signal", s.String()))
	case err := <-srvErr:
		log.L().Error("server error", zap.Error(err))
	}
}
