package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/campuslink/campus-chat-api/internal/api"
	"github.com/campuslink/campus-chat-api/internal/core/domain"
	"github.com/campuslink/campus-chat-api/internal/core/service"
	redisdb "github.com/campuslink/campus-chat-api/internal/infrastructure/db/redis"
	"github.com/campuslink/campus-chat-api/internal/infrastructure/directory"
	"github.com/campuslink/campus-chat-api/internal/infrastructure/queue"
	"github.com/campuslink/campus-chat-api/internal/infrastructure/sendbird"
	"github.com/campuslink/campus-chat-api/internal/pkg/config"
	"github.com/campuslink/campus-chat-api/internal/ws"
	"github.com/campuslink/campus-chat-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	platform := sendbird.New(sendbird.Config{
		AppID:    cfg.SendBird.AppID,
		APIToken: cfg.SendBird.APIToken,
		BaseURL:  cfg.SendBird.BaseURL,
	}, logg)

	students := directory.NewStore[domain.Student]()
	instructors := directory.NewStore[domain.Instructor]()

	userService := service.NewUserService(platform, students, instructors, logger.Component("users"))
	chatService := service.NewChatService(platform, logger.Component("chat"))

	hub := ws.NewHub(chatService, logger.Component("ws"))

	dispatcher := queue.NewDispatcher(0, hub, logger.Component("queue"))
	dispatcher.Start(ctx)
	hub.SetQueue(dispatcher)

	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		defer rdb.Close()

		relay := redisdb.NewRelay(rdb, logger.Component("relay"))
		hub.SetRelay(relay)
		go relay.Listen(ctx, hub.Ingest)
	}

	gateway := ws.NewHandler(hub, cfg.FrontendOrigin, logger.Component("ws"))

	e := api.NewRouter(cfg, logg, userService, chatService, platform, rdb, gateway)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("campus-chat-api listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()
	logg.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("shutdown error")
	}
}
