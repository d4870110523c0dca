package main

import (
	"context"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/shawnlecompte2-web/LogiVrac/config"
	"github.com/shawnlecompte2-web/LogiVrac/logger"
	"github.com/shawnlecompte2-web/LogiVrac/seed"
	"github.com/shawnlecompte2-web/LogiVrac/store"
	"github.com/shawnlecompte2-web/LogiVrac/timeclock"
	"github.com/shawnlecompte2-web/LogiVrac/web/handlers"
	"github.com/shawnlecompte2-web/LogiVrac/web/middlewares"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	if err := store.RunMigrations(sqlDB, zlog); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	var feed *store.Feed
	if cfg.Redis.Enabled {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		zlog.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
		feed = store.NewFeed(rdb, zlog)
		defer feed.Close()
	}

	docStore := store.NewGormStore(db, feed, zlog)

	seeded, err := seed.EnsureSettings(context.Background(), docStore)
	if err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	if seeded {
		zlog.Info("seeded default settings")
	}

	jwtSecret, err := base64.StdEncoding.DecodeString(cfg.Auth.SigningSecret)
	if err != nil {
		return fmt.Errorf("decode signing secret: %w", err)
	}

	policy := timeclock.ReplaceOpenSession
	if cfg.Punch.DoubleIn == "reject" {
		policy = timeclock.RejectSecondIn
	}

	ep := &handlers.Endpoint{
		Store:         docStore,
		Logger:        zlog,
		Policy:        policy,
		SigningSecret: cfg.Auth.SigningSecret,
		TokenTTLSecs:  cfg.Auth.TokenTTLSecs,
	}

	r := gin.Default()
	r.Use(middlewares.Metrics())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("/api/logivrac/v1.0")
	handlers.RegisterPublic(public, ep)

	protected := r.Group("/api/logivrac/v1.0")
	protected.Use(middlewares.Authentication(jwtSecret))
	handlers.Register(protected, ep)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		zlog.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
