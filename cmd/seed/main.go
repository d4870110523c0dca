package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/shawnlecompte2-web/LogiVrac/config"
	"github.com/shawnlecompte2-web/LogiVrac/logger"
	"github.com/shawnlecompte2-web/LogiVrac/seed"
	"github.com/shawnlecompte2-web/LogiVrac/store"
)

// One-shot: run migrations and write the default settings document when the
// database has none.
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

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		zlog.Fatal("open database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zlog.Fatal("database handle", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := store.RunMigrations(sqlDB, zlog); err != nil {
		zlog.Fatal("run migrations", zap.Error(err))
	}

	docStore := store.NewGormStore(db, nil, zlog)
	seeded, err := seed.EnsureSettings(context.Background(), docStore)
	if err != nil {
		zlog.Fatal("seed settings", zap.Error(err))
	}
	if seeded {
		zlog.Info("seeded default settings")
	} else {
		zlog.Info("settings already present, nothing to do")
	}
}
