package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wichananm65/user-service/internal/config"
	"github.com/wichananm65/user-service/internal/database"
	"github.com/wichananm65/user-service/internal/logging"
	"github.com/wichananm65/user-service/internal/migrations"
	"github.com/wichananm65/user-service/internal/server"
	"github.com/wichananm65/user-service/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid database configuration")
	}
	defer db.Close()

	// a failed connection is not fatal: the server keeps listening and
	// queries fail until the database becomes reachable
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := database.Ping(pingCtx, db); err != nil {
		log.Error().Err(err).Str("driver", cfg.DB.Driver).Str("host", cfg.DB.Host).Msg("Database connection error")
	} else {
		log.Info().Str("driver", cfg.DB.Driver).Str("host", cfg.DB.Host).Msg("Connect database success")

		if cfg.AutoMigrate {
			if err := migrations.Up(cfg.DB, log); err != nil {
				log.Error().Err(err).Msg("migrations failed")
			}
		}
	}
	cancel()

	userRepo := user.NewSQLRepository(db, database.DialectFor(cfg.DB.Driver))
	userHandler := user.NewHandler(user.NewService(userRepo), log)

	app := server.New(log, userHandler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.Addr()).Msg("server listening")
	if err := app.Listen(cfg.Addr()); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}
