package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/oggyb/socialgraph/internal/account"
	"github.com/oggyb/socialgraph/internal/app"
	"github.com/oggyb/socialgraph/internal/cache"
	"github.com/oggyb/socialgraph/internal/config"
	"github.com/oggyb/socialgraph/internal/db"
	"github.com/oggyb/socialgraph/internal/logger"
	"github.com/oggyb/socialgraph/internal/server"
	"github.com/oggyb/socialgraph/internal/service/social"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (overrides env)")
	flag.Parse()

	// Booting screen
	fmt.Println(color.New(color.FgHiCyan).Add(color.Bold).Sprint("socialgraph"))
	fmt.Println("Follow graph, feed and notification service")
	color.HiBlack("=============================================\n")

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L() // slog.Logger pointer

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(ctx); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}
	defer redisCache.Client.Close()

	userCache, err := cache.NewUserCache(cfg)
	if err != nil {
		log.Error("failed to init user cache", "err", err)
		return
	}

	// Inject logger into app context
	appCtx := app.New(cfg, database, redisCache, userCache, logger.ForService("social"))

	socialRegistrar := social.NewRegistrar(appCtx)
	registrars := []server.Registrar{
		socialRegistrar,
	}

	if cfg.App.ENV == "development" {
		seedPassword := func(u *db.User, password string) error {
			return account.SetPassword(u, password, cfg.Auth.BcryptCost)
		}
		if err := db.SeedTestData(database, seedPassword); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	if err := server.StartGRPCServer(ctx, cfg, socialRegistrar.Authenticator(), log, registrars...); err != nil {
		log.Error("failed to start gRPC server", "err", err)
	}
}
