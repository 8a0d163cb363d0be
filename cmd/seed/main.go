package main

import (
	"log"

	"github.com/oggyb/socialgraph/internal/account"
	"github.com/oggyb/socialgraph/internal/config"
	"github.com/oggyb/socialgraph/internal/db"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}

	setPassword := func(u *db.User, password string) error {
		return account.SetPassword(u, password, cfg.Auth.BcryptCost)
	}
	if err := db.SeedTestData(database, setPassword); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	log.Println("Seeding completed.")
}
