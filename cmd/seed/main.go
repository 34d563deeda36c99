package main

import (
	"log"

	"invoices-dashboard/config"
	"invoices-dashboard/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := config.ConnectDB(cfg.DBDriver, cfg.DBURL)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer config.CloseDB(db)

	if err := config.Migrate(db); err != nil {
		log.Fatalf("%v", err)
	}
	if err := seed.Run(db); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
}
