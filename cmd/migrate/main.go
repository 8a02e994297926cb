package main

import (
	"flag"
	"fmt"
	"os"

	"vidquiz/internal/config"
	"vidquiz/internal/database"
)

func main() {
	dir := flag.String("dir", "database/migrations", "migrations directory")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := database.NewMigrateOracleDB(cfg.GetDSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db, *dir); err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("migrations applied")
}
