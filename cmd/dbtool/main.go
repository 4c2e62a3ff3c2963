package main

import (
	"context"
	"database/sql"
	"flare-label-service/internal/adapters/cache"
	"flare-label-service/internal/adapters/repositories"
	"flare-label-service/internal/config"
	"flare-label-service/internal/domain"
	"flare-label-service/internal/platform/db"
	"flare-label-service/internal/services"
	"log"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// dbtool prepares a Postgres database: schema, site seed data and a warm label cache.
func main() {
	config.Load()

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()
	seedPath := config.Get("SEED_PATH", "data/seeds/sites.json")
	initAndSeed(ctx, conn, seedPath)

	if config.GetBool("WARM_LABEL_CACHE", true) {
		opts := domain.DefaultLabelOptions()
		opts.Decimals = config.GetInt("LABEL_DECIMALS", opts.Decimals)
		if err := opts.Validate(); err != nil {
			log.Fatalf("invalid LABEL_DECIMALS: %v", err)
		}
		warmLabelCache(ctx, conn, opts)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSON(ctx, conn, repositories.Postgres, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}

func warmLabelCache(ctx context.Context, conn *sql.DB, opts domain.LabelOptions) {
	log.Printf("Warming label cache decimals=%d...", opts.Decimals)
	sites, err := services.LabelSites(
		ctx,
		services.LabelSitesRequest{Options: opts},
		repositories.NewSQLSiteRepository(conn),
		cache.NewSQLLabelCache(conn),
	)
	if err != nil {
		log.Fatalf("warming label cache failed: %v", err)
	}
	log.Printf("Label cache warm sites=%d.", len(sites))
}
