package main

import (
	"context"
	"database/sql"
	"flare-label-service/internal/adapters/cache"
	"flare-label-service/internal/adapters/repositories"
	"flare-label-service/internal/api"
	"flare-label-service/internal/config"
	"flare-label-service/internal/domain"
	"flare-label-service/internal/platform/db"
	"flare-label-service/internal/ports"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis) behind ports and starts the HTTP server.
func main() {
	config.Load()

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/sites.json")
	port := config.Get("PORT", "8080")
	redisAddr := config.Get("REDIS_ADDR", "")
	cacheTTL := config.GetDuration("LABEL_CACHE_TTL", 24*time.Hour)

	defaults := labelDefaults(config.GetInt("LABEL_DECIMALS", domain.DefaultLabelOptions().Decimals))

	conn, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Initialize schema and seed demo data on startup for local runs.
	ctx := context.Background()
	if err := initAndSeed(ctx, conn, seedPath); err != nil {
		log.Fatal(err)
	}

	labelCache, closeCache := newLabelCache(ctx, conn, redisAddr, cacheTTL)
	defer closeCache()

	repo := repositories.NewSQLSiteRepository(conn)
	router := api.NewRouter(repo, labelCache, defaults)

	log.Printf("Server listening addr=:%s label_decimals=%d", port, defaults.Decimals)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// labelDefaults applies decimals to the default label options, keeping the
// built-in value when decimals is out of range.
func labelDefaults(decimals int) domain.LabelOptions {
	opts := domain.DefaultLabelOptions()
	opts.Decimals = decimals
	if err := opts.Validate(); err != nil {
		fallback := domain.DefaultLabelOptions()
		log.Printf("config: LABEL_DECIMALS=%d rejected (%v), using %d", decimals, err, fallback.Decimals)
		return fallback
	}
	return opts
}

// newLabelCache prefers Redis when REDIS_ADDR is set and reachable,
// falling back to the SQLite label_cache table.
func newLabelCache(ctx context.Context, conn *sql.DB, redisAddr string, ttl time.Duration) (ports.LabelCache, func()) {
	if redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		err := client.Ping(pingCtx).Err()
		if err == nil {
			log.Printf("label cache: redis addr=%s ttl=%s", redisAddr, ttl)
			c := cache.NewRedisLabelCache(cache.RedisLabelCacheOptions{Client: client, TTL: ttl})
			return c, func() { _ = client.Close() }
		}
		log.Printf("label cache: redis addr=%s unreachable, using sqlite: %v", redisAddr, err)
		_ = client.Close()
	}

	log.Println("label cache: sqlite")
	return cache.NewSqliteLabelCache(conn), func() {}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(ctx, conn, repositories.SQLite, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
