package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/midas/analytics/internal/alerts"
	"github.com/midas/analytics/internal/api"
	"github.com/midas/analytics/internal/assistant"
	"github.com/midas/analytics/internal/cache"
	"github.com/midas/analytics/internal/config"
	"github.com/midas/analytics/internal/ingest"
	"github.com/midas/analytics/internal/meta"
	"github.com/midas/analytics/internal/platforms"
	"github.com/midas/analytics/internal/repository/postgres"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"
)

// checkPortAvailable verifies the target port is not already in use before
// any other startup work happens.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

func main() {
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL (or database.url in config) is required")
	}

	if err := checkPortAvailable(cfg.Server.Host, cfg.Server.Port); err != nil {
		log.Fatalf("Pre-flight check failed: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to reach database: %v", err)
	}
	log.Println("[server] connected to database")

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("[server] redis unavailable, caching disabled: %v", err)
			rdb = nil
		}
	}
	resultCache := cache.New(rdb)

	campaignRepo := postgres.NewCampaignRepo(db)
	perfRepo := postgres.NewPerformanceRepo(db)

	metaClient := meta.NewClient(cfg.Meta)
	if metaClient.Live() {
		log.Printf("[server] meta client in live mode (%d accounts)", len(cfg.Meta.AdAccounts))
	} else {
		log.Println("[server] meta client in demo mode (no access token)")
	}

	collector := ingest.NewCollector(
		metaClient,
		platforms.Stubs(cfg),
		campaignRepo,
		perfRepo,
		cfg.PollInterval(),
		cfg.Polling.LookbackDays,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go collector.Start(ctx)

	executor := assistant.NewExecutor(db)
	dataAssistant := assistant.New(executor, campaignRepo, perfRepo, resultCache, cfg.SummaryTTL())

	h := &api.Handlers{
		Assistant:    dataAssistant,
		Sessions:     assistant.NewStore(),
		Executor:     executor,
		Campaigns:    campaignRepo,
		Facts:        perfRepo,
		Detector:     alerts.NewDetector(),
		Cache:        resultCache,
		DashboardTTL: cfg.DashboardTTL(),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.SetupRoutes(h),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("[server] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("[server] shutting down...")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[server] shutdown error: %v", err)
	}
}
