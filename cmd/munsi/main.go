package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/munsiapp/munsi/internal/database"
	"github.com/munsiapp/munsi/internal/logging"
	"github.com/munsiapp/munsi/internal/server"
	"github.com/munsiapp/munsi/internal/snapshot"
	"github.com/munsiapp/munsi/internal/store"
)

func main() {
	// Optional .env for local development; real deployments set env directly
	_ = godotenv.Load()

	port := os.Getenv("MUNSI_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("MUNSI_DB_PATH")
	if dbPath == "" {
		dbPath = "munsi.db"
	}

	logger := logging.Setup(os.Getenv("MUNSI_LOG_LEVEL"), os.Getenv("MUNSI_LOG_FORMAT"))

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	snapCfg := snapshot.Config{
		Endpoint:   os.Getenv("MUNSI_S3_ENDPOINT"),
		Bucket:     os.Getenv("MUNSI_S3_BUCKET"),
		Region:     os.Getenv("MUNSI_S3_REGION"),
		AccessKey:  os.Getenv("MUNSI_S3_ACCESS_KEY"),
		SecretKey:  os.Getenv("MUNSI_S3_SECRET_KEY"),
		Passphrase: os.Getenv("MUNSI_SNAPSHOT_PASSPHRASE"),
		DBPath:     dbPath,
	}
	if hours, err := strconv.Atoi(os.Getenv("MUNSI_SNAPSHOT_INTERVAL_HOURS")); err == nil && hours > 0 {
		snapCfg.Interval = time.Duration(hours) * time.Hour
	}
	snapshotMgr := snapshot.NewManager(snapCfg, db, store.NewSnapshotStore(db), logger)

	srv := server.New(db, snapshotMgr, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snapshotMgr.Start(ctx)
	defer snapshotMgr.Stop()

	// Periodic rate limiter cleanup
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				srv.RateLimiter().Cleanup()
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Munsi running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	fmt.Println("\nShutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
