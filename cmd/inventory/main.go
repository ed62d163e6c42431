package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rl1809/order-inventory/internal/adapter/handler"
	"github.com/rl1809/order-inventory/internal/adapter/storage"
	"github.com/rl1809/order-inventory/internal/core/service"
	"github.com/rl1809/order-inventory/internal/core/strategy"
)

const (
	defaultAddr      = ":8081"
	defaultMySQLDSN  = "root:root@tcp(localhost:3306)/inventory?parseTime=true"
	defaultRedisAddr = "localhost:6379"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sql.Open("mysql", getenv("MYSQL_DSN", defaultMySQLDSN))
	if err != nil {
		logger.Fatal("failed to open mysql", zap.Error(err))
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("failed to ping mysql", zap.Error(err))
	}
	logger.Info("connected to mysql")

	rdb := redis.NewClient(&redis.Options{Addr: getenv("REDIS_ADDR", defaultRedisAddr)})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect redis", zap.Error(err))
	}
	logger.Info("connected to redis")

	batchStore := storage.NewMySQLBatchStore(db)
	cache := storage.NewRedisAvailabilityCache(rdb)
	registry := strategy.NewDefaultRegistry(logger)
	inventoryService := service.NewInventoryService(batchStore, cache, registry, logger)

	mux := http.NewServeMux()
	handler.NewInventoryHandler(inventoryService).Register(mux)

	server := &http.Server{
		Addr:    getenv("HTTP_ADDR", defaultAddr),
		Handler: mux,
	}

	go func() {
		logger.Info("inventory service listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("http server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)

	rdb.Close()
	db.Close()
	logger.Info("stopped")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
