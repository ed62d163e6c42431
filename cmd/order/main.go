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
	"go.uber.org/zap"

	"github.com/rl1809/order-inventory/internal/adapter/client"
	"github.com/rl1809/order-inventory/internal/adapter/event"
	"github.com/rl1809/order-inventory/internal/adapter/handler"
	"github.com/rl1809/order-inventory/internal/adapter/storage"
	"github.com/rl1809/order-inventory/internal/core/service"
	"github.com/rl1809/order-inventory/internal/port"
)

const (
	defaultAddr         = ":8080"
	defaultMySQLDSN     = "root:root@tcp(localhost:3306)/orders?parseTime=true"
	defaultInventoryURL = "http://localhost:8081"
	defaultKafkaTopic   = "order-events"
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

	var publisher port.OrderEventPublisher = event.NoopPublisher{}
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		kp := event.NewKafkaPublisher(broker, getenv("KAFKA_TOPIC", defaultKafkaTopic), logger)
		defer kp.Close()
		publisher = kp
		logger.Info("kafka publisher enabled", zap.String("broker", broker))
	}

	inventoryClient := client.NewInventoryHTTPClient(getenv("INVENTORY_SERVICE_URL", defaultInventoryURL), logger)
	if !inventoryClient.CheckHealth(ctx) {
		logger.Warn("inventory service health check failed at startup")
	}

	orderStore := storage.NewMySQLOrderStore(db)
	orderService := service.NewOrderService(orderStore, inventoryClient, publisher, logger)

	mux := http.NewServeMux()
	handler.NewOrderHandler(orderService).Register(mux)

	server := &http.Server{
		Addr:    getenv("HTTP_ADDR", defaultAddr),
		Handler: mux,
	}

	go func() {
		logger.Info("order service listening", zap.String("addr", server.Addr))
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

	db.Close()
	logger.Info("stopped")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
