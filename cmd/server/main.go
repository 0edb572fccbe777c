package main

import (
	"context"
	"net/http"
	"os"

	webAdapter "fabric-inventory/internal/adapters/web"
	"fabric-inventory/internal/app"
	"fabric-inventory/internal/core"
	"fabric-inventory/internal/db"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(lvl)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		logrus.Fatalf("database: %v", err)
	}
	defer pool.Close()

	stockService := core.NewStockService(pool)
	directoryService := core.NewDirectoryService(pool, stockService)
	invoiceService := core.NewInvoiceService(pool, stockService)
	refundService := core.NewRefundService(pool, stockService)

	svc := app.NewAppService(pool, directoryService, stockService, invoiceService, refundService)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins)

	logrus.Infof("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logrus.Fatalf("server: %v", err)
	}
}
