// Command internal-orders runs the private domain handler: POST /orders/
// reachable only by the authorised caller account.
//
// Under Lambda (AWS_LAMBDA_RUNTIME_API set, or ORDERS_RUNTIME_MODE=lambda) it serves
// API Gateway proxy events; otherwise it listens on ORDERS_HTTP_ADDR.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/xacc_orders/config"
	"github.com/Gunvolt24/xacc_orders/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := app.BootstrapDomain(ctx, &cfg, app.Options{})
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer cleanup()

	if err := a.Run(ctx); err != nil {
		a.Logger.Errorf(ctx, "run: %v", err)
	}
}
