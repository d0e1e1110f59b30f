package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"resume-matcher/internal/bootstrap"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/server"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	defer app.Close()

	if err := server.ListenAndServe(ctx, server.Addr(cfg.Port), app.Router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
