// Package main serves the games on a bare TCP socket with one shared scope.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"minigames/internal/app"
	"minigames/internal/config"
	"minigames/internal/narrate"
	"minigames/internal/socket"
	"minigames/internal/telemetry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("note: .env file not loaded: %v", err)
	}
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[SOCKET] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, "socket", cfg.Telemetry)
	if err != nil {
		log.Printf("telemetry disabled: %v", err)
	} else {
		defer func() {
			if err := shutdown(context.WithoutCancel(ctx)); err != nil {
				log.Printf("shutdown telemetry: %v", err)
			}
		}()
	}

	svc, closeStore, err := app.Open(cfg)
	if err != nil {
		log.Fatalf("open service: %v", err)
	}
	defer closeStore()
	svc.MaxRounds = cfg.MaxRounds

	lang, _ := narrate.ParseTag(cfg.Lang)
	srv := &socket.Server{Service: svc, Lang: lang}
	if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
