// Package main answers one serverless invocation: it reads an event as JSON
// on stdin and writes the response as JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"minigames/internal/app"
	"minigames/internal/config"
	"minigames/internal/narrate"
	"minigames/internal/serverless"
	"minigames/internal/telemetry"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[FUNC] ")
	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx, "serverless", cfg.Telemetry)
	if err != nil {
		log.Printf("telemetry disabled: %v", err)
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("shutdown telemetry: %v", err)
			}
		}()
	}

	var req serverless.Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		log.Fatalf("decode event: %v", err)
	}

	svc, closeStore, err := app.Open(cfg)
	if err != nil {
		log.Fatalf("open service: %v", err)
	}
	defer closeStore()
	svc.MaxRounds = cfg.MaxRounds

	lang, _ := narrate.ParseTag(cfg.Lang)
	h := &serverless.Handler{Service: svc, Lang: lang}
	resp := h.Handle(ctx, req)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		log.Printf("encode response: %v", err)
	}
}
