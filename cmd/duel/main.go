// Package main plays the games in the terminal.
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
	"minigames/internal/cli"
	"minigames/internal/config"
	"minigames/internal/narrate"
)

func main() {
	_ = godotenv.Load()
	pdfPath := flag.String("pdf", "", "write a printable duel record to this file")
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[DUEL] ")
	log.SetOutput(os.Stderr)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, closeStore, err := app.Open(cfg)
	if err != nil {
		config.Exitf("open service: %v", err)
	}
	defer closeStore()

	lang, _ := narrate.ParseTag(cfg.Lang)
	g := &cli.Game{
		Service:   svc,
		In:        os.Stdin,
		Out:       os.Stdout,
		Lang:      lang,
		PDFPath:   *pdfPath,
		MaxRounds: cfg.MaxRounds,
	}
	if err := g.Run(ctx); err != nil {
		log.Printf("game error: %v", err)
		closeStore()
		os.Exit(1)
	}
}
