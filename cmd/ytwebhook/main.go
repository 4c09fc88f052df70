package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"ytwebhook/internal/api"
	"ytwebhook/internal/config"
	"ytwebhook/internal/engine"
	"ytwebhook/internal/staging"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Environment variables may also be set directly; the .env file
	// is optional.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}

	// Resolve the extraction engine, installing it if nothing usable
	// is configured.
	engineMgr := engine.NewManager(filepath.Join(cfg.StagingRoot, "bin"))
	enginePath, err := engineMgr.Resolve(cfg.YtdlpPath)
	if err != nil {
		log.Println("Extraction engine not found, installing...")
		if err := engineMgr.EnsureInstalled(); err != nil {
			fmt.Fprintf(os.Stderr, "Error installing engine: %v\n", err)
			return 1
		}
		enginePath = engineMgr.BinaryPath()
	}
	cfg.YtdlpPath = enginePath

	stagingMgr, err := staging.NewManager(cfg.StagingRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing staging root: %v\n", err)
		return 1
	}

	server := api.NewServer(cfg, stagingMgr)
	if err := server.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		return 1
	}

	log.Printf("Listening on %s (engine: %s, staging: %s)", server.GetActualAddr(), enginePath, stagingMgr.Root())

	// Staged files are never deleted by the service; operators should
	// sweep the staging root by age.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	if err := server.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		return 1
	}

	return 0
}
