package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/lonjamar/lonja"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("lonja %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func runServe() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfgPath := os.Getenv("LONJA_CONFIG")
	if cfgPath == "" {
		cfgPath = "lonja.yaml"
	}
	cfg, err := lonja.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	app := lonja.New(cfg)
	defer app.Close()
	return app.Start()
}

func printUsage() {
	fmt.Println(`lonja - seafood-market content and stock backend

Usage:
  lonja <command>

Commands:
  serve         Start the HTTP server (default)
  version       Print the lonja version
  help          Show this help message

Configuration is read from lonja.yaml (override with LONJA_CONFIG) and
LONJA_* environment variables; a .env file is loaded when present.`)
}
