package main

import (
	"log"
	"os"

	"github.com/policypilot/policypilot/config"
	"github.com/policypilot/policypilot/internal/server"
)

func main() {
	cfg := config.LoadConfig(os.Getenv("POLICYPILOT_CONFIG"))

	if addr := os.Getenv("POLICYPILOT_HTTP_ADDR"); addr != "" {
		cfg.Server.Address = addr
	}

	if err := server.Run(cfg); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
