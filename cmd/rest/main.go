package main

import (
	"log"

	"legis-catalog-client/internal/bootstrap"
	"legis-catalog-client/internal/config"
	"legis-catalog-client/internal/server"

	"github.com/fatih/color"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer func() {
		_ = container.Logger.Sync()
	}()

	color.Cyan("Legislative catalog client")
	color.Green("Upstream: %s (jurisdiction %s)", cfg.Upstream.BaseURL, cfg.Upstream.DefaultJurisdiction)

	// 3. Initialize Server
	srv := server.New(cfg, container)

	// 4. Run Server
	log.Fatal(srv.Run())
}
