// Command server runs the vocadrill HTTP API.
//
// Configuration comes from a YAML file (CONFIG_PATH, default ./config.yaml)
// overridden by environment variables. See internal/config for the full list.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"

	"github.com/vocadrill/backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
