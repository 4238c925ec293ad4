// Command web serves color pages over HTTP.
package main

import (
	"colorchanger/internal/config"
	"colorchanger/internal/server"
	"log"
)

func main() {
	cfg := config.Load()
	log.Printf("[Main] control=%s source=%s padded=%t\n", cfg.ControlID, cfg.RandomSource, cfg.PadHex)
	if err := server.Run(cfg); err != nil {
		log.Fatalf("[Main] %v", err)
	}
}
