package main

import (
	"log"

	"github.com/wartimekillers/snapxchange/internal/app"
	"github.com/wartimekillers/snapxchange/internal/config"
)

func main() {
	cfg := config.Load()

	application := app.New(cfg)

	log.Println("Starting SnapXchange API...")
	log.Println("🌐 API доступен: http://localhost:" + cfg.Server.Port + "/api/v1")

	if err := application.Run(); err != nil {
		log.Fatalf("Failed: %v", err)
	}

	log.Println("Stopped")
}
