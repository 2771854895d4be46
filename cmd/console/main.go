package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"lookman/internal/config"
	"lookman/internal/console"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	srv, err := console.NewServer(console.NewClient(cfg.APIBaseURL))
	if err != nil {
		log.Fatalf("console: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	srv.Register(e)

	log.Printf("console: API at %s", cfg.APIBaseURL)
	log.Fatal(e.Start(":" + cfg.ConsolePort))
}
