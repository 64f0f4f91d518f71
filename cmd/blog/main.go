package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/django/v3"

	session "github.com/Hot00Sauce/go-session"
	"github.com/Hot00Sauce/go-session/provider/gotrue"
)

func main() {
	cfg, err := session.ConfigFromEnv()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	provider, err := gotrue.New(gotrue.Config{
		BaseURL: cfg.ServiceURL,
		APIKey:  cfg.ServiceKey,
	})
	if err != nil {
		log.Fatalf("identity provider error: %v", err)
	}

	app, err := session.NewApp(cfg, provider)
	if err != nil {
		log.Fatalf("startup error: %v", err)
	}

	engine := django.New("./views", ".django")

	srv := fiber.New(fiber.Config{
		Views:             engine,
		PassLocalsToViews: true,
	})

	app.Mount(srv)

	go func() {
		if err := srv.Listen(cfg.ListenAddr); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	waitExitSignal()

	if err := srv.Shutdown(); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func waitExitSignal() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}
