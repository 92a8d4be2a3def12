package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/ojusave/rtms-perplexity/config"
	"github.com/ojusave/rtms-perplexity/feed"
	"github.com/ojusave/rtms-perplexity/llm"
	"github.com/ojusave/rtms-perplexity/processor"
	"github.com/ojusave/rtms-perplexity/rtms"
	"github.com/ojusave/rtms-perplexity/search"
	"github.com/ojusave/rtms-perplexity/store"
	"github.com/ojusave/rtms-perplexity/webhook"
)

func main() {
	// Include sub-second precision in all log timestamps
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	cfg := config.Load()
	if cfg.ZoomSecretToken == "" || cfg.ZoomClientID == "" || cfg.ZoomClientSecret == "" {
		log.Fatal("ZOOM_SECRET_TOKEN, ZM_CLIENT_ID and ZM_CLIENT_SECRET must be set")
	}

	var itemStore store.Store = store.NewMemory()
	if cfg.RedisURL != "" {
		rs, err := store.NewRedis(context.Background(), cfg.RedisURL, cfg.ActionItemTTL)
		if err != nil {
			log.Fatalf("redis store: %v", err)
		}
		defer rs.Close()
		itemStore = rs
		log.Println("action items persisted to redis")
	}

	analyzer := llm.NewClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.LLMModel)
	searcher := search.NewClient(cfg.PerplexityKey, cfg.PerplexityModel)
	hub := feed.NewHub()

	manager := rtms.NewManager(
		rtms.Credentials{ClientID: cfg.ZoomClientID, ClientSecret: cfg.ZoomClientSecret},
		rtms.Policy{
			ReconnectAttempts: cfg.ReconnectAttempts,
			ReconnectDelay:    cfg.ReconnectDelay,
			InsecureTLS:       cfg.InsecureTLS,
		},
		func(meetingUUID string) rtms.ChunkHandler {
			return processor.New(meetingUUID, cfg.HistorySize, analyzer, searcher, itemStore, hub)
		},
	)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	webhook.NewHandler(cfg.ZoomSecretToken, manager).Register(app)
	hub.Register(app)

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s", cfg.HTTPAddress)
		log.Printf("webhook endpoint available at http://localhost%s/webhook", cfg.HTTPAddress)
		serverErrors <- app.Listen(cfg.HTTPAddress)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-sigChan:
		log.Printf("shutdown signal received: %v", sig)
	}

	manager.StopAll()
	if err := app.Shutdown(); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
