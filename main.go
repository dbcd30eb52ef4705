package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/product-vote/cliparse"
	"github.com/danielhkuo/product-vote/content"
	"github.com/danielhkuo/product-vote/event"
	"github.com/danielhkuo/product-vote/handlers"
	"github.com/danielhkuo/product-vote/metrics"
	"github.com/danielhkuo/product-vote/middleware"
	"github.com/danielhkuo/product-vote/pubsub"
	"github.com/danielhkuo/product-vote/router"
	"github.com/danielhkuo/product-vote/store"
)

func main() {
	var err error

	// Values in .env never override the process environment
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading env file", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to the vote store
	backend, err := store.Open(ctx, cfg)
	if err != nil {
		slog.Error("vote store connection failed", "error", err, "backend", cfg.Backend)
		os.Exit(1)
	}
	votes := store.NewClient(backend)
	defer votes.Close()
	slog.Info("Vote store ready", "backend", cfg.Backend)

	m := metrics.New("product_vote")

	hub := pubsub.NewHub(func(n int) { m.LiveSubscribers.Set(float64(n)) })
	go hub.Run(ctx)

	// Without brokers accepted votes are not published
	publisher := event.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer publisher.Close()

	// Create router
	mux := router.NewRouter(handlers.Deps{
		Votes:     votes,
		Catalog:   cfg.Products,
		Content:   content.NewClient(cfg.ContentURL, cfg.ContentTimeout, content.WithCacheTTL(content.DefaultCacheTTL)),
		Publisher: publisher,
		Hub:       hub,
		Metrics:   m,
	})

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "products", len(cfg.Products))
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
