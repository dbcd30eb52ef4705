// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/product-vote/handlers"
	"github.com/danielhkuo/product-vote/middleware"
)

func NewRouter(deps handlers.Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Handlers and /metrics must share one registry
	deps = deps.WithDefaults()

	// Initialize handlers
	widgetHandler := handlers.NewWidgetHandler(deps)
	voteHandler := handlers.NewVoteHandler(deps)
	resultsHandler := handlers.NewResultsHandler(deps)
	contentHandler := handlers.NewContentHandler(deps)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Widget page
	mux.HandleFunc("GET /", middleware.WithLogging(widgetHandler.Page))
	mux.HandleFunc("POST /{$}", middleware.WithLogging(widgetHandler.Submit))

	// Catalog and votes
	mux.HandleFunc("GET /products", middleware.WithLogging(resultsHandler.GetProducts))
	mux.HandleFunc("POST /votes", middleware.WithLogging(voteHandler.SubmitVote))
	mux.HandleFunc("GET /votes", middleware.WithLogging(voteHandler.ListVotes))

	// Results
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /ws/results", middleware.WithLogging(resultsHandler.LiveResults))

	// Sample content
	mux.HandleFunc("GET /content", middleware.WithLogging(contentHandler.GetContent))

	mux.Handle("GET /metrics", deps.Metrics.Handler())

	return mux
}
