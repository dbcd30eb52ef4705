// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/product-vote/middleware"
	"github.com/danielhkuo/product-vote/models"
	"github.com/danielhkuo/product-vote/tally"
)

type ResultsHandler struct {
	deps Deps
}

func NewResultsHandler(deps Deps) *ResultsHandler {
	return &ResultsHandler{deps: deps.WithDefaults()}
}

// GetResults handles GET /results
// Every catalog product is listed, ranked by vote count
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	_, results, err := h.deps.results(r.Context())
	if err != nil {
		middleware.FailureResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Success: true,
		Data:    results,
		Total:   tally.Total(results),
	})
}

// GetProducts handles GET /products
func (h *ResultsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	catalog := h.deps.Catalog
	if catalog == nil {
		catalog = models.Catalog{}
	}
	middleware.JSONResponse(w, http.StatusOK, models.ProductsResponse{Products: catalog})
}

// LiveResults handles GET /ws/results
// Sends the current tally once subscribed, then one update per accepted vote
func (h *ResultsHandler) LiveResults(w http.ResponseWriter, r *http.Request) {
	if h.deps.Hub == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Live results are disabled")
		return
	}

	if err := h.deps.Hub.ServeWS(w, r, func() []byte { return h.snapshot(r) }); err != nil {
		slog.Warn("live results upgrade failed", "error", err)
	}
}

// snapshot encodes the current tally. A failed read sends nothing.
func (h *ResultsHandler) snapshot(r *http.Request) []byte {
	_, results, err := h.deps.results(r.Context())
	if err != nil {
		return nil
	}

	payload, err := liveUpdate(results)
	if err != nil {
		slog.Error("failed to encode live update", "error", err)
		return nil
	}
	return payload
}
