// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/product-vote/content"
	"github.com/danielhkuo/product-vote/middleware"
	"github.com/danielhkuo/product-vote/models"
)

type ContentHandler struct {
	deps Deps
}

func NewContentHandler(deps Deps) *ContentHandler {
	return &ContentHandler{deps: deps.WithDefaults()}
}

// GetContent handles GET /content
// Returns the first sample cards; failures are logged and reported without detail
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	cards, err := h.deps.cards(r.Context())
	if err != nil {
		middleware.FailureResponse(w, http.StatusBadGateway, "Sample content unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ContentResponse{
		Success: true,
		Data:    cards,
	})
}

func (d Deps) cards(ctx context.Context) ([]models.Card, error) {
	resp, err := d.Content.FetchTexts(ctx)
	if err != nil {
		slog.Error("failed to fetch sample content", "error", err)
		return nil, err
	}
	return content.Cards(resp, content.CardCount), nil
}
