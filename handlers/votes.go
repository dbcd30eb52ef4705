// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/danielhkuo/product-vote/metrics"
	"github.com/danielhkuo/product-vote/middleware"
	"github.com/danielhkuo/product-vote/models"
	"github.com/danielhkuo/product-vote/store"
)

type VoteHandler struct {
	deps Deps
}

func NewVoteHandler(deps Deps) *VoteHandler {
	return &VoteHandler{deps: deps.WithDefaults()}
}

// SubmitVote handles POST /votes
func (h *VoteHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Empty selections never reach the store
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		h.deps.Metrics.VotesSubmitted.WithLabelValues(metrics.ResultRejected).Inc()
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgSelectProduct)
		return
	}

	conf, results, err := h.deps.recordVote(r.Context(), productID)
	if err != nil {
		middleware.FailureResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		Success: true,
		Message: conf.Message,
		Key:     conf.Key,
		Results: results,
	})
}

// ListVotes handles GET /votes
// Returns every stored vote in submit order
func (h *VoteHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := h.deps.Votes.FetchAllVotes(r.Context())
	if err != nil {
		h.deps.Metrics.StoreErrors.WithLabelValues(store.OpFetch).Inc()
		middleware.FailureResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VotesResponse{
		Success: true,
		Data:    votes,
	})
}
