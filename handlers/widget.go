// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/product-vote/metrics"
	"github.com/danielhkuo/product-vote/models"
	"github.com/danielhkuo/product-vote/tally"
)

//go:embed templates/widget.html
var templateFS embed.FS

var widgetTemplate = template.Must(template.New("widget.html").Funcs(template.FuncMap{
	"count":    formatCount,
	"voteTime": formatVoteTime,
}).ParseFS(templateFS, "templates/widget.html"))

// formatCount groups thousands with a dot, as the page is in Spanish
func formatCount(n int) string {
	return humanize.FormatInteger("#.###,", n)
}

func formatVoteTime(t time.Time) string {
	return t.UTC().Format("02/01/2006 15:04") + " UTC"
}

// Flash query parameters set by the form redirect
const (
	noticeParam = "notice"
	kindParam   = "kind"

	kindOK    = "ok"
	kindError = "error"
)

type widgetPage struct {
	Notice     string
	NoticeKind string
	Products   models.Catalog
	Results    []models.Entry
	Total      int
	LastVote   time.Time
	LoadError  string
	NoVotes    string
	Cards      []models.Card
}

type WidgetHandler struct {
	deps Deps
}

func NewWidgetHandler(deps Deps) *WidgetHandler {
	return &WidgetHandler{deps: deps.WithDefaults()}
}

// Page handles GET /
// Renders the vote form, the ranked results and the sample content cards
func (h *WidgetHandler) Page(w http.ResponseWriter, r *http.Request) {
	// The root pattern matches every unrouted path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page := widgetPage{
		Notice:     r.URL.Query().Get(noticeParam),
		NoticeKind: r.URL.Query().Get(kindParam),
		Products:   h.deps.Catalog,
		NoVotes:    models.MsgNoVotes,
	}

	votes, results, err := h.deps.results(r.Context())
	if err != nil {
		page.LoadError = err.Error()
	} else {
		page.Results = results
		page.Total = tally.Total(results)
		if n := len(votes); n > 0 {
			page.LastVote = votes[n-1].Time()
		}
	}

	// Content failures only hide the cards
	if cards, err := h.deps.cards(r.Context()); err == nil {
		page.Cards = cards
	}

	var buf bytes.Buffer
	if err := widgetTemplate.Execute(&buf, page); err != nil {
		slog.Error("failed to render widget", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Submit handles POST /
// Records the form selection and redirects back to the page with a notice
func (h *WidgetHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithNotice(w, r, kindError, "Invalid form")
		return
	}

	productID := strings.TrimSpace(r.PostForm.Get("product_id"))
	if productID == "" {
		h.deps.Metrics.VotesSubmitted.WithLabelValues(metrics.ResultRejected).Inc()
		redirectWithNotice(w, r, kindError, models.MsgSelectProduct)
		return
	}

	conf, _, err := h.deps.recordVote(r.Context(), productID)
	if err != nil {
		redirectWithNotice(w, r, kindError, err.Error())
		return
	}

	redirectWithNotice(w, r, kindOK, conf.Message)
}

func redirectWithNotice(w http.ResponseWriter, r *http.Request, kind, notice string) {
	q := url.Values{}
	q.Set(kindParam, kind)
	q.Set(noticeParam, notice)
	http.Redirect(w, r, "/?"+q.Encode(), http.StatusSeeOther)
}
