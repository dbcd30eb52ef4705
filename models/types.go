// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the ISO-8601 layout votes are stamped with (UTC, millisecond precision)
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// VotesCollection is the name of the collection votes are appended to
const VotesCollection = "votes"

// User-facing messages
const (
	MsgVoteSaved       = "Voto guardado exitosamente."
	MsgSelectProduct   = "Por favor, selecciona un producto antes de votar."
	MsgNoVotes         = "Aún no hay votos registrados."
	MsgSaveVoteFailed  = "Error al guardar el voto"
	MsgLoadVotesFailed = "Error al cargar los votos"
)

var ErrInvalidCatalog = errors.New("invalid product catalog")

// Domain types

// VoteRecord is one submitted vote as stored in the votes collection
type VoteRecord struct {
	ProductID string `json:"productID"`
	Timestamp string `json:"timestamp"`
}

// NewVoteRecord stamps a vote for productID at the given time
func NewVoteRecord(productID string, at time.Time) VoteRecord {
	return VoteRecord{
		ProductID: productID,
		Timestamp: at.UTC().Format(TimestampLayout),
	}
}

// StoredVote is a VoteRecord together with the key the store assigned to it
type StoredVote struct {
	Key string `json:"key"`
	VoteRecord
}

// Time parses the record timestamp. Malformed timestamps yield the zero time.
func (v VoteRecord) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, v.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

type Product struct {
	ID   string `json:"value"`
	Name string `json:"label"`
}

// Catalog is the ordered list of products offered in the selection control
type Catalog []Product

// Names returns the productID -> display name mapping used for tallying.
// A fresh map is returned on every call.
func (c Catalog) Names() map[string]string {
	names := make(map[string]string, len(c))
	for _, p := range c {
		names[p.ID] = p.Name
	}
	return names
}

// Contains reports whether id is one of the catalog products
func (c Catalog) Contains(id string) bool {
	for _, p := range c {
		if p.ID == id {
			return true
		}
	}
	return false
}

// ParseCatalog parses "value:label" pairs separated by commas.
// A pair without a label uses the value as its label; empty values are skipped.
func ParseCatalog(s string) (Catalog, error) {
	var catalog Catalog
	seen := make(map[string]bool)

	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		id, name, found := strings.Cut(pair, ":")
		id = strings.TrimSpace(id)
		name = strings.TrimSpace(name)
		if id == "" {
			return nil, fmt.Errorf("%w: empty product value in %q", ErrInvalidCatalog, pair)
		}
		if !found || name == "" {
			name = id
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate product value %q", ErrInvalidCatalog, id)
		}
		seen[id] = true

		catalog = append(catalog, Product{ID: id, Name: name})
	}

	return catalog, nil
}

// Entry is one row of a tally: a product and how many votes it received
type Entry struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
}

// Card is one sample content item
type Card struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Genre   string `json:"genre"`
	Content string `json:"content"`
}

// Request types

type SubmitVoteRequest struct {
	ProductID string `json:"product_id"`
}

// Response types

// SubmitVoteResponse mirrors the {success, message} result of a submit.
// Key and Results are only set on success.
type SubmitVoteResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Key     string  `json:"key,omitempty"`
	Results []Entry `json:"results,omitempty"`
}

type VotesResponse struct {
	Success bool         `json:"success"`
	Data    []StoredVote `json:"data"`
}

type ResultsResponse struct {
	Success bool    `json:"success"`
	Data    []Entry `json:"data"`
	Total   int     `json:"total"`
}

type ContentResponse struct {
	Success bool   `json:"success"`
	Data    []Card `json:"data"`
}

type ProductsResponse struct {
	Products Catalog `json:"products"`
}

// FailureResponse is the {success:false, message} envelope for store and content failures
type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LiveUpdate is pushed to live result subscribers after each accepted vote
type LiveUpdate struct {
	Results []Entry `json:"results"`
	Total   int     `json:"total"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
