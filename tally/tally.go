// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"fmt"
	"sort"

	"github.com/danielhkuo/product-vote/models"
)

// PlaceholderName is the display name given to products missing from the catalog
func PlaceholderName(productID string) string {
	return fmt.Sprintf("Producto (ID: %s)", productID)
}

// Tally counts votes per product and ranks the products by count.
// Every product in known appears in the result, even with zero votes, and
// products seen only in records are added with a placeholder name.
// known is never modified.
func Tally(records []models.VoteRecord, known map[string]string) []models.Entry {
	counts := make(map[string]int, len(known))
	for productID := range known {
		counts[productID] = 0
	}

	// Names synthesized for this call only
	placeholders := make(map[string]string)

	for _, rec := range records {
		if _, ok := counts[rec.ProductID]; ok {
			counts[rec.ProductID]++
			continue
		}
		counts[rec.ProductID] = 1
		placeholders[rec.ProductID] = PlaceholderName(rec.ProductID)
	}

	entries := make([]models.Entry, 0, len(counts))
	for productID, count := range counts {
		entries = append(entries, models.Entry{
			ProductID: productID,
			Name:      displayName(productID, known, placeholders),
			Count:     count,
		})
	}

	// Higher count first, ties by product ID ascending
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.ProductID < b.ProductID
	})

	return entries
}

func displayName(productID string, known, placeholders map[string]string) string {
	if name, ok := known[productID]; ok {
		return name
	}
	if name, ok := placeholders[productID]; ok {
		return name
	}
	return productID
}

// Total sums the counts of a tally
func Total(entries []models.Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Count
	}
	return total
}
