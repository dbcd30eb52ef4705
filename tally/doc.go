// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally ranks products by the number of votes they received.

# Usage

	entries := tally.Tally(records, catalog.Names())

Tally is a pure function. It performs no I/O and never returns an error.

# Algorithm

 1. Every catalog product starts at 0, so products without votes still appear.
 2. Each record increments its product. A product not in the catalog is
    added with count 1 and named "Producto (ID: <id>)" for this call only.
 3. Entries are sorted by count descending, then by product ID ascending.
 4. Names come from the catalog, then the placeholder, then the raw ID.

The caller's catalog map is never written to.
*/
package tally
