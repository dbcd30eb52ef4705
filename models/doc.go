// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - VoteRecord: one vote, {productID, timestamp} as stored in the votes collection
  - StoredVote: a VoteRecord plus its store-generated key
  - Product / Catalog: the ordered (value, label) pairs of the product selector
  - Entry: one tally row (product_id, name, count)
  - Card: one sample content item (title, author, genre, content)

# Catalog

Catalogs are parsed from configuration:

	catalog, err := models.ParseCatalog("p1:Widget,p2:Gadget")
	names := catalog.Names() // map[string]string{"p1": "Widget", "p2": "Gadget"}

Names returns a new map on every call, so callers may not share it by accident.

# Envelopes

Store-backed endpoints answer with a {success, ...} envelope:

  - SubmitVoteResponse: success, message, key, results
  - VotesResponse: success, data
  - ResultsResponse: success, data, total
  - ContentResponse: success, data
  - FailureResponse: success=false, message

Malformed requests use ErrorResponse (error, message).

# Timestamps

Votes are stamped in UTC with millisecond precision:

	2025-06-01T12:30:00.000Z
*/
package models
