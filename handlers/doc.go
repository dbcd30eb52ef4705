// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the product vote server.

# Handler Types

Each handler is a struct holding the shared Deps:

  - WidgetHandler: Server-rendered widget page and form submit
  - VoteHandler: Vote submission and listing
  - ResultsHandler: Ranked results, catalog and live updates
  - ContentHandler: Sample content cards

Handlers are created via constructor functions:

	voteHandler := handlers.NewVoteHandler(deps)

# Voting Flow

	POST /votes   → SubmitVote (returns key and fresh results)
	GET  /results → GetResults (every catalog product, ranked)

After an accepted vote the votes are read again and tallied, and the new
results are broadcast to live subscribers. The vote event is published in
the background once the handler returns. Only the write itself can fail a
submit; a failed reload omits the results.

Votes and Catalog are required in Deps. A nil Metrics or Publisher is
replaced by WithDefaults, and a nil Hub disables live results.

Store failures are reported as {success:false, message} with status 502.

# Widget Page

	GET  /  → Page
	POST /  → Submit (redirects back with a notice)

The page shows the vote form, the results table or the no-votes message,
and up to three content cards. Content failures only hide the cards.
*/
package handlers
