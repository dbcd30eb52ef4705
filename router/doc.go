// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the product vote server.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(deps)

# Endpoints

Health:

	GET /health

Widget:

	GET  /  - Vote form, results and content cards
	POST /  - Form submit

Votes:

	GET  /products - Product catalog
	POST /votes    - Submit a vote
	GET  /votes    - All stored votes

Results:

	GET /results    - Ranked vote counts
	GET /ws/results - Live results over websocket

Other:

	GET /content - Sample content cards
	GET /metrics - Prometheus metrics
*/
package router
