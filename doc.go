// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the product vote server.

The server backs a small voting widget: a visitor picks a product from a
configured catalog, submits a vote, and sees the ranked vote counts next to
a few sample content cards fetched from a public demo API.

# Starting the Server

Configuration comes from CLI flags, the environment or a .env file:

	PRODUCTS="p1:Widget,p2:Gadget" go run .

Or with flags:

	go run . -p 3318 -b sqlite -d "file:votes.db" -products "p1:Widget,p2:Gadget"

# Configuration

Vote store settings:

  - VOTE_BACKEND (-b): memory, sqlite, postgres, redis or firebase (default: sqlite)
  - DATABASE_URL (-d): sqlite file or PostgreSQL connection string
  - REDIS_URL (-redis-url): required for the redis backend
  - FIREBASE_DATABASE_URL (-firebase-url): required for the firebase backend
  - GOOGLE_APPLICATION_CREDENTIALS (-firebase-credentials): service account key

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - PRODUCTS (-products): catalog as value:label pairs
  - CONTENT_API_URL (-content-url): sample content source
  - KAFKA_BROKERS (-kafka-brokers): publish accepted votes when set

# Architecture

  - store: vote records and the storage backends
  - tally: ranking of vote records against the catalog
  - handlers: HTTP request handlers (widget page, votes, results, content)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Records, catalog and response types
  - pubsub: live result subscribers over websocket
  - event: vote events published to Kafka
  - metrics: Prometheus collectors
  - content: sample content client
  - db: SQL schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
