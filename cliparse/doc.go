// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file can be loaded into the environment first:

	if err := cliparse.LoadEnvFile(".env"); err != nil {
		log.Fatal(err)
	}

# CLI Flags

	-p                    Server port (default: 3318)
	-b                    Vote store backend (default: sqlite)
	-d                    Database URL (sqlite or postgres)
	-redis-url            Redis URL
	-firebase-url         Firebase Realtime Database URL
	-firebase-credentials Service account key file
	-products             Product catalog, value:label pairs
	-content-url          Sample content API URL
	-content-timeout      Sample content request timeout (default: 3s)
	-kafka-brokers        Kafka brokers for vote events
	-kafka-topic          Kafka topic (default: votes)

# Environment Variables

Flags fall back to environment variables:

	PORT                           → -p
	VOTE_BACKEND                   → -b
	DATABASE_URL                   → -d
	REDIS_URL                      → -redis-url
	FIREBASE_DATABASE_URL          → -firebase-url
	GOOGLE_APPLICATION_CREDENTIALS → -firebase-credentials
	PRODUCTS                       → -products
	CONTENT_API_URL                → -content-url
	CONTENT_API_TIMEOUT            → -content-timeout
	KAFKA_BROKERS                  → -kafka-brokers
	KAFKA_TOPIC                    → -kafka-topic

CLI flags take precedence over environment variables, and variables already
in the environment take precedence over the .env file.

# Validation

ParseFlags returns an error if:

  - the backend is not one of memory, sqlite, postgres, redis, firebase
  - postgres has no DATABASE_URL, redis no REDIS_URL, firebase no FIREBASE_DATABASE_URL
  - PRODUCTS has an empty or duplicate value
  - PORT or CONTENT_API_TIMEOUT do not parse
*/
package cliparse
