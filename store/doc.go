// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store appends and reads vote records through a pluggable backend.

# Client

Client is the only type handlers use:

	backend, err := store.Open(ctx, cfg)
	client := store.NewClient(backend)

	conf, err := client.SubmitVote(ctx, "p1")
	votes, err := client.FetchAllVotes(ctx)

Every failure is a *StoreError carrying the backend message:

	Error al guardar el voto: <backend error>
	Error al cargar los votos: <backend error>

A backend that panics is recovered and reported the same way.
FetchAllVotes on a collection that does not exist yet returns an empty slice
and a nil error, so callers can tell "no votes yet" from "read failed".

# Backends

Backend is an append-only keyed collection:

  - MemoryBackend: process memory, for tests and demos
  - SQLBackend: vote table in SQLite or PostgreSQL
  - RedisBackend: one hash per collection
  - FirebaseBackend: children of a Realtime Database path

Keys are unique and increase with creation order: UUIDv7 for memory, SQL and
Redis, push IDs for firebase. ReadAll returns votes sorted by key.
*/
package store
