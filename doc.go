// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quick Poll API server.

Quick Poll is a small single-choice polling service. An admin creates polls
with two to five options; anyone can vote once per poll and watch the live
tally. Voters are anonymous and identified by client address and
User-Agent.

# Starting the Server

The server requires admin credentials from the environment or CLI flags:

	ADMIN_USERNAME=admin ADMIN_PASSWORD=secret go run .

Or with flags:

	go run . -p 5000 -t sqlite -admin-user admin -admin-password secret

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - ADMIN_USERNAME (-admin-user), ADMIN_PASSWORD (-admin-password)

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - STORE_TYPE (-t): file, sqlite, postgres or memory (default: file)
  - DATA_DIR (-data-dir): Data directory (default: data)
  - DATABASE_URL (-d): Required for postgres
  - IDENTITY_SALT, TRUST_PROXY, ALLOWED_ORIGINS, STATIC_DIR,
    SEED_SAMPLE_POLL, LOG_LEVEL, LOG_FORMAT

See package cliparse for the full list.

# Storage

The default file store keeps data/polls.json and data/votes.json, replacing
both atomically on every change. The SQL store keeps the same two JSON
documents in a table on SQLite or PostgreSQL. All writes are serialized
in-process, so run a single server instance per data set.

# Architecture

  - handlers: HTTP request handlers (polls, results, voting, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin guard, JSON helpers
  - poll: Poll validation, repository and tallies
  - ledger: One vote per identity per poll
  - store: File, SQL and in-memory persistence
  - auth: Voter identity and admin credential checks
  - metrics: Prometheus collectors
  - models: Domain and request/response types
  - db: SQL connection and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
