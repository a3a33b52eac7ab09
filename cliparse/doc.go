// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5000)
  - StoreType: file, sqlite, postgres or memory (default: file)
  - DataDir: Directory for polls.json / votes.json or the sqlite file (default: data)
  - DatabaseURL: SQL connection string (required for postgres)
  - AdminUsername, AdminPassword: Admin login (required)
  - IdentitySalt: Hash voter identities before storing them (optional)
  - TrustProxy: Read client IP from X-Forwarded-For / X-Real-IP
  - AllowedOrigins: CORS origins (default: *)
  - StaticDir: Serve a built frontend from this directory (optional)
  - SeedSamplePoll: Create a sample poll on an empty store (default: true)
  - LogLevel, LogFormat: slog level and text/json handler

# CLI Flags

	-env-file        Path to a .env file
	-p               Server port
	-t               Store type
	-data-dir        Data directory
	-d               Database URL
	-origins         Allowed CORS origins, comma-separated
	-static          Static frontend directory
	-trust-proxy     Trust proxy headers
	-seed            Seed the sample poll
	-log-level       Log level
	-log-format      Log format
	-admin-user      Admin username
	-admin-password  Admin password
	-identity-salt   Identity salt

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	STORE_TYPE       → -t
	DATA_DIR         → -data-dir
	DATABASE_URL     → -d
	ALLOWED_ORIGINS  → -origins
	STATIC_DIR       → -static
	TRUST_PROXY      → -trust-proxy
	SEED_SAMPLE_POLL → -seed
	LOG_LEVEL        → -log-level
	LOG_FORMAT       → -log-format
	ADMIN_USERNAME   → -admin-user
	ADMIN_PASSWORD   → -admin-password
	IDENTITY_SALT    → -identity-salt

CLI flags take precedence over environment variables. Variables from the
.env file (or -env-file) are loaded with godotenv and never override ones
already present in the environment.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - ADMIN_USERNAME and ADMIN_PASSWORD must be provided
  - DATABASE_URL must be provided for the postgres store
  - PORT, TRUST_PROXY, SEED_SAMPLE_POLL and LOG_LEVEL must parse

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	s, err := openStore(cfg)
	// ...
	handler := router.NewRouter(poll.NewRepository(s), cfg, metrics.New())
*/
package cliparse
