/*
Package main provides the entry point for the SecureVote API server.

SecureVote is an online voting service where registered, eligible voters
cast exactly one vote per election and anyone can later verify a recorded
vote against its integrity digest by vote ID.

# Starting the Server

The server requires a session signing secret, via environment or .env file:

	JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 8080 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - JWT_SECRET (-jwt-secret): secret signing session tokens

Optional settings:

  - PORT (-p): server port (default: 8080)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): connection string or file path (default: securevote.db)
  - ADMIN_EMAIL (-admin-email): email bootstrapped as administrator

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (accounts, elections, candidates, votes)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: domain types and election lifecycle classification
  - integrity: vote digest computation
  - auth: password hashing and session tokens
  - db: schema creation and driver error classification
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
