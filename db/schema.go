package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, databaseType string) error {
	ddl := schemaSQLite
	if databaseType == "postgres" {
		ddl = schemaPostgres
	}

	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// IsUniqueViolation reports whether err is a storage-level uniqueness
// constraint failure. This is the final arbiter for races the read-side
// checks cannot close: two concurrent casts for the same (voter, election)
// resolve as one insert and one unique violation.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	// modernc.org/sqlite reports constraint failures in the error text
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

const schemaPostgres = `
-- Voters
CREATE TABLE IF NOT EXISTS voter (
    voter_id BIGSERIAL PRIMARY KEY,
    full_name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    hashed_password TEXT NOT NULL,
    date_of_birth TEXT NOT NULL DEFAULT '',
    is_eligible BOOLEAN NOT NULL DEFAULT TRUE,
    is_admin BOOLEAN NOT NULL DEFAULT FALSE,
    registered_at TIMESTAMP NOT NULL
);

-- Elections
CREATE TABLE IF NOT EXISTS election (
    election_id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP NOT NULL
);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    candidate_id BIGSERIAL PRIMARY KEY,
    election_id BIGINT NOT NULL REFERENCES election(election_id) ON DELETE CASCADE,
    full_name TEXT NOT NULL,
    party TEXT NOT NULL DEFAULT '',
    bio TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_candidate_election_id ON candidate(election_id);

-- Votes: immutable once written, no cascade from election
CREATE TABLE IF NOT EXISTS vote (
    vote_id BIGSERIAL PRIMARY KEY,
    voter_id BIGINT NOT NULL REFERENCES voter(voter_id),
    candidate_id BIGINT NOT NULL REFERENCES candidate(candidate_id),
    election_id BIGINT NOT NULL REFERENCES election(election_id),
    hash_reference TEXT NOT NULL,
    voted_at TIMESTAMP NOT NULL,
    UNIQUE (voter_id, election_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_election_id ON vote(election_id);
CREATE INDEX IF NOT EXISTS idx_vote_voted_at ON vote(voted_at);
`

const schemaSQLite = `
-- Voters
CREATE TABLE IF NOT EXISTS voter (
    voter_id INTEGER PRIMARY KEY AUTOINCREMENT,
    full_name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    hashed_password TEXT NOT NULL,
    date_of_birth TEXT NOT NULL DEFAULT '',
    is_eligible BOOLEAN NOT NULL DEFAULT 1,
    is_admin BOOLEAN NOT NULL DEFAULT 0,
    registered_at TIMESTAMP NOT NULL
);

-- Elections
CREATE TABLE IF NOT EXISTS election (
    election_id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP NOT NULL
);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    candidate_id INTEGER PRIMARY KEY AUTOINCREMENT,
    election_id INTEGER NOT NULL REFERENCES election(election_id) ON DELETE CASCADE,
    full_name TEXT NOT NULL,
    party TEXT NOT NULL DEFAULT '',
    bio TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_candidate_election_id ON candidate(election_id);

-- Votes: immutable once written, no cascade from election
CREATE TABLE IF NOT EXISTS vote (
    vote_id INTEGER PRIMARY KEY AUTOINCREMENT,
    voter_id INTEGER NOT NULL REFERENCES voter(voter_id),
    candidate_id INTEGER NOT NULL REFERENCES candidate(candidate_id),
    election_id INTEGER NOT NULL REFERENCES election(election_id),
    hash_reference TEXT NOT NULL,
    voted_at TIMESTAMP NOT NULL,
    UNIQUE (voter_id, election_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_election_id ON vote(election_id);
CREATE INDEX IF NOT EXISTS idx_vote_voted_at ON vote(voted_at);
`
