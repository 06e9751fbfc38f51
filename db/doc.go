/*
Package db handles database schema creation and driver error classification.

# Schema Creation

CreateSchema initializes all required tables for the configured dialect:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
Two DDL variants exist because auto-increment keys and boolean defaults
differ between PostgreSQL and SQLite; everything else is shared SQL.

# Tables

  - voter: accounts with eligibility and admin flags
  - election: voting windows (start_date, end_date)
  - candidate: cascade-deleted with its election
  - vote: the permanent record; UNIQUE(voter_id, election_id) enforces the
    one-vote-per-election invariant at the storage level

Votes deliberately do not cascade from election: an election with votes
cannot be deleted (the handlers enforce this inside a transaction), so vote
rows are never orphaned or silently removed.

# Unique Violations

IsUniqueViolation identifies constraint failures from either driver
(pq error code 23505, or the SQLite error text) so handlers can map a lost
insert race to a precise conflict response.
*/
package db
