/*
Package handlers contains HTTP request handlers for the SecureVote API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AccountHandler: registration, login, current voter
  - ElectionHandler: voter-facing election browsing, admin election CRUD
  - CandidateHandler: admin candidate CRUD
  - VoteHandler: vote casting, public verification, admin votes projection
  - VoterHandler: admin voter list and flag updates
  - DashboardHandler: admin statistics

Handlers are created via constructor functions that accept *sql.DB and Config:

	voteHandler := handlers.NewVoteHandler(db, cfg)

# Casting Flow

	POST /register → Register
	POST /login    → Login (returns bearer token)
	GET  /elections              → ListElections (ongoing + upcoming)
	GET  /elections/{id}         → GetElection (candidates + lifecycle state)
	POST /elections/{id}/votes   → CastVote

CastVote re-runs every guard check (eligibility from the voter row, election
exists, election active, no prior vote, candidate belongs to election) inside
the same transaction as the insert. The UNIQUE(voter_id, election_id)
constraint settles concurrent casts: one row, one success, the loser gets an
already_voted conflict.

# Verification Flow

	GET /votes/{id}/verify → VerifyVote (no authentication)

Recomputes the digest from the stored row and reports verified, tampered, or
not_found. Tampered is a normal outcome, not a server error.

# Admin Surface

All /admin routes re-read the caller's is_admin flag from the voter row.
Election deletion refuses when votes exist (has_votes) and otherwise removes
the election and its candidates in one transaction.
*/
package handlers
