/*
Package models defines the domain, request, and response types shared across
the SecureVote API.

# Domain Types

  - Voter: a registered account with eligibility and admin flags
  - Election: a titled voting window (start_date to end_date)
  - Candidate: belongs to exactly one election
  - Vote: the immutable record linking voter, candidate, and election,
    together with its integrity digest

# Lifecycle Classification

Elections derive a lifecycle state from their window and the current time:

	status := election.Status(time.Now())  // upcoming, active, or closed

The active window is inclusive on both ends. Casting is only permitted while
an election is active.

# Reason Codes

Denial reasons (ReasonNotEligible, ReasonAlreadyVoted, ...) appear in the
"reason" field of error responses so clients can render precise messages
instead of a generic failure.
*/
package models
