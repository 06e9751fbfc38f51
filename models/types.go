package models

import "time"

// Election lifecycle states
const (
	StatusUpcoming = "upcoming"
	StatusActive   = "active"
	StatusClosed   = "closed"
)

// Denial and outcome reason codes, returned in the "reason" field of
// error responses so clients can render a precise message.
const (
	ReasonNotEligible       = "not_eligible"
	ReasonElectionNotFound  = "election_not_found"
	ReasonElectionNotActive = "election_not_active"
	ReasonAlreadyVoted      = "already_voted"
	ReasonInvalidCandidate  = "invalid_candidate"
	ReasonHasVotes          = "has_votes"
	ReasonInvalidVoteID     = "invalid_vote_id"
)

// Verification outcomes
const (
	VerifyVerified = "verified"
	VerifyTampered = "tampered"
	VerifyNotFound = "not_found"
)

// Request types

type RegisterRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"date_of_birth"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CastVoteRequest struct {
	CandidateID int64 `json:"candidate_id"`
}

type ElectionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type CandidateRequest struct {
	FullName string `json:"full_name"`
	Party    string `json:"party"`
	Bio      string `json:"bio"`
}

type UpdateVoterFlagsRequest struct {
	IsEligible *bool `json:"is_eligible"`
	IsAdmin    *bool `json:"is_admin"`
}

// Response types

type RegisterResponse struct {
	VoterID int64 `json:"voter_id"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Voter Voter  `json:"voter"`
}

type CastVoteResponse struct {
	VoteID        int64     `json:"vote_id"`
	HashReference string    `json:"hash_reference"`
	VotedAt       time.Time `json:"voted_at"`
}

type VerifyVoteResponse struct {
	Status         string     `json:"status"`
	VoteID         int64      `json:"vote_id,omitempty"`
	CandidateName  string     `json:"candidate_name,omitempty"`
	ElectionTitle  string     `json:"election_title,omitempty"`
	VotedAt        *time.Time `json:"voted_at,omitempty"`
	StoredDigest   string     `json:"stored_digest,omitempty"`
	ComputedDigest string     `json:"computed_digest,omitempty"`
}

type ElectionResponse struct {
	Election
	Status   string `json:"status"`
	HasVoted bool   `json:"has_voted"`
}

type ElectionDetailResponse struct {
	Election
	Status     string      `json:"status"`
	HasVoted   bool        `json:"has_voted"`
	Candidates []Candidate `json:"candidates"`
}

type AdminElectionRow struct {
	Election
	CandidateCount int `json:"candidate_count"`
	VoteCount      int `json:"vote_count"`
}

type AdminVoteRow struct {
	VoteID        int64     `json:"vote_id"`
	VotedAt       time.Time `json:"voted_at"`
	VotedAgo      string    `json:"voted_ago"`
	HashReference string    `json:"hash_reference"`
	VoterName     string    `json:"voter_name"`
	VoterEmail    string    `json:"voter_email"`
	CandidateName string    `json:"candidate_name"`
	ElectionTitle string    `json:"election_title"`
}

type DashboardStats struct {
	Voters       int             `json:"voters"`
	Elections    int             `json:"elections"`
	Votes        int             `json:"votes"`
	TopElections []ElectionTally `json:"top_elections"`
}

type ElectionTally struct {
	Title     string `json:"title"`
	VoteCount int    `json:"vote_count"`
}

// Domain types

type Voter struct {
	VoterID      int64     `json:"voter_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	DateOfBirth  string    `json:"date_of_birth"`
	IsEligible   bool      `json:"is_eligible"`
	IsAdmin      bool      `json:"is_admin"`
	RegisteredAt time.Time `json:"registered_at"`
}

type Election struct {
	ElectionID  int64     `json:"election_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type Candidate struct {
	CandidateID int64  `json:"candidate_id"`
	ElectionID  int64  `json:"election_id"`
	FullName    string `json:"full_name"`
	Party       string `json:"party"`
	Bio         string `json:"bio"`
}

type Vote struct {
	VoteID        int64     `json:"vote_id"`
	VoterID       int64     `json:"voter_id"`
	CandidateID   int64     `json:"candidate_id"`
	ElectionID    int64     `json:"election_id"`
	HashReference string    `json:"hash_reference"`
	VotedAt       time.Time `json:"voted_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}
