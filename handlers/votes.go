package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/securevote/securevote/cliparse"
	dbutil "github.com/securevote/securevote/db"
	"github.com/securevote/securevote/integrity"
	"github.com/securevote/securevote/middleware"
	"github.com/securevote/securevote/models"
)

type VoteHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{db: db, cfg: cfg}
}

// CastVote handles POST /elections/{id}/votes
//
// All guard checks run inside the same transaction as the insert. The
// read-side duplicate check is an early exit only; the UNIQUE(voter_id,
// election_id) constraint is what actually decides a race between two
// concurrent casts.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	electionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || electionID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id must be a positive integer")
		return
	}

	claims, ok := requireVoter(w, r, h.cfg)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CandidateID <= 0 {
		middleware.DenialResponse(w, http.StatusBadRequest, models.ReasonInvalidCandidate,
			"You must select a candidate to vote")
		return
	}

	now := time.Now()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Eligibility comes from the voter row, not the session token
	var isEligible bool
	err = tx.QueryRow(`SELECT is_eligible FROM voter WHERE voter_id = $1`, claims.VoterID).Scan(&isEligible)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session token")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err, "voter_id", claims.VoterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !isEligible {
		middleware.DenialResponse(w, http.StatusForbidden, models.ReasonNotEligible,
			"You are not eligible to vote")
		return
	}

	var start, end time.Time
	err = tx.QueryRow(`SELECT start_date, end_date FROM election WHERE election_id = $1`, electionID).Scan(&start, &end)
	if err == sql.ErrNoRows {
		middleware.DenialResponse(w, http.StatusNotFound, models.ReasonElectionNotFound,
			"Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status := models.ClassifyElection(now, start, end); status != models.StatusActive {
		middleware.DenialResponse(w, http.StatusConflict, models.ReasonElectionNotActive,
			"Election is "+status+", not open for voting")
		return
	}

	var candidateOK bool
	err = tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM candidate WHERE candidate_id = $1 AND election_id = $2)
	`, req.CandidateID, electionID).Scan(&candidateOK)
	if err != nil {
		slog.Error("failed to query candidate", "error", err, "candidate_id", req.CandidateID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !candidateOK {
		middleware.DenialResponse(w, http.StatusBadRequest, models.ReasonInvalidCandidate,
			"Candidate does not belong to this election")
		return
	}

	var alreadyVoted bool
	err = tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM vote WHERE voter_id = $1 AND election_id = $2)
	`, claims.VoterID, electionID).Scan(&alreadyVoted)
	if err != nil {
		slog.Error("failed to query existing vote", "error", err, "voter_id", claims.VoterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if alreadyVoted {
		middleware.DenialResponse(w, http.StatusConflict, models.ReasonAlreadyVoted,
			"You have already voted in this election")
		return
	}

	digest := integrity.VoteDigest(claims.VoterID, electionID, req.CandidateID)

	var voteID int64
	err = tx.QueryRow(`
		INSERT INTO vote (voter_id, candidate_id, election_id, hash_reference, voted_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING vote_id
	`, claims.VoterID, req.CandidateID, electionID, digest, now).Scan(&voteID)

	if err != nil {
		// The constraint resolves the check-then-act race: the loser of two
		// concurrent casts lands here.
		if dbutil.IsUniqueViolation(err) {
			middleware.DenialResponse(w, http.StatusConflict, models.ReasonAlreadyVoted,
				"You have already voted in this election")
			return
		}
		slog.Error("failed to insert vote", "error", err, "voter_id", claims.VoterID, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	slog.Info("vote cast", "vote_id", voteID, "election_id", electionID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID:        voteID,
		HashReference: digest,
		VotedAt:       now,
	})
}

// VerifyVote handles GET /votes/{id}/verify
//
// Public and unauthenticated: anyone holding a vote ID can audit that the
// stored record still matches its digest. The digest is recomputed from the
// row's own foreign keys, never read back from the caller.
func (h *VoteHandler) VerifyVote(w http.ResponseWriter, r *http.Request) {
	voteID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || voteID <= 0 {
		middleware.DenialResponse(w, http.StatusBadRequest, models.ReasonInvalidVoteID,
			"Vote ID must be a positive integer")
		return
	}

	var vote models.Vote
	var candidateName, electionTitle string
	err = h.db.QueryRow(`
		SELECT v.vote_id, v.voter_id, v.candidate_id, v.election_id, v.hash_reference, v.voted_at,
		       c.full_name, e.title
		FROM vote v
		JOIN candidate c ON v.candidate_id = c.candidate_id
		JOIN election e ON v.election_id = e.election_id
		WHERE v.vote_id = $1
	`, voteID).Scan(
		&vote.VoteID, &vote.VoterID, &vote.CandidateID, &vote.ElectionID,
		&vote.HashReference, &vote.VotedAt, &candidateName, &electionTitle,
	)

	if err == sql.ErrNoRows {
		middleware.JSONResponse(w, http.StatusNotFound, models.VerifyVoteResponse{
			Status: models.VerifyNotFound,
		})
		return
	}
	if err != nil {
		slog.Error("failed to query vote", "error", err, "vote_id", voteID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	recomputed := integrity.VoteDigest(vote.VoterID, vote.ElectionID, vote.CandidateID)

	resp := models.VerifyVoteResponse{
		VoteID:        vote.VoteID,
		CandidateName: candidateName,
		ElectionTitle: electionTitle,
		VotedAt:       &vote.VotedAt,
	}

	if recomputed == vote.HashReference {
		resp.Status = models.VerifyVerified
	} else {
		// A valid outcome, not an error: the row was altered after writing
		resp.Status = models.VerifyTampered
		resp.StoredDigest = vote.HashReference
		resp.ComputedDigest = recomputed
		slog.Warn("vote integrity mismatch", "vote_id", vote.VoteID)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ListVotes handles GET /admin/votes
func (h *VoteHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.db, h.cfg); !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT v.vote_id, v.voted_at, v.hash_reference,
		       vtr.full_name, vtr.email,
		       c.full_name,
		       e.title
		FROM vote v
		JOIN voter vtr ON v.voter_id = vtr.voter_id
		JOIN candidate c ON v.candidate_id = c.candidate_id
		JOIN election e ON v.election_id = e.election_id
		ORDER BY v.voted_at DESC
	`)
	if err != nil {
		slog.Error("failed to query votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	votes := []models.AdminVoteRow{}
	for rows.Next() {
		var row models.AdminVoteRow
		if err := rows.Scan(&row.VoteID, &row.VotedAt, &row.HashReference,
			&row.VoterName, &row.VoterEmail, &row.CandidateName, &row.ElectionTitle); err != nil {
			slog.Error("failed to scan vote row", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		row.VotedAgo = humanize.Time(row.VotedAt)
		votes = append(votes, row)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate vote rows", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, votes)
}
