package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/securevote/securevote/cliparse"
	"github.com/securevote/securevote/middleware"
	"github.com/securevote/securevote/models"
)

type CandidateHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCandidateHandler(db *sql.DB, cfg cliparse.Config) *CandidateHandler {
	return &CandidateHandler{db: db, cfg: cfg}
}

// AddCandidate handles POST /admin/elections/{id}/candidates
func (h *CandidateHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	electionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || electionID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id must be a positive integer")
		return
	}

	if _, ok := requireAdmin(w, r, h.db, h.cfg); !ok {
		return
	}

	var req models.CandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.FullName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "full_name is required")
		return
	}

	var exists bool
	err = h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM election WHERE election_id = $1)`, electionID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query election", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.DenialResponse(w, http.StatusNotFound, models.ReasonElectionNotFound, "Election not found")
		return
	}

	var candidateID int64
	err = h.db.QueryRow(`
		INSERT INTO candidate (election_id, full_name, party, bio)
		VALUES ($1, $2, $3, $4)
		RETURNING candidate_id
	`, electionID, req.FullName, req.Party, req.Bio).Scan(&candidateID)
	if err != nil {
		slog.Error("failed to insert candidate", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add candidate")
		return
	}

	slog.Info("candidate added", "candidate_id", candidateID, "election_id", electionID)

	middleware.JSONResponse(w, http.StatusCreated, models.Candidate{
		CandidateID: candidateID,
		ElectionID:  electionID,
		FullName:    req.FullName,
		Party:       req.Party,
		Bio:         req.Bio,
	})
}

// UpdateCandidate handles PUT /admin/candidates/{id}
func (h *CandidateHandler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || candidateID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate id must be a positive integer")
		return
	}

	if _, ok := requireAdmin(w, r, h.db, h.cfg); !ok {
		return
	}

	var req models.CandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.FullName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "full_name is required")
		return
	}

	var electionID int64
	err = h.db.QueryRow(`SELECT election_id FROM candidate WHERE candidate_id = $1`, candidateID).Scan(&electionID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		slog.Error("failed to query candidate", "error", err, "candidate_id", candidateID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = h.db.Exec(`
		UPDATE candidate SET full_name = $1, party = $2, bio = $3
		WHERE candidate_id = $4
	`, req.FullName, req.Party, req.Bio, candidateID)
	if err != nil {
		slog.Error("failed to update candidate", "error", err, "candidate_id", candidateID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update candidate")
		return
	}

	slog.Info("candidate updated", "candidate_id", candidateID)

	middleware.JSONResponse(w, http.StatusOK, models.Candidate{
		CandidateID: candidateID,
		ElectionID:  electionID,
		FullName:    req.FullName,
		Party:       req.Party,
		Bio:         req.Bio,
	})
}

// DeleteCandidate handles DELETE /admin/candidates/{id}
// A candidate referenced by votes cannot be deleted; the vote rows are the
// permanent record.
func (h *CandidateHandler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || candidateID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate id must be a positive integer")
		return
	}

	if _, ok := requireAdmin(w, r, h.db, h.cfg); !ok {
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var hasVotes bool
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM vote WHERE candidate_id = $1)`, candidateID).Scan(&hasVotes)
	if err != nil {
		slog.Error("failed to query votes for candidate", "error", err, "candidate_id", candidateID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if hasVotes {
		middleware.DenialResponse(w, http.StatusConflict, models.ReasonHasVotes,
			"Cannot delete a candidate that has votes")
		return
	}

	res, err := tx.Exec(`DELETE FROM candidate WHERE candidate_id = $1`, candidateID)
	if err != nil {
		slog.Error("failed to delete candidate", "error", err, "candidate_id", candidateID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete candidate")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete candidate")
		return
	}

	slog.Info("candidate deleted", "candidate_id", candidateID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Candidate deleted successfully",
	})
}
