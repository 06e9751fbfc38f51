package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/securevote/securevote/cliparse"
	"github.com/securevote/securevote/middleware"
	"github.com/securevote/securevote/models"
)

type ElectionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewElectionHandler(db *sql.DB, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{db: db, cfg: cfg}
}

// ListElections handles GET /elections
// Returns ongoing and upcoming elections for the logged-in voter, with
// lifecycle state and whether they already voted in each.
func (h *ElectionHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireVoter(w, r, h.cfg)
	if !ok {
		return
	}

	now := time.Now()

	rows, err := h.db.Query(`
		SELECT election_id, title, description, start_date, end_date
		FROM election
		WHERE end_date >= $1
		ORDER BY start_date ASC
	`, now)
	if err != nil {
		slog.Error("failed to query elections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	elections := []models.ElectionResponse{}
	for rows.Next() {
		var e models.Election
		if err := rows.Scan(&e.ElectionID, &e.Title, &e.Description, &e.StartDate, &e.EndDate); err != nil {
			slog.Error("failed to scan election", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		elections = append(elections, models.ElectionResponse{
			Election: e,
			Status:   e.Status(now),
		})
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate elections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	voted, err := h.votedElections(claims.VoterID)
	if err != nil {
		slog.Error("failed to query voted elections", "error", err, "voter_id", claims.VoterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	for i := range elections {
		elections[i].HasVoted = voted[elections[i].ElectionID]
	}

	middleware.JSONResponse(w, http.StatusOK, elections)
}

// GetElection handles GET /elections/{id}
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	electionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || electionID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id must be a positive integer")
		return
	}

	claims, ok := requireVoter(w, r, h.cfg)
	if !ok {
		return
	}

	var e models.Election
	err = h.db.QueryRow(`
		SELECT election_id, title, description, start_date, end_date
		FROM election WHERE election_id = $1
	`, electionID).Scan(&e.ElectionID, &e.Title, &e.Description, &e.StartDate, &e.EndDate)

	if err == sql.ErrNoRows {
		middleware.DenialResponse(w, http.StatusNotFound, models.ReasonElectionNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT candidate_id, election_id, full_name, party, bio
		FROM candidate WHERE election_id = $1
		ORDER BY candidate_id
	`, electionID)
	if err != nil {
		slog.Error("failed to query candidates", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.CandidateID, &c.ElectionID, &c.FullName, &c.Party, &c.Bio); err != nil {
			slog.Error("failed to scan candidate", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var hasVoted bool
	err = h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM vote WHERE voter_id = $1 AND election_id = $2)
	`, claims.VoterID, electionID).Scan(&hasVoted)
	if err != nil {
		slog.Error("failed to query vote existence", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElectionDetailResponse{
		Election:   e,
		Status:     e.Status(time.Now()),
		HasVoted:   hasVoted,
		Candidates: candidates,
	})
}

// CreateElection handles POST /admin/elections
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.db, h.cfg); !ok {
		return
	}

	req, ok := parseElectionRequest(w, r)
	if !ok {
		return
	}

	var e models.Election
	err := h.db.QueryRow(`
		INSERT INTO election (title, description, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING election_id
	`, req.Title, req.Description, req.StartDate, req.EndDate).Scan(&e.ElectionID)
	if err != nil {
		slog.Error("failed to insert election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	e.Title, e.Description, e.StartDate, e.EndDate = req.Title, req.Description, req.StartDate, req.EndDate

	slog.Info("election created", "election_id", e.ElectionID, "title", e.Title)

	middleware.JSONResponse(w, http.StatusCreated, e)
}

// UpdateElection handles PUT /admin/elections/{id}
func (h *ElectionHandler) UpdateElection(w http.ResponseWriter, r *http.Request) {
	electionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || electionID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id must be a positive integer")
		return
	}

	if _, ok := requireAdmin(w, r, h.db, h.cfg); !ok {
		return
	}

	req, ok := parseElectionRequest(w, r)
	if !ok {
		return
	}

	res, err := h.db.Exec(`
		UPDATE election SET title = $1, description = $2, start_date = $3, end_date = $4
		WHERE election_id = $5
	`, req.Title, req.Description, req.StartDate, req.EndDate, electionID)
	if err != nil {
		slog.Error("failed to update election", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update election")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.DenialResponse(w, http.StatusNotFound, models.ReasonElectionNotFound, "Election not found")
		return
	}

	slog.Info("election updated", "election_id", electionID)

	middleware.JSONResponse(w, http.StatusOK, models.Election{
		ElectionID:  electionID,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
}

// ListElectionsAdmin handles GET /admin/elections
func (h *ElectionHandler) ListElectionsAdmin(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.db, h.cfg); !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT e.election_id, e.title, e.description, e.start_date, e.end_date,
		       (SELECT COUNT(*) FROM candidate WHERE election_id = e.election_id),
		       (SELECT COUNT(*) FROM vote WHERE election_id = e.election_id)
		FROM election e
		ORDER BY e.start_date DESC
	`)
	if err != nil {
		slog.Error("failed to query elections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	elections := []models.AdminElectionRow{}
	for rows.Next() {
		var row models.AdminElectionRow
		if err := rows.Scan(&row.ElectionID, &row.Title, &row.Description,
			&row.StartDate, &row.EndDate, &row.CandidateCount, &row.VoteCount); err != nil {
			slog.Error("failed to scan election row", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		elections = append(elections, row)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate election rows", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, elections)
}

// DeleteElection handles DELETE /admin/elections/{id}
//
// The has-votes check and the delete share one transaction so a cast racing
// the delete cannot leave a vote pointing at a missing election.
func (h *ElectionHandler) DeleteElection(w http.ResponseWriter, r *http.Request) {
	electionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || electionID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id must be a positive integer")
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
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM vote WHERE election_id = $1)`, electionID).Scan(&hasVotes)
	if err != nil {
		slog.Error("failed to query votes for election", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if hasVotes {
		middleware.DenialResponse(w, http.StatusConflict, models.ReasonHasVotes,
			"Cannot delete an election that has votes")
		return
	}

	if _, err := tx.Exec(`DELETE FROM candidate WHERE election_id = $1`, electionID); err != nil {
		slog.Error("failed to delete candidates", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete election")
		return
	}

	res, err := tx.Exec(`DELETE FROM election WHERE election_id = $1`, electionID)
	if err != nil {
		slog.Error("failed to delete election", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete election")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.DenialResponse(w, http.StatusNotFound, models.ReasonElectionNotFound, "Election not found")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete election")
		return
	}

	slog.Info("election deleted", "election_id", electionID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Election and its candidates have been deleted",
	})
}

// parseElectionRequest validates the shared create/edit payload. start < end
// is enforced on both paths.
func parseElectionRequest(w http.ResponseWriter, r *http.Request) (models.ElectionRequest, bool) {
	var req models.ElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return req, false
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return req, false
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start_date and end_date are required")
		return req, false
	}
	if !req.StartDate.Before(req.EndDate) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "End date must be after the start date")
		return req, false
	}

	return req, true
}

func (h *ElectionHandler) votedElections(voterID int64) (map[int64]bool, error) {
	rows, err := h.db.Query(`SELECT election_id FROM vote WHERE voter_id = $1`, voterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	voted := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		voted[id] = true
	}
	return voted, rows.Err()
}
