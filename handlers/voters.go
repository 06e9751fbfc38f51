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

type VoterHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoterHandler(db *sql.DB, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{db: db, cfg: cfg}
}

// ListVoters handles GET /admin/voters
func (h *VoterHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.db, h.cfg); !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT voter_id, full_name, email, date_of_birth, is_eligible, is_admin, registered_at
		FROM voter
		ORDER BY registered_at DESC
	`)
	if err != nil {
		slog.Error("failed to query voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	voters := []models.Voter{}
	for rows.Next() {
		var v models.Voter
		if err := rows.Scan(&v.VoterID, &v.FullName, &v.Email, &v.DateOfBirth,
			&v.IsEligible, &v.IsAdmin, &v.RegisteredAt); err != nil {
			slog.Error("failed to scan voter", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		voters = append(voters, v)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, voters)
}

// UpdateVoterFlags handles PATCH /admin/voters/{id}
// Eligibility and admin flags are the only mutable voter fields, and only
// an administrator may change them.
func (h *VoterHandler) UpdateVoterFlags(w http.ResponseWriter, r *http.Request) {
	voterID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || voterID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter id must be a positive integer")
		return
	}

	if _, ok := requireAdmin(w, r, h.db, h.cfg); !ok {
		return
	}

	var req models.UpdateVoterFlagsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.IsEligible == nil && req.IsAdmin == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "is_eligible or is_admin is required")
		return
	}

	var voter models.Voter
	err = h.db.QueryRow(`
		SELECT voter_id, full_name, email, date_of_birth, is_eligible, is_admin, registered_at
		FROM voter WHERE voter_id = $1
	`, voterID).Scan(&voter.VoterID, &voter.FullName, &voter.Email, &voter.DateOfBirth,
		&voter.IsEligible, &voter.IsAdmin, &voter.RegisteredAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err, "voter_id", voterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.IsEligible != nil {
		voter.IsEligible = *req.IsEligible
	}
	if req.IsAdmin != nil {
		voter.IsAdmin = *req.IsAdmin
	}

	_, err = h.db.Exec(`
		UPDATE voter SET is_eligible = $1, is_admin = $2 WHERE voter_id = $3
	`, voter.IsEligible, voter.IsAdmin, voterID)
	if err != nil {
		slog.Error("failed to update voter flags", "error", err, "voter_id", voterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update voter")
		return
	}

	slog.Info("voter flags updated", "voter_id", voterID,
		"is_eligible", voter.IsEligible, "is_admin", voter.IsAdmin)

	middleware.JSONResponse(w, http.StatusOK, voter)
}
