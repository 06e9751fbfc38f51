package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/securevote/securevote/auth"
	"github.com/securevote/securevote/cliparse"
	dbutil "github.com/securevote/securevote/db"
	"github.com/securevote/securevote/middleware"
	"github.com/securevote/securevote/models"
)

type AccountHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAccountHandler(db *sql.DB, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{db: db, cfg: cfg}
}

// Register handles POST /register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.FullName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "full_name is required")
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < 8 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	// Bootstrap: the configured admin email registers as an administrator
	isAdmin := h.cfg.AdminEmail != "" && strings.EqualFold(req.Email, h.cfg.AdminEmail)

	var voterID int64
	err = h.db.QueryRow(`
		INSERT INTO voter (full_name, email, hashed_password, date_of_birth, is_eligible, is_admin, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING voter_id
	`, req.FullName, req.Email, hashed, req.DateOfBirth, true, isAdmin, time.Now()).Scan(&voterID)

	if err != nil {
		if dbutil.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Email already registered")
			return
		}
		slog.Error("failed to insert voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("voter registered", "voter_id", voterID, "is_admin", isAdmin)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		VoterID: voterID,
	})
}

// Login handles POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var voter models.Voter
	var hashedPassword string
	err := h.db.QueryRow(`
		SELECT voter_id, full_name, email, hashed_password, date_of_birth, is_eligible, is_admin, registered_at
		FROM voter WHERE email = $1
	`, req.Email).Scan(
		&voter.VoterID, &voter.FullName, &voter.Email, &hashedPassword,
		&voter.DateOfBirth, &voter.IsEligible, &voter.IsAdmin, &voter.RegisteredAt,
	)

	// Same response whether the email is unknown or the password is wrong
	if err == sql.ErrNoRows || (err == nil && !auth.CheckPassword(hashedPassword, req.Password)) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	token, err := auth.IssueToken(h.cfg.JWTSecret, voter.VoterID, voter.Email, voter.IsAdmin, voter.IsEligible)
	if err != nil {
		slog.Error("failed to issue token", "error", err, "voter_id", voter.VoterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("voter logged in", "voter_id", voter.VoterID)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token: token,
		Voter: voter,
	})
}

// Me handles GET /me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireVoter(w, r, h.cfg)
	if !ok {
		return
	}

	var voter models.Voter
	err := h.db.QueryRow(`
		SELECT voter_id, full_name, email, date_of_birth, is_eligible, is_admin, registered_at
		FROM voter WHERE voter_id = $1
	`, claims.VoterID).Scan(
		&voter.VoterID, &voter.FullName, &voter.Email, &voter.DateOfBirth,
		&voter.IsEligible, &voter.IsAdmin, &voter.RegisteredAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session token")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err, "voter_id", claims.VoterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, voter)
}
