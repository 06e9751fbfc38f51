package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/securevote/securevote/auth"
	"github.com/securevote/securevote/cliparse"
	"github.com/securevote/securevote/middleware"
)

// requireVoter authenticates the request and writes the error response
// itself on failure. A missing token and a bad token produce different
// messages so clients can prompt for login versus re-login.
func requireVoter(w http.ResponseWriter, r *http.Request, cfg cliparse.Config) (*auth.Claims, bool) {
	claims, err := auth.ClaimsFromRequest(r, cfg.JWTSecret)
	if err == auth.ErrNoToken {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Please log in to access this resource")
		return nil, false
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session token")
		return nil, false
	}
	return claims, true
}

// requireAdmin authenticates the request and checks the admin flag against
// the voter row, not the token: an admin demoted mid-session loses access
// immediately.
func requireAdmin(w http.ResponseWriter, r *http.Request, db *sql.DB, cfg cliparse.Config) (*auth.Claims, bool) {
	claims, ok := requireVoter(w, r, cfg)
	if !ok {
		return nil, false
	}

	var isAdmin bool
	err := db.QueryRow(`SELECT is_admin FROM voter WHERE voter_id = $1`, claims.VoterID).Scan(&isAdmin)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session token")
		return nil, false
	}
	if err != nil {
		slog.Error("failed to query voter for admin check", "error", err, "voter_id", claims.VoterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}

	if !isAdmin {
		middleware.ErrorResponse(w, http.StatusForbidden, "You do not have permission to access the admin panel")
		return nil, false
	}
	return claims, true
}
