package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/securevote/securevote/cliparse"
	"github.com/securevote/securevote/middleware"
	"github.com/securevote/securevote/models"
)

type DashboardHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewDashboardHandler(db *sql.DB, cfg cliparse.Config) *DashboardHandler {
	return &DashboardHandler{db: db, cfg: cfg}
}

// GetStats handles GET /admin/dashboard
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.db, h.cfg); !ok {
		return
	}

	var stats models.DashboardStats
	for _, c := range []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM voter`, &stats.Voters},
		{`SELECT COUNT(*) FROM election`, &stats.Elections},
		{`SELECT COUNT(*) FROM vote`, &stats.Votes},
	} {
		if err := h.db.QueryRow(c.query).Scan(c.dest); err != nil {
			slog.Error("failed to query dashboard count", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	rows, err := h.db.Query(`
		SELECT e.title, COUNT(v.vote_id) AS vote_count
		FROM election e
		LEFT JOIN vote v ON e.election_id = v.election_id
		GROUP BY e.election_id, e.title
		ORDER BY vote_count DESC
		LIMIT 5
	`)
	if err != nil {
		slog.Error("failed to query top elections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	stats.TopElections = []models.ElectionTally{}
	for rows.Next() {
		var tally models.ElectionTally
		if err := rows.Scan(&tally.Title, &tally.VoteCount); err != nil {
			slog.Error("failed to scan election tally", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		stats.TopElections = append(stats.TopElections, tally)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate election tallies", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}
