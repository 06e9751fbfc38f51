package router

import (
	"database/sql"
	"net/http"

	"github.com/securevote/securevote/cliparse"
	"github.com/securevote/securevote/handlers"
	"github.com/securevote/securevote/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(db, cfg)
	electionHandler := handlers.NewElectionHandler(db, cfg)
	candidateHandler := handlers.NewCandidateHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	voterHandler := handlers.NewVoterHandler(db, cfg)
	dashboardHandler := handlers.NewDashboardHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("GET /me", middleware.WithLogging(accountHandler.Me))

	// Voter-facing elections and casting
	mux.HandleFunc("GET /elections", middleware.WithLogging(electionHandler.ListElections))
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(electionHandler.GetElection))
	mux.HandleFunc("POST /elections/{id}/votes", middleware.WithLogging(voteHandler.CastVote))

	// Public vote verification (no authentication)
	mux.HandleFunc("GET /votes/{id}/verify", middleware.WithLogging(voteHandler.VerifyVote))

	// Admin panel
	mux.HandleFunc("GET /admin/dashboard", middleware.WithLogging(dashboardHandler.GetStats))
	mux.HandleFunc("GET /admin/elections", middleware.WithLogging(electionHandler.ListElectionsAdmin))
	mux.HandleFunc("POST /admin/elections", middleware.WithLogging(electionHandler.CreateElection))
	mux.HandleFunc("PUT /admin/elections/{id}", middleware.WithLogging(electionHandler.UpdateElection))
	mux.HandleFunc("DELETE /admin/elections/{id}", middleware.WithLogging(electionHandler.DeleteElection))
	mux.HandleFunc("POST /admin/elections/{id}/candidates", middleware.WithLogging(candidateHandler.AddCandidate))
	mux.HandleFunc("PUT /admin/candidates/{id}", middleware.WithLogging(candidateHandler.UpdateCandidate))
	mux.HandleFunc("DELETE /admin/candidates/{id}", middleware.WithLogging(candidateHandler.DeleteCandidate))
	mux.HandleFunc("GET /admin/voters", middleware.WithLogging(voterHandler.ListVoters))
	mux.HandleFunc("PATCH /admin/voters/{id}", middleware.WithLogging(voterHandler.UpdateVoterFlags))
	mux.HandleFunc("GET /admin/votes", middleware.WithLogging(voteHandler.ListVotes))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("SecureVote API v1"))
	})

	return mux
}
