package router

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/securevote/securevote/models"
	"github.com/securevote/securevote/testutil"
)

// TestRoutes drives a full voter journey through the mux itself, so the
// path patterns and method routing get exercised, not just the handlers.
func TestRoutes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		return w
	}

	t.Run("health check", func(t *testing.T) {
		w := serve(testutil.MakeRequest("GET", "/health", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("root", func(t *testing.T) {
		w := serve(testutil.MakeRequest("GET", "/", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("register login cast verify", func(t *testing.T) {
		w := serve(testutil.MakeRequest("POST", "/register", models.RegisterRequest{
			FullName:    "Route Tester",
			Email:       "route@example.com",
			Password:    "password123",
			DateOfBirth: "1985-01-01",
		}, nil))
		testutil.AssertStatus(t, w, http.StatusCreated)

		w = serve(testutil.MakeRequest("POST", "/login", models.LoginRequest{
			Email:    "route@example.com",
			Password: "password123",
		}, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var login models.LoginResponse
		testutil.AssertJSON(t, w, &login)
		authHeader := map[string]string{"Authorization": "Bearer " + login.Token}

		electionID := testutil.CreateTestElection(t, db, "active")
		candidateID := testutil.AddTestCandidate(t, db, electionID, "Candidate A")
		idStr := strconv.FormatInt(electionID, 10)

		w = serve(testutil.MakeRequest("GET", "/elections", nil, authHeader))
		testutil.AssertStatus(t, w, http.StatusOK)

		w = serve(testutil.MakeRequest("GET", "/elections/"+idStr, nil, authHeader))
		testutil.AssertStatus(t, w, http.StatusOK)

		w = serve(testutil.MakeRequest("POST", "/elections/"+idStr+"/votes",
			models.CastVoteRequest{CandidateID: candidateID}, authHeader))
		testutil.AssertStatus(t, w, http.StatusCreated)

		var cast models.CastVoteResponse
		testutil.AssertJSON(t, w, &cast)

		// Verification is public: no Authorization header
		voteStr := strconv.FormatInt(cast.VoteID, 10)
		w = serve(testutil.MakeRequest("GET", "/votes/"+voteStr+"/verify", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var verify models.VerifyVoteResponse
		testutil.AssertJSON(t, w, &verify)
		if verify.Status != models.VerifyVerified {
			t.Errorf("verify status = %q, want %q", verify.Status, models.VerifyVerified)
		}
	})

	t.Run("admin routes", func(t *testing.T) {
		adminID := testutil.CreateTestVoter(t, db, "admin@securevote.test", true, true)
		adminToken := testutil.VoterToken(t, cfg, adminID, "admin@securevote.test", true, true)
		authHeader := map[string]string{"Authorization": "Bearer " + adminToken}

		for _, path := range []string{"/admin/dashboard", "/admin/elections", "/admin/voters", "/admin/votes"} {
			w := serve(testutil.MakeRequest("GET", path, nil, authHeader))
			testutil.AssertStatus(t, w, http.StatusOK)
		}
	})

	t.Run("wrong method is rejected", func(t *testing.T) {
		w := serve(testutil.MakeRequest("DELETE", "/register", nil, nil))
		testutil.AssertStatus(t, w, http.StatusMethodNotAllowed)
	})
}
