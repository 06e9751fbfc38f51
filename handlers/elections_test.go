package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/securevote/securevote/models"
	"github.com/securevote/securevote/testutil"
)

func TestListElections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewElectionHandler(db, cfg)

	activeID := testutil.CreateTestElection(t, db, "active")
	testutil.CreateTestElection(t, db, "upcoming")
	testutil.CreateTestElection(t, db, "closed") // ended; must not appear

	candidateID := testutil.AddTestCandidate(t, db, activeID, "Candidate A")
	voterID := testutil.CreateTestVoter(t, db, "lister@example.com", true, false)
	testutil.CastTestVote(t, db, voterID, activeID, candidateID)

	token := testutil.VoterToken(t, cfg, voterID, "lister@example.com", false, true)

	req := testutil.MakeRequest("GET", "/elections", nil,
		map[string]string{"Authorization": "Bearer " + token})
	w := httptest.NewRecorder()
	handler.ListElections(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var elections []models.ElectionResponse
	testutil.AssertJSON(t, w, &elections)

	if len(elections) != 2 {
		t.Fatalf("got %d elections, want 2 (ended election excluded)", len(elections))
	}

	for _, e := range elections {
		switch e.ElectionID {
		case activeID:
			if e.Status != models.StatusActive {
				t.Errorf("active election status = %q", e.Status)
			}
			if !e.HasVoted {
				t.Error("expected has_voted for the active election")
			}
		default:
			if e.Status != models.StatusUpcoming {
				t.Errorf("other election status = %q, want upcoming", e.Status)
			}
			if e.HasVoted {
				t.Error("unexpected has_voted on an election without a vote")
			}
		}
	}
}

func TestGetElection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewElectionHandler(db, cfg)

	electionID := testutil.CreateTestElection(t, db, "active")
	testutil.AddTestCandidate(t, db, electionID, "Candidate A")
	testutil.AddTestCandidate(t, db, electionID, "Candidate B")

	voterID := testutil.CreateTestVoter(t, db, "viewer@example.com", true, false)
	token := testutil.VoterToken(t, cfg, voterID, "viewer@example.com", false, true)

	t.Run("detail with candidates and status", func(t *testing.T) {
		idStr := strconv.FormatInt(electionID, 10)
		req := testutil.MakeRequest("GET", "/elections/"+idStr, nil,
			map[string]string{"Authorization": "Bearer " + token})
		req.SetPathValue("id", idStr)
		w := httptest.NewRecorder()
		handler.GetElection(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ElectionDetailResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Status != models.StatusActive {
			t.Errorf("status = %q, want active", resp.Status)
		}
		if len(resp.Candidates) != 2 {
			t.Errorf("got %d candidates, want 2", len(resp.Candidates))
		}
		if resp.HasVoted {
			t.Error("unexpected has_voted before casting")
		}
	})

	t.Run("missing election", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/elections/424242", nil,
			map[string]string{"Authorization": "Bearer " + token})
		req.SetPathValue("id", "424242")
		w := httptest.NewRecorder()
		handler.GetElection(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestAdminElectionCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewElectionHandler(db, cfg)

	adminID := testutil.CreateTestVoter(t, db, "admin@example.com", true, true)
	voterID := testutil.CreateTestVoter(t, db, "pleb@example.com", true, false)
	adminToken := testutil.VoterToken(t, cfg, adminID, "admin@example.com", true, true)
	voterToken := testutil.VoterToken(t, cfg, voterID, "pleb@example.com", false, true)

	start := time.Now().Add(24 * time.Hour)
	end := start.Add(48 * time.Hour)

	var created models.Election

	t.Run("create", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/admin/elections", models.ElectionRequest{
			Title:       "City Council 2026",
			Description: "Municipal election",
			StartDate:   start,
			EndDate:     end,
		}, map[string]string{"Authorization": "Bearer " + adminToken})
		w := httptest.NewRecorder()
		handler.CreateElection(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)
		testutil.AssertJSON(t, w, &created)
		if created.ElectionID <= 0 {
			t.Fatalf("ElectionID = %d, want positive", created.ElectionID)
		}
	})

	t.Run("create rejects start after end", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/admin/elections", models.ElectionRequest{
			Title:     "Backwards",
			StartDate: end,
			EndDate:   start,
		}, map[string]string{"Authorization": "Bearer " + adminToken})
		w := httptest.NewRecorder()
		handler.CreateElection(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("create requires admin", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/admin/elections", models.ElectionRequest{
			Title:     "Sneaky",
			StartDate: start,
			EndDate:   end,
		}, map[string]string{"Authorization": "Bearer " + voterToken})
		w := httptest.NewRecorder()
		handler.CreateElection(w, req)
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("update re-validates dates", func(t *testing.T) {
		idStr := strconv.FormatInt(created.ElectionID, 10)
		req := testutil.MakeRequest("PUT", "/admin/elections/"+idStr, models.ElectionRequest{
			Title:     "City Council 2026",
			StartDate: end,
			EndDate:   start,
		}, map[string]string{"Authorization": "Bearer " + adminToken})
		req.SetPathValue("id", idStr)
		w := httptest.NewRecorder()
		handler.UpdateElection(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("update", func(t *testing.T) {
		idStr := strconv.FormatInt(created.ElectionID, 10)
		req := testutil.MakeRequest("PUT", "/admin/elections/"+idStr, models.ElectionRequest{
			Title:       "City Council 2026 (amended)",
			Description: "Municipal election, new window",
			StartDate:   start.Add(time.Hour),
			EndDate:     end.Add(time.Hour),
		}, map[string]string{"Authorization": "Bearer " + adminToken})
		req.SetPathValue("id", idStr)
		w := httptest.NewRecorder()
		handler.UpdateElection(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var title string
		if err := db.QueryRow(`SELECT title FROM election WHERE election_id = $1`,
			created.ElectionID).Scan(&title); err != nil {
			t.Fatalf("Failed to query election: %v", err)
		}
		if title != "City Council 2026 (amended)" {
			t.Errorf("title = %q", title)
		}
	})

	t.Run("admin list includes counts", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/admin/elections", nil,
			map[string]string{"Authorization": "Bearer " + adminToken})
		w := httptest.NewRecorder()
		handler.ListElectionsAdmin(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var rows []models.AdminElectionRow
		testutil.AssertJSON(t, w, &rows)
		if len(rows) != 1 {
			t.Fatalf("got %d elections, want 1", len(rows))
		}
		if rows[0].CandidateCount != 0 || rows[0].VoteCount != 0 {
			t.Errorf("counts = (%d, %d), want (0, 0)", rows[0].CandidateCount, rows[0].VoteCount)
		}
	})

	t.Run("update missing election", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/admin/elections/99999", models.ElectionRequest{
			Title:     "Ghost",
			StartDate: start,
			EndDate:   end,
		}, map[string]string{"Authorization": "Bearer " + adminToken})
		req.SetPathValue("id", "99999")
		w := httptest.NewRecorder()
		handler.UpdateElection(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestDeleteElection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewElectionHandler(db, cfg)

	adminID := testutil.CreateTestVoter(t, db, "admin@example.com", true, true)
	adminToken := testutil.VoterToken(t, cfg, adminID, "admin@example.com", true, true)

	deleteReq := func(electionID int64) *httptest.ResponseRecorder {
		idStr := strconv.FormatInt(electionID, 10)
		req := testutil.MakeRequest("DELETE", "/admin/elections/"+idStr, nil,
			map[string]string{"Authorization": "Bearer " + adminToken})
		req.SetPathValue("id", idStr)
		w := httptest.NewRecorder()
		handler.DeleteElection(w, req)
		return w
	}

	t.Run("election with votes is protected", func(t *testing.T) {
		electionID := testutil.CreateTestElection(t, db, "active")
		candidateID := testutil.AddTestCandidate(t, db, electionID, "Candidate A")
		voterID := testutil.CreateTestVoter(t, db, "voted@example.com", true, false)
		testutil.CastTestVote(t, db, voterID, electionID, candidateID)

		w := deleteReq(electionID)
		testutil.AssertStatus(t, w, http.StatusConflict)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Reason != models.ReasonHasVotes {
			t.Errorf("reason = %q, want %q", resp.Reason, models.ReasonHasVotes)
		}

		// Election and its candidates must be intact
		var candidateCount int
		if err := db.QueryRow(`SELECT COUNT(*) FROM candidate WHERE election_id = $1`,
			electionID).Scan(&candidateCount); err != nil {
			t.Fatalf("Failed to count candidates: %v", err)
		}
		if candidateCount != 1 {
			t.Errorf("candidate count = %d, want 1", candidateCount)
		}
	})

	t.Run("election without votes deletes with its candidates", func(t *testing.T) {
		electionID := testutil.CreateTestElection(t, db, "upcoming")
		testutil.AddTestCandidate(t, db, electionID, "Candidate B")
		testutil.AddTestCandidate(t, db, electionID, "Candidate C")

		w := deleteReq(electionID)
		testutil.AssertStatus(t, w, http.StatusOK)

		var electionCount, candidateCount int
		if err := db.QueryRow(`SELECT COUNT(*) FROM election WHERE election_id = $1`,
			electionID).Scan(&electionCount); err != nil {
			t.Fatalf("Failed to count elections: %v", err)
		}
		if err := db.QueryRow(`SELECT COUNT(*) FROM candidate WHERE election_id = $1`,
			electionID).Scan(&candidateCount); err != nil {
			t.Fatalf("Failed to count candidates: %v", err)
		}
		if electionCount != 0 || candidateCount != 0 {
			t.Errorf("remaining (elections, candidates) = (%d, %d), want (0, 0)",
				electionCount, candidateCount)
		}
	})

	t.Run("missing election", func(t *testing.T) {
		w := deleteReq(777777)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
