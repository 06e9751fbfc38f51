package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/securevote/securevote/models"
	"github.com/securevote/securevote/testutil"
)

func TestListVoters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoterHandler(db, cfg)

	adminID := testutil.CreateTestVoter(t, db, "admin@example.com", true, true)
	testutil.CreateTestVoter(t, db, "one@example.com", true, false)
	testutil.CreateTestVoter(t, db, "two@example.com", false, false)

	adminToken := testutil.VoterToken(t, cfg, adminID, "admin@example.com", true, true)

	t.Run("admin sees all voters", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/admin/voters", nil,
			map[string]string{"Authorization": "Bearer " + adminToken})
		w := httptest.NewRecorder()
		handler.ListVoters(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var voters []models.Voter
		testutil.AssertJSON(t, w, &voters)
		if len(voters) != 3 {
			t.Errorf("got %d voters, want 3", len(voters))
		}
	})

	t.Run("non-admin is refused", func(t *testing.T) {
		voterID := testutil.CreateTestVoter(t, db, "nobody@example.com", true, false)
		token := testutil.VoterToken(t, cfg, voterID, "nobody@example.com", false, true)

		req := testutil.MakeRequest("GET", "/admin/voters", nil,
			map[string]string{"Authorization": "Bearer " + token})
		w := httptest.NewRecorder()
		handler.ListVoters(w, req)
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})
}

func TestUpdateVoterFlags(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoterHandler(db, cfg)

	adminID := testutil.CreateTestVoter(t, db, "admin@example.com", true, true)
	adminToken := testutil.VoterToken(t, cfg, adminID, "admin@example.com", true, true)

	patch := func(voterID int64, body models.UpdateVoterFlagsRequest) *httptest.ResponseRecorder {
		idStr := strconv.FormatInt(voterID, 10)
		req := testutil.MakeRequest("PATCH", "/admin/voters/"+idStr, body,
			map[string]string{"Authorization": "Bearer " + adminToken})
		req.SetPathValue("id", idStr)
		w := httptest.NewRecorder()
		handler.UpdateVoterFlags(w, req)
		return w
	}

	boolPtr := func(b bool) *bool { return &b }

	t.Run("revoke eligibility", func(t *testing.T) {
		voterID := testutil.CreateTestVoter(t, db, "eve@example.com", true, false)

		w := patch(voterID, models.UpdateVoterFlagsRequest{IsEligible: boolPtr(false)})
		testutil.AssertStatus(t, w, http.StatusOK)

		var voter models.Voter
		testutil.AssertJSON(t, w, &voter)
		if voter.IsEligible {
			t.Error("eligibility should be revoked")
		}
		if voter.IsAdmin {
			t.Error("untouched admin flag should stay false")
		}

		var stored bool
		if err := db.QueryRow(`SELECT is_eligible FROM voter WHERE voter_id = $1`,
			voterID).Scan(&stored); err != nil {
			t.Fatalf("Failed to query voter: %v", err)
		}
		if stored {
			t.Error("revocation not persisted")
		}
	})

	t.Run("grant admin without touching eligibility", func(t *testing.T) {
		voterID := testutil.CreateTestVoter(t, db, "frank@example.com", false, false)

		w := patch(voterID, models.UpdateVoterFlagsRequest{IsAdmin: boolPtr(true)})
		testutil.AssertStatus(t, w, http.StatusOK)

		var voter models.Voter
		testutil.AssertJSON(t, w, &voter)
		if !voter.IsAdmin {
			t.Error("admin flag should be set")
		}
		if voter.IsEligible {
			t.Error("untouched eligibility should stay false")
		}
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		voterID := testutil.CreateTestVoter(t, db, "grace@example.com", true, false)
		w := patch(voterID, models.UpdateVoterFlagsRequest{})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("missing voter", func(t *testing.T) {
		w := patch(999999, models.UpdateVoterFlagsRequest{IsEligible: boolPtr(true)})
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("non-admin is refused", func(t *testing.T) {
		voterID := testutil.CreateTestVoter(t, db, "heidi@example.com", true, false)
		token := testutil.VoterToken(t, cfg, voterID, "heidi@example.com", false, true)

		idStr := strconv.FormatInt(voterID, 10)
		req := testutil.MakeRequest("PATCH", "/admin/voters/"+idStr,
			models.UpdateVoterFlagsRequest{IsAdmin: boolPtr(true)},
			map[string]string{"Authorization": "Bearer " + token})
		req.SetPathValue("id", idStr)
		w := httptest.NewRecorder()
		handler.UpdateVoterFlags(w, req)
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})
}
