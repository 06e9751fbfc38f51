package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/securevote/securevote/auth"
	"github.com/securevote/securevote/cliparse"
	dbschema "github.com/securevote/securevote/db"
	"github.com/securevote/securevote/integrity"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// The pool is capped at a single connection: each connection to :memory: is
// its own database, and one connection also serializes concurrent test
// traffic the way a shared server database would.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := dbschema.CreateSchema(db, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8080,
		DatabaseType: "sqlite",
		DatabaseURL:  ":memory:",
		JWTSecret:    "test-jwt-secret",
		AdminEmail:   "admin@securevote.test",
	}
}

// CreateTestVoter inserts a voter and returns its ID. The password for every
// test voter is "password123".
func CreateTestVoter(t *testing.T, db *sql.DB, email string, eligible, admin bool) int64 {
	t.Helper()

	hashed, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	var voterID int64
	err = db.QueryRow(`
		INSERT INTO voter (full_name, email, hashed_password, date_of_birth, is_eligible, is_admin, registered_at)
		VALUES ($1, $2, $3, '1990-01-01', $4, $5, $6)
		RETURNING voter_id
	`, "Test Voter", email, hashed, eligible, admin, time.Now()).Scan(&voterID)
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return voterID
}

// CreateTestElection inserts an election whose window matches the requested
// lifecycle state ("upcoming", "active", or "closed") and returns its ID.
func CreateTestElection(t *testing.T, db *sql.DB, status string) int64 {
	t.Helper()

	now := time.Now()
	var start, end time.Time
	switch status {
	case "upcoming":
		start, end = now.Add(24*time.Hour), now.Add(48*time.Hour)
	case "closed":
		start, end = now.Add(-48*time.Hour), now.Add(-24*time.Hour)
	default: // active
		start, end = now.Add(-time.Hour), now.Add(time.Hour)
	}

	var electionID int64
	err := db.QueryRow(`
		INSERT INTO election (title, description, start_date, end_date)
		VALUES ('Test Election', 'An election under test', $1, $2)
		RETURNING election_id
	`, start, end).Scan(&electionID)
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return electionID
}

// AddTestCandidate inserts a candidate for an election and returns its ID.
func AddTestCandidate(t *testing.T, db *sql.DB, electionID int64, name string) int64 {
	t.Helper()

	var candidateID int64
	err := db.QueryRow(`
		INSERT INTO candidate (election_id, full_name, party, bio)
		VALUES ($1, $2, 'Test Party', '')
		RETURNING candidate_id
	`, electionID, name).Scan(&candidateID)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// CastTestVote inserts a vote row directly, with the digest computed the way
// the cast path computes it, and returns the vote ID.
func CastTestVote(t *testing.T, db *sql.DB, voterID, electionID, candidateID int64) int64 {
	t.Helper()

	var voteID int64
	err := db.QueryRow(`
		INSERT INTO vote (voter_id, candidate_id, election_id, hash_reference, voted_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING vote_id
	`, voterID, candidateID, electionID,
		integrity.VoteDigest(voterID, electionID, candidateID), time.Now()).Scan(&voteID)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return voteID
}

// VoterToken issues a session token for a test voter
func VoterToken(t *testing.T, cfg cliparse.Config, voterID int64, email string, admin, eligible bool) string {
	t.Helper()

	token, err := auth.IssueToken(cfg.JWTSecret, voterID, email, admin, eligible)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
