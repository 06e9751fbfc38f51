package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// VoteDigest computes the tamper-evidence fingerprint for a vote: the
// SHA-256 hex digest of the three identifiers joined by "|" in the fixed
// order voter, election, candidate.
//
// The digest deliberately excludes the timestamp and any random salt so it
// can be recomputed later from the persisted foreign keys alone and compared
// against the stored value.
func VoteDigest(voterID, electionID, candidateID int64) string {
	joined := strings.Join([]string{
		strconv.FormatInt(voterID, 10),
		strconv.FormatInt(electionID, 10),
		strconv.FormatInt(candidateID, 10),
	}, "|")
	sum := sha256.Sum256([]byte(joined))
	return hex.EncodeToString(sum[:])
}
