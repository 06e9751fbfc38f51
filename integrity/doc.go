/*
Package integrity computes the deterministic digest stored with every vote.

# Vote Digests

	digest := integrity.VoteDigest(voterID, electionID, candidateID)

The digest is the SHA-256 hex string (64 characters) of the decimal IDs
joined by "|" in a fixed order. Verification recomputes it from a stored
vote's foreign keys and compares byte-for-byte with the stored copy; any
divergence means the row was altered after it was written.

The digest is unkeyed: it detects corruption and out-of-band edits, not a
forger who knows all three IDs. Upgrading to a keyed MAC would require
re-digesting every stored vote.
*/
package integrity
