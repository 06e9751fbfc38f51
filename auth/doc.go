/*
Package auth provides credential hashing and session token handling.

# Passwords

Credentials are stored as bcrypt digests:

	digest, err := auth.HashPassword(password)
	ok := auth.CheckPassword(digest, password)

# Session Tokens

Logins are JWTs signed with HMAC-SHA256 using the process-wide secret from
configuration:

	token, err := auth.IssueToken(secret, voterID, email, isAdmin, isEligible)
	claims, err := auth.ClaimsFromRequest(r, secret)

Tokens expire after TokenTTL and carry a unique jti. The is_admin and
is_eligible claims are a convenience for clients; handlers performing writes
re-read the authoritative flags from the voter row, so a flag change by an
administrator takes effect mid-session.

ClaimsFromRequest returns ErrNoToken for an absent Authorization header and
ErrInvalidToken for a malformed, tampered, or expired one.
*/
package auth
