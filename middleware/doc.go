/*
Package middleware provides HTTP helpers shared by all handlers.

# Logging

WithLogging wraps a handler with structured request/completion logging via
log/slog.

# JSON Helpers

  - JSONResponse: write a JSON body with a status code
  - ErrorResponse: write a models.ErrorResponse
  - DenialResponse: ErrorResponse plus a machine-readable reason code
    (see models reason constants)
  - ParseJSONBody: decode a request body

# CORS

CORS handles cross-origin requests and OPTIONS preflight.

# Client IP

GetClientIP resolves the caller address through X-Forwarded-For and
X-Real-IP before falling back to RemoteAddr.
*/
package middleware
