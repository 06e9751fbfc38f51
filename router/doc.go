/*
Package router wires HTTP routes to handlers.

Routes use Go 1.22+ method and path-parameter patterns on the standard
ServeMux:

	mux := router.NewRouter(db, cfg)

Public routes: /register, /login, /votes/{id}/verify, /health.
Authenticated voter routes: /me, /elections, /elections/{id},
/elections/{id}/votes.
Admin routes live under /admin and re-check the admin flag per request.
*/
package router
