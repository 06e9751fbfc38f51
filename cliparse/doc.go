/*
Package cliparse handles configuration parsing.

Configuration comes from CLI flags with environment variable fallback, and a
.env file is autoloaded when present:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Settings

  - PORT (-p): server port, default 8080
  - DATABASE_URL (-d): connection string (postgres) or file path (sqlite),
    default securevote.db
  - DATABASE_TYPE (-t): sqlite or postgres, default sqlite
  - JWT_SECRET (-jwt-secret): required; signs session tokens. Loaded once at
    startup and never embedded in source.
  - ADMIN_EMAIL (-admin-email): optional; a registration with this email is
    created as an administrator, bootstrapping the first admin account.
*/
package cliparse
