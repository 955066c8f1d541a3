package sqlstore

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/msomdec/newsdesk/internal/domain"
)

// Dialect names a supported SQL backend.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

type dialect struct {
	name   Dialect
	driver string
	// fold is the SQL function used to compare text case-insensitively;
	// foldNeedle applies the same folding to a search term in Go.
	fold       string
	foldNeedle func(string) string
}

var dialects = map[Dialect]dialect{
	SQLite:   {name: SQLite, driver: "sqlite", fold: "casefold", foldNeedle: caseFold},
	Postgres: {name: Postgres, driver: "pgx", fold: "LOWER", foldNeedle: strings.ToLower},
}

func init() {
	// SQLite's built-in lower() only folds ASCII.
	sqlite.MustRegisterDeterministicScalarFunction("casefold", 1,
		func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			switch v := args[0].(type) {
			case string:
				return caseFold(v), nil
			case []byte:
				return caseFold(string(v)), nil
			default:
				return v, nil
			}
		})
}

// caseFold applies Unicode full case folding. Casers carry state, so each
// call gets its own.
func caseFold(s string) string {
	return cases.Fold().String(s)
}

func dialectForDriver(driverName string) (Dialect, error) {
	switch driverName {
	case "sqlite3", "sqlite", "moderncsqlite":
		return SQLite, nil
	case "postgres", "pgx":
		return Postgres, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", driverName)
}

// equalFold returns a predicate comparing col to one placeholder without
// regard to case, in the form the dialect's unique index on col serves.
// SQLite columns carry COLLATE NOCASE; PostgreSQL indexes LOWER(col).
func (d dialect) equalFold(col string) string {
	if d.name == Postgres {
		return "LOWER(" + col + ") = LOWER(?)"
	}
	return col + " = ?"
}

// rebind rewrites ? placeholders into the $n form PostgreSQL expects.
// Queries never carry a literal question mark.
func (d dialect) rebind(query string) string {
	if d.name != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// translate maps a constraint violation onto a domain error. Anything
// else is returned as nil so callers can wrap it with their own context.
func (d dialect) translate(err error) error {
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return duplicateError(liteErr.Error())
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return domain.ErrInvalidReference
		}
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return duplicateError(pgErr.ConstraintName + " " + pgErr.Message)
		case "23503":
			return domain.ErrInvalidReference
		}
	}
	return nil
}

// duplicateError picks the conflict sentinel for the column named in a
// unique violation message.
func duplicateError(detail string) error {
	switch {
	case strings.Contains(detail, "login"):
		return domain.ErrDuplicateLogin
	case strings.Contains(detail, "email"):
		return domain.ErrDuplicateEmail
	case strings.Contains(detail, "tags"):
		return domain.ErrDuplicateTag
	}
	return domain.ErrConflict
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// int64Args converts ids to driver arguments, dropping duplicates.
func int64Args(ids []int64) []any {
	seen := make(map[int64]bool, len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		args = append(args, id)
	}
	return args
}

// escapeLike escapes LIKE wildcards so the pattern matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullBytes(b []byte) any {
	if b == nil {
		return nil
	}
	return b
}

type scanner interface {
	Scan(dest ...any) error
}
