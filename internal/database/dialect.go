package database

import (
	"strconv"
	"strings"
)

// Dialect captures the SQL differences between the supported drivers.
type Dialect struct {
	dollar bool
}

// DialectFor returns the dialect spoken by driver. Unknown drivers get the
// "?" placeholder style used by MySQL and SQLite.
func DialectFor(driver string) Dialect {
	return Dialect{dollar: driver == DriverPgx}
}

// UsesReturning reports whether generated keys must be read with RETURNING
// instead of sql.Result.LastInsertId.
func (d Dialect) UsesReturning() bool {
	return d.dollar
}

// Rebind rewrites "?" placeholders into "$1, $2, ..." for PostgreSQL.
// Queries must not contain literal question marks.
func (d Dialect) Rebind(query string) string {
	if !d.dollar {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
