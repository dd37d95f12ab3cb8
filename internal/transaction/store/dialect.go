package store

import (
	"strconv"
	"strings"
	"time"
)

// Dialect holds the differences between the supported SQL backends.
type Dialect struct {
	Name   string
	Schema string

	numbered   bool // $1, $2 placeholders instead of ?
	advisory   bool // pg_advisory_xact_lock available
	dateAsText bool
}

func Postgres(schema string) Dialect {
	return Dialect{Name: "postgres", Schema: schema, numbered: true, advisory: true}
}

func SQLite() Dialect {
	return Dialect{Name: "sqlite", Schema: "main", dateAsText: true}
}

// ForDriver picks the dialect for a config driver name.
func ForDriver(driver, schema string) Dialect {
	if driver == "sqlite" {
		return SQLite()
	}

	return Postgres(schema)
}

func (d Dialect) table(name string) string {
	if d.Schema == "" {
		return name
	}

	return d.Schema + "." + name
}

// rebind rewrites ? placeholders for backends that number them.
func (d Dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}

	var b strings.Builder

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

func (d Dialect) date(t time.Time) any {
	if d.dateAsText {
		return t.Format(time.DateOnly)
	}

	return t
}
