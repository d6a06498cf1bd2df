package sqldb

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Dialect describes how to talk to one database driver.
type Dialect struct {
	// Name is the value accepted in source.driver.
	Name string
	// Driver is the database/sql driver name.
	Driver string
	// Goose is the goose dialect, empty when the schema is applied directly.
	Goose string
	// Numbered placeholders ($1) instead of ?.
	Numbered bool
}

// Placeholder returns the bind parameter for position n (1-based).
func (d Dialect) Placeholder(n int) string {
	if d.Numbered {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

var dialects = map[string]Dialect{
	"sqlite":   {Name: "sqlite", Driver: "sqlite", Goose: "sqlite3"},
	"postgres": {Name: "postgres", Driver: "pgx", Goose: "postgres", Numbered: true},
	"duckdb":   {Name: "duckdb", Driver: "duckdb"},
}

var aliases = map[string]string{
	"sqlite3":    "sqlite",
	"pgx":        "postgres",
	"postgresql": "postgres",
}

// LookupDialect resolves a driver name or alias.
func LookupDialect(name string) (Dialect, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = "sqlite"
	}
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	d, ok := dialects[key]
	if !ok {
		names := make([]string, 0, len(dialects))
		for n := range dialects {
			names = append(names, n)
		}
		sort.Strings(names)
		return Dialect{}, fmt.Errorf("unknown sql driver %q (available: %s)", name, strings.Join(names, ", "))
	}
	return d, nil
}
