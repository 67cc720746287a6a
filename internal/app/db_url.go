package app

import (
	"net/url"
	"path"
	"strings"
)

var sqliteDefaultParams = map[string]string{
	"_foreign_keys": "on",
	"_busy_timeout": "5000",
	"_journal_mode": "WAL",
}

// sqliteDSN fills in the pragmas the store relies on without overriding
// anything set explicitly. In-memory databases skip WAL.
func sqliteDSN(raw string) string {
	raw = strings.TrimSpace(raw)
	base, rawQuery, _ := strings.Cut(raw, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return raw
	}

	inMemory := strings.Contains(base, ":memory:") || query.Get("mode") == "memory"
	for key, value := range sqliteDefaultParams {
		if key == "_journal_mode" && inMemory {
			continue
		}
		if query.Get(key) == "" {
			query.Set(key, value)
		}
	}
	return base + "?" + query.Encode()
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		if parsed.Opaque != "" {
			return sqliteName(parsed.Opaque)
		}
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if parsed.Scheme == "file" {
			name = sqliteName(name)
		}
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		name, ok := strings.CutPrefix(token, "dbname=")
		if !ok {
			continue
		}
		if name = strings.Trim(strings.TrimSpace(name), `"'`); name != "" {
			return name
		}
	}

	if !strings.Contains(trimmed, "=") {
		return sqliteName(strings.SplitN(trimmed, "?", 2)[0])
	}
	return ""
}

func sqliteName(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == ":memory:" {
		return p
	}
	return strings.TrimSuffix(path.Base(p), path.Ext(p))
}
