package person

import (
	"strings"
	"time"
)

// Person is one participant. The name is the identity and is case-sensitive.
type Person struct {
	Name      string
	CreatedAt time.Time
}

// NormalizeName trims surrounding whitespace. An empty result means no person.
func NormalizeName(value string) string {
	return strings.TrimSpace(value)
}
