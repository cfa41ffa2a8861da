package commsutil

import (
	"fmt"
	"strings"
)

// Default COMMS subjects.
const (
	SubjectGateway       = "stats.gateway.v1"
	SubjectCallCompleted = "stats.calls.completed"
)

// BuildCallSubject builds the granular completion subject for one group and method,
// e.g. "stats.calls.completed.summoner.getSummonersByIds".
func BuildCallSubject(base, group, method string) string {
	if base == "" {
		base = SubjectCallCompleted
	}
	return fmt.Sprintf("%s.%s.%s", base, sanitizeToken(group), sanitizeToken(method))
}

// sanitizeToken keeps a value usable as a single subject token.
func sanitizeToken(s string) string {
	if s == "" {
		return "_"
	}
	return strings.NewReplacer(".", "_", " ", "_", "*", "_", ">", "_").Replace(s)
}
