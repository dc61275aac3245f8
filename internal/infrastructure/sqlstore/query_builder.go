package sqlstore

import (
	"fmt"
	"strings"

	"github.com/martijn/clientbook/internal/core/domain"
)

// likeEscape is portable across SQLite, MySQL and PostgreSQL string literals,
// unlike a backslash.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// likePattern builds a LIKE operand matching attribute anywhere in a column,
// with wildcard characters in attribute taken literally.
func likePattern(attribute string) string {
	return "%" + likeReplacer.Replace(attribute) + "%"
}

// buildAssignments builds the SET list for an update. Column names come from
// the domain allow-list, never from the caller, and are emitted in column order.
func buildAssignments(changes domain.Changes) (string, []interface{}) {
	assignments := make([]string, 0, len(changes))
	args := make([]interface{}, 0, len(changes))
	for _, field := range domain.Fields() {
		value, ok := changes[field]
		if !ok {
			continue
		}
		assignments = append(assignments, fmt.Sprintf("%s = ?", field))
		args = append(args, value)
	}
	return strings.Join(assignments, ", "), args
}
