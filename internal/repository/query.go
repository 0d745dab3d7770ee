package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching fragment anywhere, with
// LIKE wildcards in fragment taken literally.
func containsPattern(fragment string) string {
	return "%" + likeEscaper.Replace(fragment) + "%"
}
