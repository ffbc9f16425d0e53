package repository

import (
	"fmt"
	"strings"
)

// NoteFilter carries the recognized listing options. An unset option
// contributes no predicate at all, so the generated WHERE clause only
// contains what the caller actually asked for.
type NoteFilter struct {
	Important    *bool
	Search       string
	OrderByLikes bool
}

// whereClause renders the filter as a WHERE fragment plus its positional
// args. Predicates combine with AND; the search term matches content or
// author, case-insensitively, as a substring.
func (f NoteFilter) whereClause() (string, []interface{}) {
	var conds []string
	var args []interface{}
	argID := 1

	if f.Important != nil {
		conds = append(conds, fmt.Sprintf("n.important = $%d", argID))
		args = append(args, *f.Important)
		argID++
	}
	if f.Search != "" {
		conds = append(conds, fmt.Sprintf("(n.content ILIKE $%d OR n.author ILIKE $%d)", argID, argID+1))
		pattern := "%" + escapeLike(f.Search) + "%"
		args = append(args, pattern, pattern)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// likeEscaper neutralizes LIKE metacharacters so a search term always
// matches itself literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func (f NoteFilter) orderClause() string {
	if f.OrderByLikes {
		return " ORDER BY n.likes DESC"
	}
	return " ORDER BY n.id ASC"
}
