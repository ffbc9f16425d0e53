package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func TestNoteFilter_WhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    NoteFilter
		wantWhere string
		wantArgs  []interface{}
	}{
		{
			name:      "empty filter emits no predicate",
			filter:    NoteFilter{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "important true",
			filter:    NoteFilter{Important: boolPtr(true)},
			wantWhere: " WHERE n.important = $1",
			wantArgs:  []interface{}{true},
		},
		{
			name:      "important false",
			filter:    NoteFilter{Important: boolPtr(false)},
			wantWhere: " WHERE n.important = $1",
			wantArgs:  []interface{}{false},
		},
		{
			name:      "search matches content or author",
			filter:    NoteFilter{Search: "database"},
			wantWhere: " WHERE (n.content ILIKE $1 OR n.author ILIKE $2)",
			wantArgs:  []interface{}{"%database%", "%database%"},
		},
		{
			name:      "filters combine with AND",
			filter:    NoteFilter{Important: boolPtr(true), Search: "db"},
			wantWhere: " WHERE n.important = $1 AND (n.content ILIKE $2 OR n.author ILIKE $3)",
			wantArgs:  []interface{}{true, "%db%", "%db%"},
		},
		{
			name:      "empty search emits no predicate",
			filter:    NoteFilter{Search: ""},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "wildcard characters in the term are matched literally",
			filter:    NoteFilter{Search: `100%_done\`},
			wantWhere: " WHERE (n.content ILIKE $1 OR n.author ILIKE $2)",
			wantArgs:  []interface{}{`%100\%\_done\\%`, `%100\%\_done\\%`},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			where, args := tc.filter.whereClause()
			require.Equal(t, tc.wantWhere, where)
			require.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestNoteFilter_OrderClause(t *testing.T) {
	require.Equal(t, " ORDER BY n.id ASC", NoteFilter{}.orderClause())
	require.Equal(t, " ORDER BY n.likes DESC", NoteFilter{OrderByLikes: true}.orderClause())
}
