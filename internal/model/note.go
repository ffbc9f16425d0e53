package model

import "time"

// Note is a single entry owned by at most one user. UserID is nullable:
// deleting the owning user clears the reference instead of cascading.
type Note struct {
	ID        int       `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	Author    string    `db:"author" json:"author"`
	Important bool      `db:"important" json:"important"`
	Likes     int       `db:"likes" json:"likes"`
	Date      time.Time `db:"date" json:"date"`
	UserID    *int      `db:"user_id" json:"-"`

	// Owner projection embedded in listings, name only.
	OwnerName *string `db:"owner_name" json:"-"`
}

// Owner is the reduced projection of a note's owning user.
type Owner struct {
	Name string `json:"name"`
}

// User returns the owner projection, or nil for orphaned notes.
func (n *Note) User() *Owner {
	if n.OwnerName == nil {
		return nil
	}
	return &Owner{Name: *n.OwnerName}
}

// AuthorStat is one row of the per-author aggregation: how many notes the
// author has written and their accumulated likes.
type AuthorStat struct {
	Author   string `db:"author" json:"author"`
	Articles int    `db:"articles" json:"articles"`
	Likes    int    `db:"likes" json:"likes"`
}
