package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"notes-service/internal/model"
)

type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) (*model.Note, error)
	FindByID(ctx context.Context, id int) (*model.Note, error)
	List(ctx context.Context, filter NoteFilter) ([]model.Note, error)
	Update(ctx context.Context, note *model.Note) (*model.Note, error)
	Delete(ctx context.Context, id int) error
	AuthorStats(ctx context.Context) ([]model.AuthorStat, error)
}

type postgresNoteRepository struct {
	db *sqlx.DB
}

func NewPostgresNoteRepository(db *sqlx.DB) NoteRepository {
	return &postgresNoteRepository{db: db}
}

func (r *postgresNoteRepository) Create(ctx context.Context, note *model.Note) (*model.Note, error) {
	query := `
		INSERT INTO notes (content, author, important, likes, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, date
	`

	row := r.db.QueryRowxContext(ctx, query, note.Content, note.Author, note.Important, note.Likes, note.UserID)
	err := row.Scan(&note.ID, &note.Date)

	if err != nil {
		return nil, err
	}

	return note, nil
}

func (r *postgresNoteRepository) FindByID(ctx context.Context, id int) (*model.Note, error) {
	var note model.Note
	query := `
		SELECT n.id, n.content, n.author, n.important, n.likes, n.date, n.user_id, u.name AS owner_name
		FROM notes n
		LEFT JOIN users u ON n.user_id = u.id
		WHERE n.id = $1
	`
	err := r.db.GetContext(ctx, &note, query, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &note, nil
}

func (r *postgresNoteRepository) List(ctx context.Context, filter NoteFilter) ([]model.Note, error) {
	query := `
		SELECT n.id, n.content, n.author, n.important, n.likes, n.date, n.user_id, u.name AS owner_name
		FROM notes n
		LEFT JOIN users u ON n.user_id = u.id
	`

	where, args := filter.whereClause()
	query += where + filter.orderClause()

	var notes []model.Note
	if err := r.db.SelectContext(ctx, &notes, query, args...); err != nil {
		return nil, err
	}

	if notes == nil {
		notes = []model.Note{}
	}
	return notes, nil
}

func (r *postgresNoteRepository) Update(ctx context.Context, note *model.Note) (*model.Note, error) {
	query := `
		UPDATE notes SET important = $1, likes = $2
		WHERE id = $3
		RETURNING id, content, author, important, likes, date, user_id
	`
	var updated model.Note
	err := r.db.QueryRowxContext(ctx, query, note.Important, note.Likes, note.ID).StructScan(&updated)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &updated, nil
}

func (r *postgresNoteRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	return err
}

// AuthorStats aggregates notes per author at the store, never loading the
// full table into memory.
func (r *postgresNoteRepository) AuthorStats(ctx context.Context) ([]model.AuthorStat, error) {
	query := `
		SELECT author, COUNT(*) AS articles, COALESCE(SUM(likes), 0) AS likes
		FROM notes
		GROUP BY author
		ORDER BY likes DESC
	`
	var stats []model.AuthorStat
	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, err
	}

	if stats == nil {
		stats = []model.AuthorStat{}
	}
	return stats, nil
}
