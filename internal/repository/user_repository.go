package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"notes-service/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (int, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	ListWithNotes(ctx context.Context) ([]model.User, error)
	RenameByUsername(ctx context.Context, username, name string) (*model.User, error)
	Delete(ctx context.Context, id int) error
}

type postgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) (int, error) {
	query := `INSERT INTO users (username, name, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query, user.Username, user.Name, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

func (r *postgresUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	query := `SELECT id, username, name, password_hash, created_at, updated_at FROM users WHERE username = $1`
	err := r.db.GetContext(ctx, &user, query, username)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	var user model.User
	query := `SELECT id, username, name, password_hash, created_at, updated_at FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// ListWithNotes returns every user with their owned notes attached. Two
// queries instead of a joined scan keeps the row mapping simple.
func (r *postgresUserRepository) ListWithNotes(ctx context.Context) ([]model.User, error) {
	var users []model.User
	query := `SELECT id, username, name, password_hash, created_at, updated_at FROM users ORDER BY id`
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, err
	}

	var notes []model.Note
	notesQuery := `SELECT id, content, author, important, likes, date, user_id FROM notes WHERE user_id IS NOT NULL ORDER BY id`
	if err := r.db.SelectContext(ctx, &notes, notesQuery); err != nil {
		return nil, err
	}

	byOwner := make(map[int][]model.Note, len(users))
	for _, n := range notes {
		byOwner[*n.UserID] = append(byOwner[*n.UserID], n)
	}
	for i := range users {
		if owned := byOwner[users[i].ID]; owned != nil {
			users[i].Notes = owned
		} else {
			users[i].Notes = []model.Note{}
		}
	}

	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (r *postgresUserRepository) RenameByUsername(ctx context.Context, username, name string) (*model.User, error) {
	var user model.User
	query := `UPDATE users SET name = $1, updated_at = now() WHERE username = $2 RETURNING id, username, name, password_hash, created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query, name, username).StructScan(&user)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}
