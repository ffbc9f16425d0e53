package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"notes-service/internal/model"
	repo "notes-service/internal/repository"
)

func TestPostgresUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (username, name, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`)).
		WithArgs("jami@example.com", "Jami Kousa", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))

	user := &model.User{Username: "jami@example.com", Name: "Jami Kousa", PasswordHash: "hash"}
	id, err := r.Create(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, 1, id)
	require.Equal(t, 1, user.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByUsername_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "username", "name", "password_hash", "created_at", "updated_at"}).
		AddRow(1, "jami@example.com", "Jami Kousa", "hash", now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, name, password_hash, created_at, updated_at FROM users WHERE username = $1`)).
		WithArgs("jami@example.com").WillReturnRows(rows)

	u, err := r.FindByUsername(context.Background(), "jami@example.com")
	require.NoError(t, err)
	require.Equal(t, "jami@example.com", u.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByUsername_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, name, password_hash, created_at, updated_at FROM users WHERE username = $1`)).
		WithArgs("missing@example.com").WillReturnError(sql.ErrNoRows)

	u, err := r.FindByUsername(context.Background(), "missing@example.com")
	require.NoError(t, err)
	require.Nil(t, u)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_ListWithNotes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	now := time.Now()
	userRows := sqlmock.NewRows([]string{"id", "username", "name", "password_hash", "created_at", "updated_at"}).
		AddRow(1, "jami@example.com", "Jami Kousa", "hash", now, now).
		AddRow(2, "kalle@example.com", "Kalle Ilves", "hash", now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, name, password_hash, created_at, updated_at FROM users ORDER BY id`)).
		WillReturnRows(userRows)

	noteRows := sqlmock.NewRows([]string{"id", "content", "author", "important", "likes", "date", "user_id"}).
		AddRow(1, "HTML is easy", "Jami Kousa", true, 4, now, 1)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, content, author, important, likes, date, user_id FROM notes WHERE user_id IS NOT NULL ORDER BY id`)).
		WillReturnRows(noteRows)

	users, err := r.ListWithNotes(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Len(t, users[0].Notes, 1)

	// a user without notes gets an empty list, not nil
	require.NotNil(t, users[1].Notes)
	require.Empty(t, users[1].Notes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_RenameByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "username", "name", "password_hash", "created_at", "updated_at"}).
		AddRow(1, "jami@example.com", "Jami K.", "hash", now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET name = $1, updated_at = now() WHERE username = $2`)).
		WithArgs("Jami K.", "jami@example.com").WillReturnRows(rows)

	u, err := r.RenameByUsername(context.Background(), "jami@example.com", "Jami K.")
	require.NoError(t, err)
	require.Equal(t, "Jami K.", u.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_RenameByUsername_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET name = $1, updated_at = now() WHERE username = $2`)).
		WithArgs("N.", "missing@example.com").WillReturnError(sql.ErrNoRows)

	u, err := r.RenameByUsername(context.Background(), "missing@example.com", "N.")
	require.NoError(t, err)
	require.Nil(t, u)
	require.NoError(t, mock.ExpectationsWereMet())
}
