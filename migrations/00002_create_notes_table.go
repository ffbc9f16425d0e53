package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateNotesTable, downCreateNotesTable)
}

func upCreateNotesTable(ctx context.Context, tx *sql.Tx) error {
	// user_id is cleared, not cascaded, when the owning user is deleted.
	query := `
		CREATE TABLE notes (
			id SERIAL PRIMARY KEY,
			content TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			important BOOLEAN NOT NULL DEFAULT false,
			likes INT NOT NULL DEFAULT 0,
			date TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			user_id INT REFERENCES users(id) ON DELETE SET NULL
		);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateNotesTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS notes;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
