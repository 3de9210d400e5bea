package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"entgo.io/ent/dialect"
)

const (
	cardsTable = "cards"

	colID        = "id"
	colName      = "name"
	colCompany   = "company"
	colPhone     = "phone"
	colEmail     = "email"
	colWebsite   = "website"
	colCity      = "city"
	colIsDeleted = "is_deleted"
	colCreatedAt = "created_at"
	colUpdatedAt = "updated_at"
)

// cardColumns is the select order scanCard expects.
var cardColumns = []string{
	colID, colName, colCompany, colPhone, colEmail, colWebsite, colCity,
	colIsDeleted, colCreatedAt, colUpdatedAt,
}

type columnTypes struct {
	id, text, boolean, timestamp string
}

func typesFor(d string) columnTypes {
	if d == dialect.Postgres {
		return columnTypes{id: "uuid", text: "text", boolean: "boolean", timestamp: "timestamptz"}
	}
	return columnTypes{id: "text", text: "text", boolean: "boolean", timestamp: "datetime"}
}

// Migrate creates the cards table and its listing index when missing.
func Migrate(ctx context.Context, db *DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	d := db.Dialect()
	t := typesFor(d)

	stmts := []string{
		createCardsTable(t),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS cards_is_deleted_created_at ON %s (%s, %s)",
			cardsTable, colIsDeleted, colCreatedAt),
	}
	for _, stmt := range stmts {
		if _, err := db.SQL().ExecContext(ctx, stmt); err != nil {
			logger.Error("migration failed", "statement", stmt, "error", err)
			return fmt.Errorf("migrate: %w", err)
		}
	}
	logger.Info("database schema up to date", "dialect", d)
	return nil
}

func createCardsTable(t columnTypes) string {
	text := func(name, def string) string {
		return fmt.Sprintf("%s %s NOT NULL DEFAULT '%s'", name, t.text, def)
	}
	cols := []string{
		fmt.Sprintf("%s %s NOT NULL", colID, t.id),
		text(colName, ""),
		text(colCompany, ""),
		text(colPhone, ""),
		text(colEmail, ""),
		text(colWebsite, "-"),
		text(colCity, ""),
		fmt.Sprintf("%s %s NOT NULL DEFAULT FALSE", colIsDeleted, t.boolean),
		fmt.Sprintf("%s %s NOT NULL", colCreatedAt, t.timestamp),
		fmt.Sprintf("%s %s NULL", colUpdatedAt, t.timestamp),
		fmt.Sprintf("PRIMARY KEY (%s)", colID),
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", cardsTable, strings.Join(cols, ", "))
}
