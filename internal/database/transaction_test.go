package database

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
)

func TestWithTxRollback(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO tasks (id, title, created_at) VALUES (?, ?, ?)",
			"tx-rollback", "Tx", "2024-01-01T00:00:00.000Z"); err != nil {
			return err
		}
		return fmt.Errorf("force rollback")
	})
	if err == nil {
		t.Fatalf("expected error from WithTx")
	}

	var count int
	if err := db.DB.QueryRowContext(ctx, "SELECT COUNT(1) FROM tasks WHERE id = ?", "tx-rollback").Scan(&count); err != nil {
		t.Fatalf("query count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to remove task, got count %d", count)
	}
}

func TestWithTxCommit(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO tasks (id, title, created_at) VALUES (?, ?, ?)",
			"tx-commit", "Tx", "2024-01-01T00:00:00.000Z")
		return err
	})
	if err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}
	if _, err := db.GetTask(ctx, "tx-commit"); err != nil {
		t.Fatalf("GetTask after commit failed: %v", err)
	}
}
