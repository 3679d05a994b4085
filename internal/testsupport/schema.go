package testsupport

import (
	"context"
	"database/sql"
	"testing"

	repository "delphi/internal/repository/postgres"
)

// ddlExecer matches *sqlx.DB and *sqlx.Tx.
type ddlExecer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// EnsureSchema applies the analytics DDL on the given connection or
// transaction, failing the test on error.
func EnsureSchema(t *testing.T, db ddlExecer) {
	t.Helper()

	if _, err := db.ExecContext(context.Background(), repository.SchemaDDL); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
}
