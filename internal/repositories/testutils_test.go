package repositories_test

import (
	"context"
	"testing"

	"github.com/mkarvon/sleuthline/internal/db"

	_ "embed"
)

//go:embed testdata/fixtures.sql
var testFixtures string

// newTestDB creates a new in-memory database with test fixtures.
func newTestDB(t *testing.T) *db.DBs {
	t.Helper()
	var (
		dbs *db.DBs
		err error
	)

	if dbs, err = db.NewDB(context.Background(), ":memory:"); err != nil {
		t.Fatal(err)
	}

	if _, err = dbs.ReadWrite.Exec(testFixtures); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if err = dbs.Close(); err != nil {
			t.Fatal(err)
		}
	})

	return dbs
}
