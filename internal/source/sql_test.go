package source

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSQLite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stats.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE stats (name TEXT PRIMARY KEY, value REAL, note TEXT);
		INSERT INTO stats VALUES ('cpu', 0.75, 'busy'), ('jobs', 12, NULL);
	`)
	require.NoError(t, err)
	return path
}

func TestSQLite_Read(t *testing.T) {
	path := seedSQLite(t)

	tests := []struct {
		name    string
		query   string
		want    string
		wantErr string
	}{
		{name: "real", query: "SELECT value FROM stats WHERE name = 'cpu'", want: "0.75"},
		{name: "integral real", query: "SELECT value FROM stats WHERE name = 'jobs'", want: "12"},
		{name: "integer", query: "SELECT count(*) FROM stats", want: "2"},
		{name: "text", query: "SELECT note FROM stats WHERE name = 'cpu'", want: "busy"},
		{name: "null", query: "SELECT note FROM stats WHERE name = 'jobs'", wantErr: "NULL"},
		{name: "no rows", query: "SELECT value FROM stats WHERE name = 'disk'", wantErr: "no rows"},
		{name: "bad sql", query: "SELEKT 1", wantErr: "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &SQLite{Path: path, Query: tt.query}
			defer s.Close()

			text, err := s.Read(context.Background())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestSQLite_ReadOnly(t *testing.T) {
	path := seedSQLite(t)
	s := &SQLite{Path: path, Query: "DELETE FROM stats RETURNING name"}
	defer s.Close()

	_, err := s.Read(context.Background())
	require.Error(t, err)

	// Rows are still there.
	s2 := &SQLite{Path: path, Query: "SELECT count(*) FROM stats"}
	defer s2.Close()
	text, err := s2.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2", text)
}

func TestSQLite_CloseIdempotent(t *testing.T) {
	s := &SQLite{Path: seedSQLite(t), Query: "SELECT 1"}
	_, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestTextQuery(t *testing.T) {
	assert.Equal(t, "SELECT (SELECT 1)::text", textQuery("SELECT 1;"))
	assert.Equal(t, "SELECT (SELECT count(*) FROM jobs)::text", textQuery("  SELECT count(*) FROM jobs ;\n"))
}

func TestPostgres_Read(t *testing.T) {
	dsn := os.Getenv("BEACON_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("BEACON_TEST_PG_DSN not set")
	}

	p := &Postgres{DSN: dsn, Query: "SELECT 40 + 2"}
	defer p.Close()

	text, err := p.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "42", text)

	p.Query = "SELECT NULL::int"
	_, err = p.Read(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NULL")
}

func TestPostgres_BadDSN(t *testing.T) {
	p := &Postgres{DSN: "postgres://%zz", Query: "SELECT 1"}
	_, err := p.Read(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid postgres DSN")
}
