package migrate

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/me-api/adapters/persistence"
	"github.com/khoahotran/me-api/internal/domain/portfolio"
	"github.com/khoahotran/me-api/pkg/logger"
)

func TestRun_FromLegacySQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meapi.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	for _, q := range []string{
		`CREATE TABLE profiles (id INTEGER PRIMARY KEY, name TEXT, email TEXT, education TEXT, github TEXT, linkedin TEXT)`,
		`CREATE TABLE skills (id INTEGER PRIMARY KEY, name TEXT, proficiency TEXT, profile_id INTEGER)`,
		`CREATE TABLE projects (id INTEGER PRIMARY KEY, title TEXT, description TEXT, links JSON, profile_id INTEGER)`,
		`CREATE TABLE work (id INTEGER PRIMARY KEY, company TEXT, role TEXT, start_date TEXT, end_date TEXT, description TEXT, profile_id INTEGER)`,
		`INSERT INTO profiles VALUES (1, 'Ada', 'ada@example.com', 'Cambridge', NULL, NULL)`,
		`INSERT INTO skills VALUES (4, 'Go', 'expert', 1)`,
		`INSERT INTO projects VALUES (6, 'api', 'backend', '{"link":"https://x.dev"}', 1)`,
	} {
		_, err := db.Exec(q)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	dst := &fakeTarget{}
	uc := NewMigrateUseCase(
		func(_ context.Context, url string) (portfolio.Source, error) { return persistence.NewSQLiteSource(url) },
		func(context.Context, string) (portfolio.Target, error) { return dst, nil },
		logger.NewNop(),
	)

	counts, err := uc.Run(context.Background(), RunInput{SourceURL: "sqlite:///" + path, TargetURL: "postgres://u@h/db"})
	require.NoError(t, err)
	assert.Equal(t, portfolio.Counts{Profiles: 1, Skills: 1, Projects: 1}, counts)
	require.NotNil(t, dst.loaded)
	assert.Equal(t, int64(4), dst.loaded.Skills[0].ID)
	assert.Equal(t, "https://x.dev", dst.loaded.Projects[0].URL())
}
