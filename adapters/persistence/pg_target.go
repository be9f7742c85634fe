package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/me-api/internal/domain/portfolio"
	"github.com/khoahotran/me-api/pkg/logger"
)

// Tables in parent-to-child order. Deletes walk it backwards.
var portfolioTables = []string{"profiles", "skills", "projects", "work"}

type postgresTarget struct {
	db     *pgxpool.Pool
	dsn    string
	logger logger.Logger
}

func NewPostgresTarget(ctx context.Context, dsn string, log logger.Logger) (portfolio.Target, error) {
	pool, err := NewPostgresPool(ctx, dsn, log)
	if err != nil {
		return nil, err
	}
	return &postgresTarget{db: pool, dsn: dsn, logger: log}, nil
}

func (t *postgresTarget) EnsureSchema(ctx context.Context) error {
	return RunMigrations(t.dsn, t.logger)
}

func (t *postgresTarget) Reset(ctx context.Context) error {
	return pgx.BeginFunc(ctx, t.db, func(tx pgx.Tx) error {
		for i := len(portfolioTables) - 1; i >= 0; i-- {
			tag, err := tx.Exec(ctx, "DELETE FROM "+portfolioTables[i])
			if err != nil {
				return fmt.Errorf("clear %s: %w", portfolioTables[i], err)
			}
			t.logger.Info("Cleared target table", zap.String("table", portfolioTables[i]), zap.Int64("rows", tag.RowsAffected()))
		}
		return nil
	})
}

func (t *postgresTarget) Counts(ctx context.Context) (portfolio.Counts, error) {
	var c portfolio.Counts
	err := t.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM profiles),
			(SELECT COUNT(*) FROM skills),
			(SELECT COUNT(*) FROM projects),
			(SELECT COUNT(*) FROM work)
	`).Scan(&c.Profiles, &c.Skills, &c.Projects, &c.Work)
	if err != nil {
		return c, fmt.Errorf("count target rows: %w", err)
	}
	return c, nil
}

// Load copies the snapshot in a single transaction, keeping source ids.
func (t *postgresTarget) Load(ctx context.Context, s *portfolio.Snapshot) error {
	return pgx.BeginFunc(ctx, t.db, func(tx pgx.Tx) error {
		profiles := make([][]any, 0, len(s.Profiles))
		for _, p := range s.Profiles {
			profiles = append(profiles, []any{p.ID, p.Name, p.Email, p.Education, p.Github, p.Linkedin})
		}
		if err := copyRows(ctx, tx, "profiles", []string{"id", "name", "email", "education", "github", "linkedin"}, profiles); err != nil {
			return err
		}

		skills := make([][]any, 0, len(s.Skills))
		for _, sk := range s.Skills {
			skills = append(skills, []any{sk.ID, sk.Name, sk.Proficiency, sk.ProfileID})
		}
		if err := copyRows(ctx, tx, "skills", []string{"id", "name", "proficiency", "profile_id"}, skills); err != nil {
			return err
		}

		projects := make([][]any, 0, len(s.Projects))
		for _, p := range s.Projects {
			projects = append(projects, []any{p.ID, p.Title, p.Description, p.Links, p.ProfileID})
		}
		if err := copyRows(ctx, tx, "projects", []string{"id", "title", "description", "links", "profile_id"}, projects); err != nil {
			return err
		}

		items := make([][]any, 0, len(s.Work))
		for _, w := range s.Work {
			items = append(items, []any{w.ID, w.Company, w.Role, w.StartDate, w.EndDate, w.Description, w.ProfileID})
		}
		return copyRows(ctx, tx, "work", []string{"id", "company", "role", "start_date", "end_date", "description", "profile_id"}, items)
	})
}

func copyRows(ctx context.Context, tx pgx.Tx, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy %s: %w", table, err)
	}
	if int(n) != len(rows) {
		return fmt.Errorf("copy %s: wrote %d of %d rows", table, n, len(rows))
	}
	return nil
}

// ResyncSequences points each serial sequence at MAX(id)+1, or 1 for an empty table.
func (t *postgresTarget) ResyncSequences(ctx context.Context) error {
	for _, table := range portfolioTables {
		query := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)`,
			table,
		)
		if _, err := t.db.Exec(ctx, query); err != nil {
			return fmt.Errorf("resync %s sequence: %w", table, err)
		}
	}
	return nil
}

func (t *postgresTarget) Close() error {
	t.db.Close()
	return nil
}
