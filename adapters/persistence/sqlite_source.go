package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/khoahotran/me-api/internal/domain/portfolio"
	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/internal/domain/skill"
	"github.com/khoahotran/me-api/internal/domain/work"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/dburl"
)

type sqliteSource struct {
	db *sql.DB
}

// NewSQLiteSource opens an existing legacy database file. The file must exist,
// otherwise the driver would silently create an empty one.
func NewSQLiteSource(url string) (portfolio.Source, error) {
	path := dburl.SQLitePath(url)
	if path == "" {
		return nil, apperror.NewInvalidInput("sqlite source path is empty", nil)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("sqlite source %q is not readable", path), err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite source: %w", err)
	}
	return &sqliteSource{db: db}, nil
}

func (s *sqliteSource) Snapshot(ctx context.Context) (*portfolio.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin sqlite read: %w", err)
	}
	defer tx.Rollback()

	snap := &portfolio.Snapshot{}

	err = eachRow(ctx, tx, `SELECT id, name, email, education, github, linkedin FROM profiles ORDER BY id`,
		func(rows *sql.Rows) error {
			var p profile.Profile
			var github, linkedin sql.NullString
			if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Education, &github, &linkedin); err != nil {
				return err
			}
			p.Github, p.Linkedin = nullableString(github), nullableString(linkedin)
			snap.Profiles = append(snap.Profiles, &p)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}

	err = eachRow(ctx, tx, `SELECT id, name, proficiency, profile_id FROM skills ORDER BY id`,
		func(rows *sql.Rows) error {
			var sk skill.Skill
			if err := rows.Scan(&sk.ID, &sk.Name, &sk.Proficiency, &sk.ProfileID); err != nil {
				return err
			}
			snap.Skills = append(snap.Skills, &sk)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("read skills: %w", err)
	}

	err = eachRow(ctx, tx, `SELECT id, title, description, links, profile_id FROM projects ORDER BY id`,
		func(rows *sql.Rows) error {
			var p project.Project
			var links sql.NullString
			if err := rows.Scan(&p.ID, &p.Title, &p.Description, &links, &p.ProfileID); err != nil {
				return err
			}
			if links.Valid && links.String != "" {
				if err := json.Unmarshal([]byte(links.String), &p.Links); err != nil {
					return fmt.Errorf("project %d links: %w", p.ID, err)
				}
			}
			snap.Projects = append(snap.Projects, &p)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("read projects: %w", err)
	}

	err = eachRow(ctx, tx, `SELECT id, company, role, start_date, end_date, description, profile_id FROM work ORDER BY id`,
		func(rows *sql.Rows) error {
			var w work.Work
			var end, desc sql.NullString
			if err := rows.Scan(&w.ID, &w.Company, &w.Role, &w.StartDate, &end, &desc, &w.ProfileID); err != nil {
				return err
			}
			w.EndDate, w.Description = nullableString(end), nullableString(desc)
			snap.Work = append(snap.Work, &w)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("read work: %w", err)
	}

	return snap, nil
}

func (s *sqliteSource) Close() error {
	return s.db.Close()
}

func eachRow(ctx context.Context, tx *sql.Tx, query string, fn func(*sql.Rows) error) error {
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
