package persistence

import (
	"context"
	"errors"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
)

type postgresProjectRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProjectRepo(db *pgxpool.Pool, logger logger.Logger) project.Repository {
	return &postgresProjectRepo{db: db, logger: logger}
}

const projectColumns = "id, title, description, links, profile_id"

func scanProject(row pgx.Row) (*project.Project, error) {
	p := &project.Project{}
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Links, &p.ProfileID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("project", "")
		}
		return nil, apperror.NewInternal("failed to scan project row", err)
	}
	return p, nil
}

func scanProjects(rows pgx.Rows) ([]*project.Project, error) {
	defer rows.Close()
	projects := make([]*project.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating project rows", err)
	}
	return projects, nil
}

func (r *postgresProjectRepo) query(ctx context.Context, builder sq.SelectBuilder) ([]*project.Project, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build project query", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query projects", err)
	}
	return scanProjects(rows)
}

func (r *postgresProjectRepo) Create(ctx context.Context, p *project.Project) error {
	query := `
		INSERT INTO projects (title, description, links, profile_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if err := r.db.QueryRow(ctx, query, p.Title, p.Description, p.Links, p.ProfileID).Scan(&p.ID); err != nil {
		return apperror.NewInternal("failed to save project", err)
	}
	return nil
}

func (r *postgresProjectRepo) FindByID(ctx context.Context, id int64) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	p, err := scanProject(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("project", strconv.FormatInt(id, 10))
	}
	return p, err
}

// List narrows to projects whose owning profile has a skill matching
// f.SkillName (case-insensitive substring) when one is given.
func (r *postgresProjectRepo) List(ctx context.Context, f project.Filter) ([]*project.Project, error) {
	builder := psql.Select(projectColumns).From("projects")

	if f.SkillName != "" {
		builder = builder.Where(sq.Expr(
			`EXISTS (SELECT 1 FROM skills s WHERE s.profile_id = projects.profile_id AND s.name ILIKE ?)`,
			containsPattern(f.SkillName),
		))
	}

	order := "id ASC"
	if f.NewestFirst {
		order = "id DESC"
	}
	builder = builder.
		OrderBy(order).
		Limit(uint64(f.Page.Limit)).
		Offset(uint64(f.Page.Offset))
	return r.query(ctx, builder)
}

func (r *postgresProjectRepo) ListByProfile(ctx context.Context, profileID int64) ([]*project.Project, error) {
	builder := psql.Select(projectColumns).
		From("projects").
		Where(sq.Eq{"profile_id": profileID}).
		OrderBy("id ASC")
	return r.query(ctx, builder)
}

func (r *postgresProjectRepo) Update(ctx context.Context, p *project.Project) error {
	query := `UPDATE projects SET title = $2, description = $3, links = $4 WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, p.ID, p.Title, p.Description, p.Links)
	if err != nil {
		return apperror.NewInternal("failed to update project", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("project", strconv.FormatInt(p.ID, 10))
	}
	return nil
}

func (r *postgresProjectRepo) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete project", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("project", strconv.FormatInt(id, 10))
	}
	return nil
}
