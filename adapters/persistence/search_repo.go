package persistence

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/me-api/internal/domain/search"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
)

type postgresSearchRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSearchRepo(db *pgxpool.Pool, logger logger.Logger) search.Repository {
	return &postgresSearchRepo{db: db, logger: logger}
}

func (r *postgresSearchRepo) Search(ctx context.Context, q string) (*search.Results, error) {
	res := &search.Results{}
	if q == "" {
		return res, nil
	}
	pattern := containsPattern(q)

	skillSQL, skillArgs, err := psql.Select(skillColumns).
		From("skills").
		Where(sq.ILike{"name": pattern}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build skill search query", err)
	}
	rows, err := r.db.Query(ctx, skillSQL, skillArgs...)
	if err != nil {
		return nil, apperror.NewInternal("failed to search skills", err)
	}
	if res.Skills, err = scanSkills(rows); err != nil {
		return nil, err
	}

	projectSQL, projectArgs, err := psql.Select(projectColumns).
		From("projects").
		Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
		}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build project search query", err)
	}
	rows, err = r.db.Query(ctx, projectSQL, projectArgs...)
	if err != nil {
		return nil, apperror.NewInternal("failed to search projects", err)
	}
	if res.Projects, err = scanProjects(rows); err != nil {
		return nil, err
	}

	r.logger.Debug("Search finished")
	return res, nil
}
