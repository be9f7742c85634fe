package persistence

import (
	"context"
	"errors"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/me-api/internal/domain/page"
	"github.com/khoahotran/me-api/internal/domain/work"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
)

type postgresWorkRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresWorkRepo(db *pgxpool.Pool, logger logger.Logger) work.Repository {
	return &postgresWorkRepo{db: db, logger: logger}
}

const workColumns = "id, company, role, start_date, end_date, description, profile_id"

func scanWork(row pgx.Row) (*work.Work, error) {
	w := &work.Work{}
	err := row.Scan(&w.ID, &w.Company, &w.Role, &w.StartDate, &w.EndDate, &w.Description, &w.ProfileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("work", "")
		}
		return nil, apperror.NewInternal("failed to scan work row", err)
	}
	return w, nil
}

func (r *postgresWorkRepo) query(ctx context.Context, builder sq.SelectBuilder) ([]*work.Work, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build work query", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query work", err)
	}
	defer rows.Close()

	items := make([]*work.Work, 0)
	for rows.Next() {
		w, err := scanWork(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating work rows", err)
	}
	return items, nil
}

func (r *postgresWorkRepo) Create(ctx context.Context, w *work.Work) error {
	query := `
		INSERT INTO work (company, role, start_date, end_date, description, profile_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		w.Company, w.Role, w.StartDate, w.EndDate, w.Description, w.ProfileID,
	).Scan(&w.ID)
	if err != nil {
		return apperror.NewInternal("failed to save work", err)
	}
	return nil
}

func (r *postgresWorkRepo) FindByID(ctx context.Context, id int64) (*work.Work, error) {
	query := `SELECT ` + workColumns + ` FROM work WHERE id = $1`
	w, err := scanWork(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("work", strconv.FormatInt(id, 10))
	}
	return w, err
}

func (r *postgresWorkRepo) List(ctx context.Context, p page.Page) ([]*work.Work, error) {
	builder := psql.Select(workColumns).
		From("work").
		OrderBy("id ASC").
		Limit(uint64(p.Limit)).
		Offset(uint64(p.Offset))
	return r.query(ctx, builder)
}

func (r *postgresWorkRepo) ListByProfile(ctx context.Context, profileID int64) ([]*work.Work, error) {
	builder := psql.Select(workColumns).
		From("work").
		Where(sq.Eq{"profile_id": profileID}).
		OrderBy("id ASC")
	return r.query(ctx, builder)
}

func (r *postgresWorkRepo) Update(ctx context.Context, w *work.Work) error {
	query := `
		UPDATE work SET
			company = $2, role = $3, start_date = $4, end_date = $5, description = $6
		WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, w.ID, w.Company, w.Role, w.StartDate, w.EndDate, w.Description)
	if err != nil {
		return apperror.NewInternal("failed to update work", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("work", strconv.FormatInt(w.ID, 10))
	}
	return nil
}

func (r *postgresWorkRepo) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM work WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete work", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("work", strconv.FormatInt(id, 10))
	}
	return nil
}
