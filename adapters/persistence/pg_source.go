package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/me-api/internal/domain/portfolio"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
)

type postgresSource struct {
	db *pgxpool.Pool
}

// NewPostgresSource reads a snapshot from another PostgreSQL deployment.
func NewPostgresSource(ctx context.Context, dsn string, log logger.Logger) (portfolio.Source, error) {
	pool, err := NewPostgresPool(ctx, dsn, log)
	if err != nil {
		return nil, err
	}
	return &postgresSource{db: pool}, nil
}

func (s *postgresSource) Snapshot(ctx context.Context) (*portfolio.Snapshot, error) {
	snap := &portfolio.Snapshot{}

	err := pgx.BeginTxFunc(ctx, s.db, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY id`)
		if err != nil {
			return apperror.NewInternal("failed to read profiles", err)
		}
		defer rows.Close()
		for rows.Next() {
			p, err := scanProfile(rows)
			if err != nil {
				return err
			}
			snap.Profiles = append(snap.Profiles, p)
		}
		if err := rows.Err(); err != nil {
			return apperror.NewInternal("error iterating profile rows", err)
		}

		if rows, err = tx.Query(ctx, `SELECT `+skillColumns+` FROM skills ORDER BY id`); err != nil {
			return apperror.NewInternal("failed to read skills", err)
		}
		if snap.Skills, err = scanSkills(rows); err != nil {
			return err
		}

		if rows, err = tx.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id`); err != nil {
			return apperror.NewInternal("failed to read projects", err)
		}
		if snap.Projects, err = scanProjects(rows); err != nil {
			return err
		}

		if rows, err = tx.Query(ctx, `SELECT `+workColumns+` FROM work ORDER BY id`); err != nil {
			return apperror.NewInternal("failed to read work", err)
		}
		defer rows.Close()
		for rows.Next() {
			w, err := scanWork(rows)
			if err != nil {
				return err
			}
			snap.Work = append(snap.Work, w)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("read postgres snapshot: %w", err)
	}
	return snap, nil
}

func (s *postgresSource) Close() error {
	s.db.Close()
	return nil
}
