package persistence

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

const profileColumns = "id, name, email, education, github, linkedin"

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Education, &p.Github, &p.Linkedin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", "")
		}
		return nil, apperror.NewInternal("failed to scan profile row", err)
	}
	return p, nil
}

// Create holds a lock on profiles between the existence check and the insert
// so two concurrent creates cannot both succeed.
func (r *postgresProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `LOCK TABLE profiles IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return apperror.NewInternal("failed to lock profiles", err)
		}

		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM profiles)`).Scan(&exists); err != nil {
			return apperror.NewInternal("failed to check existing profile", err)
		}
		if exists {
			return apperror.NewAlreadyExists("profile")
		}

		query := `
			INSERT INTO profiles (name, email, education, github, linkedin)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		return tx.QueryRow(ctx, query, p.Name, p.Email, p.Education, p.Github, p.Linkedin).Scan(&p.ID)
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return err
		}
		if isUniqueViolation(err) {
			return apperror.NewConflict("profile", "email", p.Email)
		}
		return apperror.NewInternal("failed to create profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) First(ctx context.Context) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY id LIMIT 1`
	return scanProfile(r.db.QueryRow(ctx, query))
}

func (r *postgresProfileRepo) Update(ctx context.Context, p *profile.Profile) error {
	query := `
		UPDATE profiles SET
			name = $2, email = $3, education = $4, github = $5, linkedin = $6
		WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, p.ID, p.Name, p.Email, p.Education, p.Github, p.Linkedin)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflict("profile", "email", p.Email)
		}
		return apperror.NewInternal("failed to update profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", strconv.FormatInt(p.ID, 10))
	}
	return nil
}

// Delete relies on ON DELETE CASCADE to remove skills, projects and work.
func (r *postgresProfileRepo) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", strconv.FormatInt(id, 10))
	}
	return nil
}
