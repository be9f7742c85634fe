package persistence

import (
	"context"
	"errors"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/me-api/internal/domain/page"
	"github.com/khoahotran/me-api/internal/domain/skill"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
)

type postgresSkillRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSkillRepo(db *pgxpool.Pool, logger logger.Logger) skill.Repository {
	return &postgresSkillRepo{db: db, logger: logger}
}

const skillColumns = "id, name, proficiency, profile_id"

func scanSkill(row pgx.Row) (*skill.Skill, error) {
	s := &skill.Skill{}
	if err := row.Scan(&s.ID, &s.Name, &s.Proficiency, &s.ProfileID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("skill", "")
		}
		return nil, apperror.NewInternal("failed to scan skill row", err)
	}
	return s, nil
}

func scanSkills(rows pgx.Rows) ([]*skill.Skill, error) {
	defer rows.Close()
	skills := make([]*skill.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating skill rows", err)
	}
	return skills, nil
}

func (r *postgresSkillRepo) query(ctx context.Context, builder sq.SelectBuilder) ([]*skill.Skill, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build skill query", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query skills", err)
	}
	return scanSkills(rows)
}

func (r *postgresSkillRepo) Create(ctx context.Context, s *skill.Skill) error {
	query := `
		INSERT INTO skills (name, proficiency, profile_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := r.db.QueryRow(ctx, query, s.Name, s.Proficiency, s.ProfileID).Scan(&s.ID); err != nil {
		return apperror.NewInternal("failed to save skill", err)
	}
	return nil
}

func (r *postgresSkillRepo) FindByID(ctx context.Context, id int64) (*skill.Skill, error) {
	query := `SELECT ` + skillColumns + ` FROM skills WHERE id = $1`
	s, err := scanSkill(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("skill", strconv.FormatInt(id, 10))
	}
	return s, err
}

func (r *postgresSkillRepo) List(ctx context.Context, p page.Page) ([]*skill.Skill, error) {
	builder := psql.Select(skillColumns).
		From("skills").
		OrderBy("id ASC").
		Limit(uint64(p.Limit)).
		Offset(uint64(p.Offset))
	return r.query(ctx, builder)
}

// Top orders case-insensitively, ties broken bytewise and then by id, so the
// result does not depend on the database collation.
func (r *postgresSkillRepo) Top(ctx context.Context, limit int) ([]*skill.Skill, error) {
	builder := psql.Select(skillColumns).
		From("skills").
		OrderBy(`LOWER(name) COLLATE "C" ASC`, `name COLLATE "C" ASC`, "id ASC").
		Limit(uint64(limit))
	return r.query(ctx, builder)
}

func (r *postgresSkillRepo) ListByProfile(ctx context.Context, profileID int64) ([]*skill.Skill, error) {
	builder := psql.Select(skillColumns).
		From("skills").
		Where(sq.Eq{"profile_id": profileID}).
		OrderBy("id ASC")
	return r.query(ctx, builder)
}

func (r *postgresSkillRepo) Update(ctx context.Context, s *skill.Skill) error {
	query := `UPDATE skills SET name = $2, proficiency = $3 WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, s.ID, s.Name, s.Proficiency)
	if err != nil {
		return apperror.NewInternal("failed to update skill", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("skill", strconv.FormatInt(s.ID, 10))
	}
	return nil
}

func (r *postgresSkillRepo) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete skill", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("skill", strconv.FormatInt(id, 10))
	}
	return nil
}
