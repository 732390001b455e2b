package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"faculty_api/internal/common"
	"faculty_api/internal/domain/model"
)

type TeacherRepository interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	FindByID(ctx context.Context, id int64) (*model.Teacher, error)
	// List returns every teacher ordered by id; a non-empty subjectSlug filters.
	List(ctx context.Context, subjectSlug string) ([]model.Teacher, error)
	Update(ctx context.Context, teacher *model.Teacher) error
	Delete(ctx context.Context, id int64) error
}

type pgTeacherRepository struct {
	db *sql.DB
}

func NewPgTeacherRepository(db *sql.DB) TeacherRepository {
	return &pgTeacherRepository{db: db}
}

const teacherColumns = `id, name, subject, subject_slug, gender, created_at, updated_at`

func (r *pgTeacherRepository) Create(ctx context.Context, t *model.Teacher) error {
	query := `INSERT INTO teachers (name, subject, subject_slug, gender)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, t.Name, t.Subject, t.SubjectSlug, t.Gender).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgTeacherRepository.Create: %w", err)
	}
	return nil
}

func (r *pgTeacherRepository) FindByID(ctx context.Context, id int64) (*model.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE id = $1`
	t := &model.Teacher{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Subject, &t.SubjectSlug, &t.Gender, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("pgTeacherRepository.FindByID: %w", err)
	}
	return t, nil
}

func (r *pgTeacherRepository) List(ctx context.Context, subjectSlug string) ([]model.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers`
	var args []interface{}
	if subjectSlug != "" {
		query += ` WHERE subject_slug = $1`
		args = append(args, subjectSlug)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgTeacherRepository.List: %w", err)
	}
	defer rows.Close()

	teachers := []model.Teacher{}
	for rows.Next() {
		var t model.Teacher
		if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.SubjectSlug, &t.Gender, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgTeacherRepository.List scan: %w", err)
		}
		teachers = append(teachers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTeacherRepository.List rows: %w", err)
	}
	return teachers, nil
}

func (r *pgTeacherRepository) Update(ctx context.Context, t *model.Teacher) error {
	query := `UPDATE teachers SET
	            name = $1, subject = $2, subject_slug = $3, gender = $4, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, t.Name, t.Subject, t.SubjectSlug, t.Gender, t.ID)
	if err != nil {
		return fmt.Errorf("pgTeacherRepository.Update: %w", err)
	}
	return expectOneRow(res, "pgTeacherRepository.Update")
}

func (r *pgTeacherRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgTeacherRepository.Delete: %w", err)
	}
	return expectOneRow(res, "pgTeacherRepository.Delete")
}

func expectOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return common.ErrTeacherNotFound
	}
	return nil
}
