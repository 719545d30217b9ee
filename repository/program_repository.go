package repository

import (
	"context"
	"database/sql"
	"time"

	"anganwadi/model"
)

// ProgramRepository defines the persistence operations for program records.
type ProgramRepository interface {
	// CreateProgram persists a new program and returns its assigned id.
	CreateProgram(ctx context.Context, program *model.Program) (int64, error)

	// GetAllPrograms returns all programs, newest first.
	GetAllPrograms(ctx context.Context) ([]*model.Program, error)

	// GetProgramByID returns the program with the given id, or nil when absent.
	GetProgramByID(ctx context.Context, id int64) (*model.Program, error)

	// UpdateProgram overwrites the mutable fields of an existing program.
	UpdateProgram(ctx context.Context, program *model.Program) error

	// DeleteProgram removes the program with the given id.
	DeleteProgram(ctx context.Context, id int64) error

	// CountPrograms returns the total number of programs.
	CountPrograms(ctx context.Context) (int64, error)

	// GetLatestProgram returns the most recently created program, or nil
	// when the store is empty.
	GetLatestProgram(ctx context.Context) (*model.Program, error)
}

// MySQLProgramRepository is the MySQL implementation of ProgramRepository.
type MySQLProgramRepository struct {
	db *sql.DB
}

// NewMySQLProgramRepository creates a new MySQL program repository.
func NewMySQLProgramRepository(db *sql.DB) *MySQLProgramRepository {
	return &MySQLProgramRepository{db: db}
}

func (r *MySQLProgramRepository) CreateProgram(ctx context.Context, program *model.Program) (int64, error) {
	query := `
		INSERT INTO programs (title, description, date, time, image, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if program.CreatedAt.IsZero() {
		program.CreatedAt = time.Now()
	}

	result, err := r.db.ExecContext(ctx, query,
		program.Title,
		program.Description,
		program.Date,
		program.Time,
		program.Image,
		program.CreatedAt,
	)
	if err != nil {
		return 0, err
	}

	return result.LastInsertId()
}

func (r *MySQLProgramRepository) GetAllPrograms(ctx context.Context) ([]*model.Program, error) {
	query := `
		SELECT id, title, description, date, time, image, created_at
		FROM programs
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []*model.Program
	for rows.Next() {
		program := &model.Program{}
		if err := rows.Scan(
			&program.ID,
			&program.Title,
			&program.Description,
			&program.Date,
			&program.Time,
			&program.Image,
			&program.CreatedAt,
		); err != nil {
			return nil, err
		}
		programs = append(programs, program)
	}

	return programs, rows.Err()
}

func (r *MySQLProgramRepository) GetProgramByID(ctx context.Context, id int64) (*model.Program, error) {
	query := `
		SELECT id, title, description, date, time, image, created_at
		FROM programs
		WHERE id = ?
	`

	program := &model.Program{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&program.ID,
		&program.Title,
		&program.Description,
		&program.Date,
		&program.Time,
		&program.Image,
		&program.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return program, nil
}

func (r *MySQLProgramRepository) UpdateProgram(ctx context.Context, program *model.Program) error {
	query := `
		UPDATE programs
		SET title = ?, description = ?, date = ?, time = ?, image = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		program.Title,
		program.Description,
		program.Date,
		program.Time,
		program.Image,
		program.ID,
	)
	return err
}

func (r *MySQLProgramRepository) DeleteProgram(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM programs WHERE id = ?`, id)
	return err
}

func (r *MySQLProgramRepository) CountPrograms(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM programs`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MySQLProgramRepository) GetLatestProgram(ctx context.Context) (*model.Program, error) {
	query := `
		SELECT id, title, description, date, time, image, created_at
		FROM programs
		ORDER BY created_at DESC
		LIMIT 1
	`

	program := &model.Program{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&program.ID,
		&program.Title,
		&program.Description,
		&program.Date,
		&program.Time,
		&program.Image,
		&program.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return program, nil
}
