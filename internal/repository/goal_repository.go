package repository

import (
	"context"
	"database/sql"
	"fmt"

	"goaltrack/internal/models"
)

type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) error
	GetByID(ctx context.Context, id string) (*models.Goal, error)
	ListByUser(ctx context.Context, userID string) ([]models.Goal, error)
	ListAllWithOwners(ctx context.Context) ([]models.Goal, error)
	Update(ctx context.Context, goal *models.Goal) error
	Delete(ctx context.Context, id string) error
}

type goalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *models.Goal) error {
	query := `
		INSERT INTO goals (id, user_id, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, goal.ID, goal.UserID, goal.Title, goal.Description, goal.Status, goal.CreatedAt, goal.UpdatedAt).Scan(&goal.CreatedAt)
	return err
}

func (r *goalRepository) GetByID(ctx context.Context, id string) (*models.Goal, error) {
	query := `
		SELECT id, user_id, title, description, status, created_at, updated_at
		FROM goals
		WHERE id = $1
	`

	var g models.Goal
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("goal not found")
		}
		return nil, err
	}
	return &g, nil
}

func (r *goalRepository) ListByUser(ctx context.Context, userID string) ([]models.Goal, error) {
	query := `
		SELECT id, user_id, title, description, status, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Status, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}

	return goals, rows.Err()
}

func (r *goalRepository) ListAllWithOwners(ctx context.Context) ([]models.Goal, error) {
	query := `
		SELECT g.id, g.user_id, g.title, g.description, g.status, g.created_at, g.updated_at,
		       u.id, u.name, u.email
		FROM goals g
		JOIN users u ON u.id = g.user_id
		ORDER BY g.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		var o models.GoalOwner
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Status, &g.CreatedAt, &g.UpdatedAt, &o.ID, &o.Name, &o.Email); err != nil {
			return nil, err
		}
		g.Owner = &o
		goals = append(goals, g)
	}

	return goals, rows.Err()
}

func (r *goalRepository) Update(ctx context.Context, goal *models.Goal) error {
	query := `
		UPDATE goals
		SET title = $1, description = $2, status = $3, updated_at = $4
		WHERE id = $5
	`

	res, err := r.db.ExecContext(ctx, query, goal.Title, goal.Description, goal.Status, goal.UpdatedAt, goal.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("goal not found")
	}
	return nil
}

func (r *goalRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("goal not found")
	}
	return nil
}
