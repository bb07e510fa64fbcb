package repository

import (
	"context"
	"database/sql"
	"fmt"

	"goaltrack/internal/models"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id int) (*models.Article, error)
	ListAll(ctx context.Context) ([]models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id int) error
}

type articleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, query, article.Title, article.Content, article.CreatedAt, article.UpdatedAt).Scan(&article.ID)
}

func (r *articleRepository) GetByID(ctx context.Context, id int) (*models.Article, error) {
	query := `
		SELECT id, title, content, created_at, updated_at
		FROM articles
		WHERE id = $1
	`

	var a models.Article
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("article not found")
		}
		return nil, err
	}
	return &a, nil
}

func (r *articleRepository) ListAll(ctx context.Context) ([]models.Article, error) {
	query := `
		SELECT id, title, content, created_at, updated_at
		FROM articles
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	return articles, rows.Err()
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	query := `
		UPDATE articles
		SET title = $1, content = $2, updated_at = $3
		WHERE id = $4
	`

	res, err := r.db.ExecContext(ctx, query, article.Title, article.Content, article.UpdatedAt, article.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("article not found")
	}
	return nil
}

func (r *articleRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("article not found")
	}
	return nil
}
