package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"pawsitive-coach/internal/domain"
)

// ArticleRepository maneja la base de conocimiento de entrenamiento.
// Search usa distancia coseno sobre el embedding (pgvector).
type ArticleRepository interface {
	Create(ctx context.Context, article domain.Article) error
	Search(ctx context.Context, queryEmbedding pgvector.Vector, k int) ([]domain.Article, error)
}

type PgArticleRepository struct {
	pool *pgxpool.Pool
}

func NewPgArticleRepository(pool *pgxpool.Pool) *PgArticleRepository {
	return &PgArticleRepository{pool: pool}
}

func (r *PgArticleRepository) Create(ctx context.Context, article domain.Article) error {
	const query = `
		INSERT INTO kb_articles (id, title, topic, content, embedding, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		article.ID,
		article.Title,
		article.Topic,
		article.Content,
		article.Embedding,
		article.CreatedAt,
		article.UpdatedAt,
	)
	return err
}

func (r *PgArticleRepository) Search(ctx context.Context, queryEmbedding pgvector.Vector, k int) ([]domain.Article, error) {
	if k <= 0 {
		k = 3
	}
	const query = `
		SELECT id, title, topic, content, embedding, created_at, updated_at
		FROM kb_articles
		ORDER BY embedding <=> $1
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, queryEmbedding, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Topic,
			&a.Content,
			&a.Embedding,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
