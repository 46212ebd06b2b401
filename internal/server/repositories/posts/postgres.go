package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/devconnector/internal/common"
	"github.com/dmitrijs2005/devconnector/internal/dbx"
	"github.com/dmitrijs2005/devconnector/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	query :=
		`INSERT INTO posts (user_id, text, name, avatar)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, p.UserID, p.Text, p.Name, p.Avatar).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.Likes = []models.Like{}
	p.Comments = []models.Comment{}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Post, error) {
	query :=
		`SELECT id, user_id, text, name, avatar, created_at
		 FROM posts
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Post{}
	for rows.Next() {
		p := &models.Post{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := r.loadChildrenBatch(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Post, error) {
	query :=
		`SELECT id, user_id, text, name, avatar, created_at
		 FROM posts
		 WHERE id = $1
		 `

	p := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := r.loadChildren(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM posts WHERE id = $1`

	n, err := r.exec(ctx, query, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteByUserID(ctx context.Context, userID string) error {
	query := `DELETE FROM posts WHERE user_id = $1`

	_, err := r.exec(ctx, query, userID)
	return err
}

func (r *PostgresRepository) HasLike(ctx context.Context, postID, userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) AddLike(ctx context.Context, postID, userID string) (bool, error) {
	query :=
		`INSERT INTO post_likes (post_id, user_id)
		 VALUES ($1, $2)
		 ON CONFLICT (post_id, user_id) DO NOTHING
		 `

	n, err := r.exec(ctx, query, postID, userID)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *PostgresRepository) RemoveLike(ctx context.Context, postID, userID string) (bool, error) {
	query := `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`

	n, err := r.exec(ctx, query, postID, userID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresRepository) Likes(ctx context.Context, postID string) ([]models.Like, error) {
	query :=
		`SELECT user_id FROM post_likes
		 WHERE post_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Like{}
	for rows.Next() {
		var l models.Like
		if err := rows.Scan(&l.UserID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) AddComment(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	query :=
		`INSERT INTO post_comments (post_id, user_id, text, name, avatar)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, c.PostID, c.UserID, c.Text, c.Name, c.Avatar).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) GetComment(ctx context.Context, postID, commentID string) (*models.Comment, error) {
	query :=
		`SELECT id, post_id, user_id, text, name, avatar, created_at
		 FROM post_comments
		 WHERE post_id = $1 AND id = $2
		 `

	c := &models.Comment{}
	err := r.db.QueryRowContext(ctx, query, postID, commentID).
		Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.Name, &c.Avatar, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) DeleteComment(ctx context.Context, postID, commentID string) error {
	query := `DELETE FROM post_comments WHERE post_id = $1 AND id = $2`

	n, err := r.exec(ctx, query, postID, commentID)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Comments(ctx context.Context, postID string) ([]models.Comment, error) {
	query :=
		`SELECT id, post_id, user_id, text, name, avatar, created_at
		 FROM post_comments
		 WHERE post_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.Name, &c.Avatar, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) loadChildren(ctx context.Context, p *models.Post) error {
	likes, err := r.Likes(ctx, p.ID)
	if err != nil {
		return err
	}
	comments, err := r.Comments(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Likes = likes
	p.Comments = comments
	return nil
}

// loadChildrenBatch fills likes and comments for all posts with one query
// per child table.
func (r *PostgresRepository) loadChildrenBatch(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(posts))
	byID := make(map[string]*models.Post, len(posts))
	for _, p := range posts {
		p.Likes = []models.Like{}
		p.Comments = []models.Comment{}
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	likesQuery :=
		`SELECT post_id, user_id
		 FROM post_likes
		 WHERE post_id = ANY($1)
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, likesQuery, ids)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID string
		var l models.Like
		if err := rows.Scan(&postID, &l.UserID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if p, ok := byID[postID]; ok {
			p.Likes = append(p.Likes, l)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	commentsQuery :=
		`SELECT id, post_id, user_id, text, name, avatar, created_at
		 FROM post_comments
		 WHERE post_id = ANY($1)
		 ORDER BY created_at DESC
		 `

	crows, err := r.db.QueryContext(ctx, commentsQuery, ids)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer crows.Close()

	for crows.Next() {
		var c models.Comment
		if err := crows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.Name, &c.Avatar, &c.CreatedAt); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if p, ok := byID[c.PostID]; ok {
			p.Comments = append(p.Comments, c)
		}
	}
	if err := crows.Err(); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
