package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkpost/internal/models"

	"github.com/google/uuid"
)

type PostSQLite struct {
	db *sql.DB
}

func NewPostSQLite(db *sql.DB) *PostSQLite { return &PostSQLite{db: db} }

var _ Posts = (*PostSQLite)(nil)

const (
	postColumns = `id, title, body, created_at, updated_at`

	insertPostSQL = `INSERT INTO posts (` + postColumns + `) VALUES (?, ?, ?, ?, ?)`

	selectPostByIDSQL = `SELECT ` + postColumns + ` FROM posts WHERE id = ?`

	listPostsSQL = `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`

	allPostsSQL = `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC, rowid DESC`

	countPostsSQL = `SELECT COUNT(*) FROM posts`

	searchPostsSQL = `SELECT ` + postColumns + ` FROM posts
		WHERE title LIKE ? ESCAPE '\' OR body LIKE ? ESCAPE '\'
		ORDER BY created_at DESC, rowid DESC`

	updatePostSQL = `UPDATE posts SET title = ?, body = ?, updated_at = ? WHERE id = ?`

	deletePostSQL = `DELETE FROM posts WHERE id = ?`
)

// likeEscaper neutralizes LIKE wildcards so the term matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term anywhere in the column.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// Create inserts a post. If ID or CreatedAt are empty, they're set.
func (r *PostSQLite) Create(ctx context.Context, p models.Post) (models.Post, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	} else {
		p.CreatedAt = p.CreatedAt.UTC()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	} else {
		p.UpdatedAt = p.UpdatedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertPostSQL, p.ID, p.Title, p.Body, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Post{}, fmt.Errorf("insert post %s: %w", p.ID, ErrDuplicate)
		}
		return models.Post{}, fmt.Errorf("insert post %s: %w", p.ID, err)
	}
	return p, nil
}

// GetByID returns ErrNotFound when no post has the id.
func (r *PostSQLite) GetByID(ctx context.Context, id string) (models.Post, error) {
	var p models.Post
	err := r.db.QueryRowContext(ctx, selectPostByIDSQL, id).
		Scan(&p.ID, &p.Title, &p.Body, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, ErrNotFound
		}
		return models.Post{}, fmt.Errorf("select post %s: %w", id, err)
	}
	normalizePost(&p)
	return p, nil
}

func (r *PostSQLite) List(ctx context.Context, offset, limit int) ([]models.Post, error) {
	if offset < 0 {
		offset = 0
	}
	return r.query(ctx, "list posts", listPostsSQL, limit, offset)
}

func (r *PostSQLite) All(ctx context.Context) ([]models.Post, error) {
	return r.query(ctx, "list all posts", allPostsSQL)
}

func (r *PostSQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countPostsSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

// Search binds the term as a parameter; it is never spliced into SQL.
func (r *PostSQLite) Search(ctx context.Context, term string) ([]models.Post, error) {
	pattern := containsPattern(term)
	return r.query(ctx, "search posts", searchPostsSQL, pattern, pattern)
}

// Update writes title, body and updated_at. Returns ErrNotFound if nothing matched.
func (r *PostSQLite) Update(ctx context.Context, p models.Post) error {
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, updatePostSQL, p.Title, p.Body, updatedAt.UTC(), p.ID)
	if err != nil {
		return fmt.Errorf("update post %s: %w", p.ID, err)
	}
	return expectOneRow(res, "update post", p.ID)
}

// Delete removes the post. Returns ErrNotFound if nothing matched.
func (r *PostSQLite) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deletePostSQL, id)
	if err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	return expectOneRow(res, "delete post", id)
}

func (r *PostSQLite) query(ctx context.Context, op, q string, args ...any) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]models.Post, 0, 16)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		normalizePost(&p)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func expectOneRow(res sql.Result, op, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %s: rows affected: %w", op, id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func normalizePost(p *models.Post) {
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
}
