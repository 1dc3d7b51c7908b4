package repository

import (
	"context"
	"database/sql"

	"inkpost/internal/models"
)

type Users interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

type Posts interface {
	Create(ctx context.Context, p models.Post) (models.Post, error)
	GetByID(ctx context.Context, id string) (models.Post, error)
	// List returns up to limit posts, newest first, skipping offset.
	List(ctx context.Context, offset, limit int) ([]models.Post, error)
	All(ctx context.Context) ([]models.Post, error)
	Count(ctx context.Context) (int, error)
	// Search matches term as a case-insensitive substring of title or body.
	Search(ctx context.Context, term string) ([]models.Post, error)
	Update(ctx context.Context, p models.Post) error
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	Users Users
	Posts Posts
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
		Posts: NewPostSQLite(db),
	}
}
