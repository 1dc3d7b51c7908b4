package service

import (
	"context"
	"html/template"
	"time"

	"inkpost/internal/models"
	"inkpost/internal/repository"
)

// Authorization covers admin accounts and session tokens.
type Authorization interface {
	SignUp(ctx context.Context, username, password string) (models.User, error)
	Login(ctx context.Context, username, password string) (Session, error)
	ParseToken(ctx context.Context, token string) (int, error)
	Revoke(ctx context.Context, token string) error
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}

// Posts exposes the blog content operations used by public and admin pages.
type Posts interface {
	Page(ctx context.Context, page int) (PostPage, error)
	Get(ctx context.Context, id string) (models.Post, error)
	Search(ctx context.Context, term string) ([]models.Post, error)
	All(ctx context.Context) ([]models.Post, error)
	Create(ctx context.Context, in PostInput) (models.Post, error)
	Update(ctx context.Context, id string, in PostInput) (models.Post, error)
	Delete(ctx context.Context, id string) error
}

// Renderer turns a stored post body into safe HTML.
type Renderer interface {
	Render(body string) (template.HTML, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Posts
	Renderer
}

// Options carries the startup configuration the services depend on.
type Options struct {
	JWTSecret   []byte
	TokenTTL    time.Duration
	PageSize    int
	Revocations RevocationStore
}

func NewService(repos *repository.Repository, opts Options) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, opts.JWTSecret, opts.TokenTTL, opts.Revocations),
		Posts:         NewPostService(repos.Posts, opts.PageSize),
		Renderer:      NewMarkdownRenderer(),
	}
}
