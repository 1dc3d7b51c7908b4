package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkpost/internal/models"
	"inkpost/internal/repository"
)

const defaultPageSize = 6

var (
	// ErrValidation wraps every rejected form submission.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned for post ids that do not exist.
	ErrNotFound = errors.New("post not found")
)

type PostService struct {
	posts    repository.Posts
	pageSize int
	now      func() time.Time
}

func NewPostService(posts repository.Posts, pageSize int) *PostService {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &PostService{posts: posts, pageSize: pageSize, now: time.Now}
}

// Page returns the given 1-based page of posts, newest first.
// Pages below 1 are treated as 1; pages past the end are empty.
func (s *PostService) Page(ctx context.Context, page int) (PostPage, error) {
	if page < 1 {
		page = 1
	}
	count, err := s.posts.Count(ctx)
	if err != nil {
		return PostPage{}, err
	}

	totalPages := (count + s.pageSize - 1) / s.pageSize
	out := PostPage{Posts: []models.Post{}, Current: page, TotalPages: totalPages}
	// page <= totalPages keeps the offset and page+1 below overflow
	if page > totalPages {
		return out, nil
	}

	posts, err := s.posts.List(ctx, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return PostPage{}, err
	}
	out.Posts = posts
	if page < totalPages {
		out.NextPage = page + 1
	}
	return out, nil
}

func (s *PostService) Get(ctx context.Context, id string) (models.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return models.Post{}, translateNotFound(err)
	}
	return p, nil
}

func (s *PostService) Search(ctx context.Context, term string) ([]models.Post, error) {
	return s.posts.Search(ctx, strings.TrimSpace(term))
}

func (s *PostService) All(ctx context.Context) ([]models.Post, error) {
	return s.posts.All(ctx)
}

func (s *PostService) Create(ctx context.Context, in PostInput) (models.Post, error) {
	in, err := validatePost(in)
	if err != nil {
		return models.Post{}, err
	}
	now := s.now().UTC()
	return s.posts.Create(ctx, models.Post{
		Title:     in.Title,
		Body:      in.Body,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Update replaces title and body. UpdatedAt always ends up after CreatedAt.
func (s *PostService) Update(ctx context.Context, id string, in PostInput) (models.Post, error) {
	in, err := validatePost(in)
	if err != nil {
		return models.Post{}, err
	}
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return models.Post{}, translateNotFound(err)
	}

	now := s.now().UTC()
	if !now.After(p.CreatedAt) {
		now = p.CreatedAt.Add(time.Nanosecond)
	}
	p.Title = in.Title
	p.Body = in.Body
	p.UpdatedAt = now

	if err := s.posts.Update(ctx, p); err != nil {
		return models.Post{}, translateNotFound(err)
	}
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	return translateNotFound(s.posts.Delete(ctx, id))
}

func validatePost(in PostInput) (PostInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(in.Body) == "" {
		return in, fmt.Errorf("%w: body is required", ErrValidation)
	}
	return in, nil
}

func translateNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
