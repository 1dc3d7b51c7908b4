package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"inkpost/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var postCols = []string{"id", "title", "body", "created_at", "updated_at"}

func newMockPosts(t *testing.T) (*PostSQLite, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	})
	return NewPostSQLite(db), mock
}

type argFunc func(v driver.Value) bool

func (f argFunc) Match(v driver.Value) bool { return f(v) }

func TestPostSQLite_Create_SetsIDAndTimestamps(t *testing.T) {
	repo, mock := newMockPosts(t)

	isUTC := argFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		return ok && tm.Location() == time.UTC && !tm.IsZero()
	})
	nonEmpty := argFunc(func(v driver.Value) bool {
		s, ok := v.(string)
		return ok && len(s) == 36
	})

	mock.ExpectExec(regexp.QuoteMeta(insertPostSQL)).
		WithArgs(nonEmpty, "Hello", "World", isUTC, isUTC).
		WillReturnResult(sqlmock.NewResult(1, 1))

	got, err := repo.Create(context.Background(), models.Post{Title: "Hello", Body: "World"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("expected generated id")
	}
	if got.CreatedAt.IsZero() || !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Fatalf("timestamps not initialized: %+v", got)
	}
}

func TestPostSQLite_Create_ExecError(t *testing.T) {
	repo, mock := newMockPosts(t)

	mock.ExpectExec("INSERT INTO posts").WillReturnError(errors.New("disk full"))

	if _, err := repo.Create(context.Background(), models.Post{Title: "a", Body: "b"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPostSQLite_GetByID(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		mockExpect func(sqlmock.Sqlmock)
		wantErr    error
		wantTitle  string
	}{
		{
			name: "found",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectPostByIDSQL)).
					WithArgs("p1").
					WillReturnRows(sqlmock.NewRows(postCols).AddRow("p1", "Title", "Body", now, now))
			},
			wantTitle: "Title",
		},
		{
			name: "missing",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectPostByIDSQL)).
					WithArgs("p1").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockPosts(t)
			tt.mockExpect(mock)

			p, err := repo.GetByID(context.Background(), "p1")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Title != tt.wantTitle {
				t.Fatalf("title: want %q, got %q", tt.wantTitle, p.Title)
			}
		})
	}
}

func TestPostSQLite_List_PassesLimitOffset(t *testing.T) {
	repo, mock := newMockPosts(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(listPostsSQL)).
		WithArgs(6, 12).
		WillReturnRows(sqlmock.NewRows(postCols).AddRow("p13", "t", "b", now, now))

	got, err := repo.List(context.Background(), 12, 6)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p13" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestPostSQLite_Search_EscapesWildcards(t *testing.T) {
	repo, mock := newMockPosts(t)

	mock.ExpectQuery(regexp.QuoteMeta(searchPostsSQL)).
		WithArgs(`%100\%\_off%`, `%100\%\_off%`).
		WillReturnRows(sqlmock.NewRows(postCols))

	got, err := repo.Search(context.Background(), "100%_off")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty, got %+v", got)
	}
}

func TestPostSQLite_List_ScanError(t *testing.T) {
	repo, mock := newMockPosts(t)

	mock.ExpectQuery(regexp.QuoteMeta(allPostsSQL)).
		WillReturnRows(sqlmock.NewRows(postCols).AddRow("x", "t", "b", 123, "nope"))

	if _, err := repo.All(context.Background()); err == nil {
		t.Fatalf("expected scan error")
	}
}

func TestPostSQLite_UpdateDelete_NotFound(t *testing.T) {
	repo, mock := newMockPosts(t)

	mock.ExpectExec(regexp.QuoteMeta(updatePostSQL)).
		WithArgs("t", "b", sqlmock.AnyArg(), "gone").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(deletePostSQL)).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), models.Post{ID: "gone", Title: "t", Body: "b"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update: want ErrNotFound, got %v", err)
	}
	if err := repo.Delete(context.Background(), "gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete: want ErrNotFound, got %v", err)
	}
}

func TestPostSQLite_Delete_Success(t *testing.T) {
	repo, mock := newMockPosts(t)

	mock.ExpectExec(regexp.QuoteMeta(deletePostSQL)).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
