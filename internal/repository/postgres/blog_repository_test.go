package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/tour-microservice/internal/domain"
)

func TestBlogRepository_UpdatePostReconcilesTags(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBlogRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE blog_posts SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO blog_tags")).
		WithArgs("Playas", "playas").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO blog_tags")).
		WithArgs("Europa", "europa").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT tag_id FROM blog_post_tags WHERE post_id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"tag_id"}).AddRow(1).AddRow(2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM blog_post_tags WHERE post_id = $1 AND tag_id = ANY($2)")).
		WithArgs(int64(5), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO blog_post_tags (post_id, tag_id) VALUES ($1, $2)")).
		WithArgs(int64(5), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdatePost(context.Background(), &domain.Post{
		ID:    5,
		Title: "Verano",
		Slug:  "verano",
		Tags:  []domain.Tag{{Name: "Playas", Slug: "playas"}, {Name: "Europa", Slug: "europa"}},
	})

	require.NoError(t, err)
}

func TestBlogRepository_GetPostAttachesTags(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBlogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM blog_posts WHERE slug = $1")).
		WithArgs("verano").
		WillReturnRows(sqlmock.NewRows([]string{"id", "titulo", "slug"}).AddRow(5, "Verano", "verano"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM blog_post_tags pt")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "id", "nombre", "slug"}).AddRow(5, 2, "Playas", "playas"))

	post, err := repo.GetPostBySlug(context.Background(), "verano")

	require.NoError(t, err)
	require.Len(t, post.Tags, 1)
	require.Equal(t, "playas", post.Tags[0].Slug)
}
