package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/model"
	"pressroom/internal/repository"
)

var articleCols = []string{
	"id", "title", "content", "summary", "category", "tags", "author_id", "author_name", "likes",
	"created_at", "updated_at", "m_id", "m_url", "m_public_id", "m_resource_type",
}

func TestArticlePostgres_FindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArticlePostgres(db)
	ctx := context.Background()

	t.Run("with cover and likes", func(t *testing.T) {
		mock.ExpectQuery(`FROM articles a(.+)WHERE a.id = \$1`).
			WithArgs("a-1").
			WillReturnRows(sqlmock.NewRows(articleCols).AddRow(
				"a-1", "Launch", "Body", "Short", "news", "{press,launch}", "u-1", "Ines", "{u-2,u-3}",
				time.Now(), time.Now(),
				"m-1", "http://cdn.local/c.png", "image/2025/03/c.png", "image",
			))

		a, err := repo.FindByID(ctx, "a-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"press", "launch"}, a.Tags)
		assert.Equal(t, []string{"u-2", "u-3"}, a.Likes)
		assert.Equal(t, 2, a.LikesCount)
		require.NotNil(t, a.CoverImage)
		assert.Equal(t, "image/2025/03/c.png", a.CoverImage.PublicID)
		assert.Equal(t, "Ines", a.AuthorName)
	})

	t.Run("without cover", func(t *testing.T) {
		mock.ExpectQuery(`FROM articles a(.+)WHERE a.id = \$1`).
			WithArgs("a-2").
			WillReturnRows(sqlmock.NewRows(articleCols).AddRow(
				"a-2", "T", "C", "", "", "{}", nil, "", "{}",
				time.Now(), time.Now(),
				nil, nil, nil, nil,
			))

		a, err := repo.FindByID(ctx, "a-2")
		require.NoError(t, err)
		assert.Nil(t, a.CoverImage)
		assert.Empty(t, a.Likes)
		assert.NotNil(t, a.Tags)
		assert.Empty(t, a.AuthorID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("FROM articles a").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		a, err := repo.FindByID(ctx, "missing")
		assert.Nil(t, a)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticlePostgres_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArticlePostgres(db)
	now := time.Now().UTC()

	a := &model.Article{
		ID:         "a-1",
		Title:      "Launch",
		Content:    "Body",
		Tags:       []string{"press"},
		CoverImage: &model.Asset{ID: "m-1"},
		AuthorID:   "u-1",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	mock.ExpectExec("INSERT INTO articles").
		WithArgs("a-1", "Launch", "Body", "", "", sqlmock.AnyArg(), "m-1", "u-1", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM articles a").
		WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows(articleCols).AddRow(
			"a-1", "Launch", "Body", "", "", "{press}", "u-1", "Ines", "{}",
			now, now, "m-1", "http://cdn.local/c.png", "image/2025/03/c.png", "image",
		))

	got, err := repo.Create(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.local/c.png", got.CoverImage.URL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticlePostgres_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArticlePostgres(db)

	f := repository.ArticleFilter{Category: "news", Tag: "press", Search: "launch"}
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM articles a`).
		WithArgs("news", "press", "launch").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery("FROM articles a(.+)ORDER BY a.created_at DESC").
		WithArgs("news", "press", "launch", 10, 10).
		WillReturnRows(sqlmock.NewRows(articleCols).AddRow(
			"a-11", "Launch day", "Body", "", "news", "{press}", "u-1", "Ines", "{}",
			time.Now(), time.Now(), nil, nil, nil, nil,
		))

	res, err := repo.List(context.Background(), f, repository.PageQuery{Limit: 10, Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, 11, res.Total)
	assert.Len(t, res.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticlePostgres_UpdateMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArticlePostgres(db)

	mock.ExpectExec("UPDATE articles").
		WillReturnResult(sqlmock.NewResult(0, 0))

	got, err := repo.Update(context.Background(), &model.Article{ID: "gone"})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticlePostgres_Likes(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArticlePostgres(db)
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO article_likes(.+)ON CONFLICT").
		WithArgs("a-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO article_likes(.+)ON CONFLICT").
		WithArgs("a-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM article_likes").
		WithArgs("a-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.AddLike(ctx, "a-1", "u-1"))
	assert.NoError(t, repo.AddLike(ctx, "a-1", "u-1"))
	assert.NoError(t, repo.RemoveLike(ctx, "a-1", "u-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
