package sqlstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/newsdesk/internal/domain"
	"github.com/msomdec/newsdesk/internal/repository/sqlstore"
)

func (f *fixture) createTag(t *testing.T, name string) int64 {
	t.Helper()
	tag := &domain.Tag{Name: name}
	require.NoError(t, sqlstore.NewTagRepository(f.db).Create(context.Background(), tag))
	return tag.ID
}

func (f *fixture) createArticle(t *testing.T, authorID int64, title string, statusID int64, tagIDs ...int64) *domain.Article {
	t.Helper()
	a := &domain.Article{
		AuthorID: authorID,
		Title:    title,
		Body:     "body of " + title,
		StatusID: statusID,
		TagIDs:   tagIDs,
	}
	require.NoError(t, sqlstore.NewArticleRepository(f.db).Create(context.Background(), a))
	return a
}

func articleIDs(articles []domain.Article) []int64 {
	ids := make([]int64, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}
	return ids
}

func TestArticleRepository_CreateAndGet(t *testing.T) {
	f := newFixture(t)
	repo := sqlstore.NewArticleRepository(f.db)
	tags := sqlstore.NewTagRepository(f.db)
	ctx := context.Background()
	author := f.createUser(t, "ada")
	esp := f.createTag(t, "ESP32")

	a := f.createArticle(t, author.ID, "Hello", f.publishID, esp, 999)
	require.NotZero(t, a.ID)

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, author.ID, got.AuthorID)
	require.NotNil(t, got.Status)
	assert.Equal(t, domain.StatusPublished, got.Status.Name)
	assert.Nil(t, got.Image)

	byArticle, err := tags.ListByArticles(ctx, []int64{a.ID})
	require.NoError(t, err)
	require.Len(t, byArticle[a.ID], 1, "unknown tag ids are skipped")
	assert.Equal(t, "ESP32", byArticle[a.ID][0].Name)
}

func TestArticleRepository_CreateUnknownStatus(t *testing.T) {
	f := newFixture(t)
	author := f.createUser(t, "ada")

	a := &domain.Article{AuthorID: author.ID, Title: "x", Body: "y", StatusID: 999}
	err := sqlstore.NewArticleRepository(f.db).Create(context.Background(), a)
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
	assert.Zero(t, a.ID)
}

func TestArticleRepository_ListFilters(t *testing.T) {
	f := newFixture(t)
	repo := sqlstore.NewArticleRepository(f.db)
	ctx := context.Background()
	author := f.createUser(t, "ada")
	esp := f.createTag(t, "ESP32")
	stm := f.createTag(t, "STM32")

	blink := f.createArticle(t, author.ID, "Blinking LEDs", f.publishID, esp)
	draft := f.createArticle(t, author.ID, "Draft notes on LEDs", f.draftID, stm)
	motors := f.createArticle(t, author.ID, "Stepper motors", f.publishID, stm)
	page := domain.Page{Limit: 10}

	all, err := repo.List(ctx, domain.ArticleFilter{}, page)
	require.NoError(t, err)
	assert.Equal(t, []int64{motors.ID, draft.ID, blink.ID}, articleIDs(all), "newest first")

	published, err := repo.List(ctx, domain.ArticleFilter{StatusID: &f.publishID}, page)
	require.NoError(t, err)
	assert.Equal(t, []int64{motors.ID, blink.ID}, articleIDs(published))

	byTitle, err := repo.List(ctx, domain.ArticleFilter{Title: "leds"}, page)
	require.NoError(t, err)
	assert.Equal(t, []int64{draft.ID, blink.ID}, articleIDs(byTitle))

	byTag, err := repo.List(ctx, domain.ArticleFilter{TagIDs: []int64{stm}}, page)
	require.NoError(t, err)
	assert.Equal(t, []int64{motors.ID, draft.ID}, articleIDs(byTag))

	combined, err := repo.List(ctx, domain.ArticleFilter{StatusID: &f.publishID, Title: "LED", TagIDs: []int64{esp, stm}}, page)
	require.NoError(t, err)
	assert.Equal(t, []int64{blink.ID}, articleIDs(combined))
}

func TestArticleRepository_TitleSearchIsLiteralAndUnicode(t *testing.T) {
	f := newFixture(t)
	repo := sqlstore.NewArticleRepository(f.db)
	ctx := context.Background()
	author := f.createUser(t, "ada")

	pct := f.createArticle(t, author.ID, "100% uptime", f.publishID)
	f.createArticle(t, author.ID, "1000 requests", f.publishID)
	cyr := f.createArticle(t, author.ID, "Новости Платы", f.publishID)
	page := domain.Page{Limit: 10}

	got, err := repo.List(ctx, domain.ArticleFilter{Title: "0%"}, page)
	require.NoError(t, err)
	assert.Equal(t, []int64{pct.ID}, articleIDs(got))

	got, err = repo.List(ctx, domain.ArticleFilter{Title: "платы"}, page)
	require.NoError(t, err)
	assert.Equal(t, []int64{cyr.ID}, articleIDs(got))
}

func TestArticleRepository_PagesDoNotOverlap(t *testing.T) {
	f := newFixture(t)
	repo := sqlstore.NewArticleRepository(f.db)
	ctx := context.Background()
	author := f.createUser(t, "ada")

	for i := 0; i < 5; i++ {
		f.createArticle(t, author.ID, "same", f.publishID)
	}

	seen := map[int64]bool{}
	for skip := 0; skip < 5; skip += 2 {
		got, err := repo.List(ctx, domain.ArticleFilter{}, domain.Page{Skip: skip, Limit: 2})
		require.NoError(t, err)
		for _, a := range got {
			assert.False(t, seen[a.ID], "article %d returned twice", a.ID)
			seen[a.ID] = true
		}
	}
	assert.Len(t, seen, 5)
}

func TestArticleRepository_UpdateReplacesTags(t *testing.T) {
	f := newFixture(t)
	repo := sqlstore.NewArticleRepository(f.db)
	tags := sqlstore.NewTagRepository(f.db)
	ctx := context.Background()
	author := f.createUser(t, "ada")
	esp := f.createTag(t, "ESP32")
	stm := f.createTag(t, "STM32")
	a := f.createArticle(t, author.ID, "Old", f.draftID, esp)

	updated, err := repo.Update(ctx, a.ID, domain.ArticleUpdate{
		Title:    domain.Set("New"),
		StatusID: domain.Set(f.publishID),
		TagIDs:   domain.Set([]int64{stm}),
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "body of Old", updated.Body)
	assert.Equal(t, domain.StatusPublished, updated.Status.Name)

	byArticle, err := tags.ListByArticles(ctx, []int64{a.ID})
	require.NoError(t, err)
	require.Len(t, byArticle[a.ID], 1)
	assert.Equal(t, stm, byArticle[a.ID][0].ID)

	_, err = repo.Update(ctx, a.ID, domain.ArticleUpdate{Body: domain.Set("kept tags")})
	require.NoError(t, err)
	byArticle, err = tags.ListByArticles(ctx, []int64{a.ID})
	require.NoError(t, err)
	assert.Len(t, byArticle[a.ID], 1, "unset tag ids leave associations alone")

	_, err = repo.Update(ctx, a.ID, domain.ArticleUpdate{TagIDs: domain.Set([]int64{})})
	require.NoError(t, err)
	byArticle, err = tags.ListByArticles(ctx, []int64{a.ID})
	require.NoError(t, err)
	assert.Empty(t, byArticle[a.ID])
}

func TestArticleRepository_UpdateMissing(t *testing.T) {
	f := newFixture(t)
	repo := sqlstore.NewArticleRepository(f.db)

	_, err := repo.Update(context.Background(), 999, domain.ArticleUpdate{Title: domain.Set("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArticleRepository_Delete(t *testing.T) {
	f := newFixture(t)
	repo := sqlstore.NewArticleRepository(f.db)
	ctx := context.Background()
	author := f.createUser(t, "ada")
	esp := f.createTag(t, "ESP32")
	a := f.createArticle(t, author.ID, "Gone", f.publishID, esp)

	require.NoError(t, repo.Delete(ctx, a.ID))

	_, err := repo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), domain.ErrNotFound)

	var links int
	require.NoError(t, f.db.SqlDB.QueryRow("SELECT COUNT(*) FROM article_tags").Scan(&links))
	assert.Zero(t, links)
}
