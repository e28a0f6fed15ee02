package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/store"
	"terminal-terrace/editorial/internal/txn"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newArticle(id string, status model.ArticleStatus, offset time.Duration) *model.Article {
	return &model.Article{
		ID:        id,
		Title:     "title " + id,
		Status:    status,
		Type:      model.TypeArticle,
		AuthorIDs: []string{"author-" + id},
		CreatedAt: base.Add(offset),
		EditedAt:  base.Add(offset),
	}
}

func TestCRUD(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()

	a := newArticle("a1", model.ArticleDraft, 0)
	require.NoError(t, repos.Articles.Add(ctx, nil, a))
	assert.ErrorIs(t, repos.Articles.Add(ctx, nil, a), store.ErrDuplicate)

	got, err := repos.Articles.GetByID(ctx, nil, "a1")
	require.NoError(t, err)
	assert.Equal(t, a, got)

	// 读出的是副本
	got.Title = "changed"
	again, err := repos.Articles.GetByID(ctx, nil, "a1")
	require.NoError(t, err)
	assert.Equal(t, "title a1", again.Title)

	got.Title = "updated"
	require.NoError(t, repos.Articles.Update(ctx, nil, got))
	again, err = repos.Articles.GetByID(ctx, nil, "a1")
	require.NoError(t, err)
	assert.Equal(t, "updated", again.Title)

	require.NoError(t, repos.Articles.Delete(ctx, nil, "a1"))
	_, err = repos.Articles.GetByID(ctx, nil, "a1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, repos.Articles.Delete(ctx, nil, "a1"), store.ErrNotFound)
	assert.ErrorIs(t, repos.Articles.Update(ctx, nil, got), store.ErrNotFound)
}

func TestGetByIDsKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repos.Articles.Add(ctx, nil, newArticle(id, model.ArticleDraft, time.Duration(i)*time.Minute)))
	}

	got, err := repos.Articles.GetByIDs(ctx, nil, []string{"c", "missing", "a"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestArticleListFilterAndPaging(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	for i := 0; i < 5; i++ {
		status := model.ArticlePublished
		if i%2 == 1 {
			status = model.ArticleDraft
		}
		id := string(rune('a' + i))
		require.NoError(t, repos.Articles.Add(ctx, nil, newArticle(id, status, time.Duration(i)*time.Hour)))
	}

	items, total, err := repos.Articles.List(ctx, nil, store.ArticleFilter{
		Statuses: []model.ArticleStatus{model.ArticlePublished},
	}, store.Page{Page: 0, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 2)
	assert.Equal(t, "e", items[0].ID, "最新创建的在前")
	assert.Equal(t, "c", items[1].ID)

	items, _, err = repos.Articles.List(ctx, nil, store.ArticleFilter{
		Statuses: []model.ArticleStatus{model.ArticlePublished},
	}, store.Page{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)

	items, total, err = repos.Articles.List(ctx, nil, store.ArticleFilter{AuthorID: "author-b"}, store.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "b", items[0].ID)
}

func TestLookupsByUserID(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	require.NoError(t, repos.Staff.Add(ctx, nil, &model.Staff{ID: "s1", UserID: "u1", Job: model.JobBolsista, Active: true}))
	require.NoError(t, repos.Authors.Add(ctx, nil, &model.Author{ID: "au1", UserID: "u1"}))
	require.NoError(t, repos.Editorials.Add(ctx, nil, &model.EditorialRecord{ID: "e1", ArticleID: "a1"}))

	s, err := repos.Staff.GetByUserID(ctx, nil, "u1")
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)

	_, err = repos.Staff.GetByUserID(ctx, nil, "u2")
	assert.ErrorIs(t, err, store.ErrNotFound)

	a, err := repos.Authors.GetByUserID(ctx, nil, "u1")
	require.NoError(t, err)
	assert.Equal(t, "au1", a.ID)

	e, err := repos.Editorials.GetByArticleID(ctx, nil, "a1")
	require.NoError(t, err)
	assert.Equal(t, "e1", e.ID)
}

func TestPendingListFilter(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	add := func(id, target string, status model.PendingStatus, offset time.Duration) {
		require.NoError(t, repos.Pending.Add(ctx, nil, &model.Pending{
			ID: id, TargetID: target, Status: status, RequesterID: "r", CreatedAt: base.Add(offset),
		}))
	}
	add("p1", "a1", model.PendingAwaitingReview, 0)
	add("p2", "a1", model.PendingApproved, time.Minute)
	add("p3", "a2", model.PendingAwaitingReview, 2*time.Minute)

	items, total, err := repos.Pending.List(ctx, nil, store.PendingFilter{Status: model.PendingAwaitingReview}, store.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "p3", items[0].ID)

	items, _, err = repos.Pending.List(ctx, nil, store.PendingFilter{TargetID: "a1"}, store.Page{})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestTransactionRollbackRestoresState(t *testing.T) {
	ctx := context.Background()
	s := New()
	repos := s.Repositories()
	require.NoError(t, repos.Articles.Add(ctx, nil, newArticle("a1", model.ArticleDraft, 0)))

	m := txn.NewManager(s, nil)
	boom := errors.New("boom")
	err := m.WithinTransaction(ctx, func(ctx context.Context, tx *txn.Tx) error {
		a, err := repos.Articles.GetByID(ctx, tx, "a1")
		require.NoError(t, err)
		a.Title = "inside"
		require.NoError(t, repos.Articles.Update(ctx, tx, a))
		require.NoError(t, repos.Articles.Add(ctx, tx, newArticle("a2", model.ArticleDraft, 0)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	a, err := repos.Articles.GetByID(ctx, nil, "a1")
	require.NoError(t, err)
	assert.Equal(t, "title a1", a.Title)
	_, err = repos.Articles.GetByID(ctx, nil, "a2")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTransactionCommitKeepsState(t *testing.T) {
	ctx := context.Background()
	s := New()
	repos := s.Repositories()
	m := txn.NewManager(s, nil)

	var finished *txn.Tx
	err := m.WithinTransaction(ctx, func(ctx context.Context, tx *txn.Tx) error {
		finished = tx
		return repos.Volumes.Add(ctx, tx, &model.Volume{ID: "v1", Edition: 1})
	})
	require.NoError(t, err)

	_, err = repos.Volumes.GetByID(ctx, nil, "v1")
	assert.NoError(t, err)

	// 已结束的事务不能再使用
	_, err = repos.Volumes.GetByID(ctx, finished, "v1")
	assert.ErrorIs(t, err, txn.ErrNotActive)
}

func TestRollbackKeepsWritesOutsideTransaction(t *testing.T) {
	ctx := context.Background()
	s := New()
	repos := s.Repositories()
	require.NoError(t, repos.Articles.Add(ctx, nil, newArticle("a1", model.ArticleDraft, 0)))
	require.NoError(t, repos.Articles.Add(ctx, nil, newArticle("a2", model.ArticleDraft, time.Minute)))

	m := txn.NewManager(s, nil)
	boom := errors.New("boom")
	err := m.WithinTransaction(ctx, func(ctx context.Context, tx *txn.Tx) error {
		a, err := repos.Articles.GetByID(ctx, tx, "a1")
		require.NoError(t, err)
		a.Title = "inside"
		require.NoError(t, repos.Articles.Update(ctx, tx, a))

		// 事务进行中的其他写入
		require.NoError(t, repos.Interactions.Add(ctx, nil, &model.Interaction{ID: "c1", ArticleID: "a2"}))
		other, err := repos.Articles.GetByID(ctx, nil, "a2")
		require.NoError(t, err)
		other.Title = "outside"
		require.NoError(t, repos.Articles.Update(ctx, nil, other))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repos.Interactions.GetByID(ctx, nil, "c1")
	assert.NoError(t, err)

	a2, err := repos.Articles.GetByID(ctx, nil, "a2")
	require.NoError(t, err)
	assert.Equal(t, "outside", a2.Title)

	a1, err := repos.Articles.GetByID(ctx, nil, "a1")
	require.NoError(t, err)
	assert.Equal(t, "title a1", a1.Title)
}

func TestRollbackRestoresDeletedRows(t *testing.T) {
	ctx := context.Background()
	s := New()
	repos := s.Repositories()
	require.NoError(t, repos.Volumes.Add(ctx, nil, &model.Volume{ID: "v1", Edition: 1, Title: "first"}))

	m := txn.NewManager(s, nil)
	err := m.WithinTransaction(ctx, func(ctx context.Context, tx *txn.Tx) error {
		v, err := repos.Volumes.GetByID(ctx, tx, "v1")
		require.NoError(t, err)
		v.Title = "renamed"
		require.NoError(t, repos.Volumes.Update(ctx, tx, v))
		require.NoError(t, repos.Volumes.Delete(ctx, tx, "v1"))
		return errors.New("abort")
	})
	require.Error(t, err)

	v, err := repos.Volumes.GetByID(ctx, nil, "v1")
	require.NoError(t, err)
	assert.Equal(t, "first", v.Title)

	// 恢复的行仍能正常列出
	require.NoError(t, repos.Volumes.Add(ctx, nil, &model.Volume{ID: "v2", Edition: 2}))
	items, _, err := repos.Volumes.List(ctx, nil, store.Page{})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
