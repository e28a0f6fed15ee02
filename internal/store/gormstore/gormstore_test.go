package gormstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/store"
	"terminal-terrace/editorial/internal/store/gormstore"
	"terminal-terrace/editorial/internal/testutils"
	"terminal-terrace/editorial/internal/txn"
)

func TestArticleRoundTrip(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repos := gormstore.New(db).Repositories()
	ctx := context.Background()

	volumeID := "v1"
	a := &model.Article{
		ID:            "a1",
		Title:         "title",
		Status:        model.ArticleDraft,
		Type:          model.TypeBlog,
		AuthorIDs:     []string{"au1", "au2"},
		EditorialID:   "e1",
		VolumeID:      &volumeID,
		FeaturedMedia: &model.Media{URL: "https://cdn/x.png"},
		CreatedAt:     testutils.Now,
		EditedAt:      testutils.Now,
	}
	require.NoError(t, repos.Articles.Add(ctx, nil, a))
	assert.ErrorIs(t, repos.Articles.Add(ctx, nil, a), store.ErrDuplicate)

	got, err := repos.Articles.GetByID(ctx, nil, "a1")
	require.NoError(t, err)
	assert.Equal(t, a.AuthorIDs, got.AuthorIDs)
	assert.Equal(t, "https://cdn/x.png", got.FeaturedMedia.URL)

	items, total, err := repos.Articles.List(ctx, nil, store.ArticleFilter{AuthorID: "au2"}, store.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "a1", items[0].ID)

	got.Title = "changed"
	require.NoError(t, repos.Articles.Update(ctx, nil, got))

	missing := *got
	missing.ID = "nope"
	assert.ErrorIs(t, repos.Articles.Update(ctx, nil, &missing), store.ErrNotFound)

	require.NoError(t, repos.Articles.Delete(ctx, nil, "a1"))
	_, err = repos.Articles.GetByID(ctx, nil, "a1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTransactionRollback(t *testing.T) {
	db := testutils.SetupTestDB(t)
	s := gormstore.New(db)
	repos := s.Repositories()
	ctx := context.Background()
	m := txn.NewManager(s, nil)

	boom := errors.New("boom")
	err := m.WithinTransaction(ctx, func(ctx context.Context, tx *txn.Tx) error {
		require.NoError(t, repos.Pending.Add(ctx, tx, &model.Pending{
			ID:            "p1",
			TargetID:      "a1",
			TargetType:    model.TargetArticle,
			CommandType:   "UpdateArtigoMetadata",
			CommandParams: "{}",
			RequesterID:   "u1",
			Status:        model.PendingAwaitingReview,
			CreatedAt:     time.Now(),
		}))
		_, err := repos.Pending.GetByID(ctx, tx, "p1")
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repos.Pending.GetByID(ctx, nil, "p1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPendingGetForUpdateSerialisesResolvers(t *testing.T) {
	db := testutils.SetupTestDB(t)
	s := gormstore.New(db)
	repos := s.Repositories()
	ctx := context.Background()
	m := txn.NewManager(s, nil)

	require.NoError(t, repos.Pending.Add(ctx, nil, &model.Pending{
		ID: "p1", TargetID: "a1", TargetType: model.TargetArticle, CommandType: "ChangeArticleStatus",
		CommandParams: "{}", RequesterID: "u1", Status: model.PendingAwaitingReview, CreatedAt: testutils.Now,
	}))

	locked := make(chan struct{})
	release := make(chan struct{})
	first := make(chan error, 1)
	go func() {
		first <- m.WithinTransaction(ctx, func(ctx context.Context, tx *txn.Tx) error {
			p, err := repos.Pending.GetForUpdate(ctx, tx, "p1")
			if err != nil {
				return err
			}
			close(locked)
			<-release
			p.Status = model.PendingApproved
			return repos.Pending.Update(ctx, tx, p)
		})
	}()
	<-locked

	var seen model.PendingStatus
	second := make(chan error, 1)
	go func() {
		second <- m.WithinTransaction(ctx, func(ctx context.Context, tx *txn.Tx) error {
			p, err := repos.Pending.GetForUpdate(ctx, tx, "p1")
			if err != nil {
				return err
			}
			seen = p.Status
			return nil
		})
	}()

	// 第二个事务在锁释放前不能读到请求
	select {
	case err := <-second:
		t.Fatalf("second resolver was not blocked: %v", err)
	case <-time.After(200 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-first)
	require.NoError(t, <-second)
	assert.Equal(t, model.PendingApproved, seen)
}
