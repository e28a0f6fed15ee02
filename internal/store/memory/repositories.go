package memory

import (
	"context"
	"slices"

	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/store"
	"terminal-terrace/editorial/internal/txn"
)

type articleRepo struct {
	*table[*model.Article]
}

func (r *articleRepo) List(_ context.Context, tx *txn.Tx, f store.ArticleFilter, p store.Page) ([]*model.Article, int64, error) {
	match := func(a *model.Article) bool {
		if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, a.Status) {
			return false
		}
		if f.Type != "" && a.Type != f.Type {
			return false
		}
		if f.VolumeID != "" && (a.VolumeID == nil || *a.VolumeID != f.VolumeID) {
			return false
		}
		if f.AuthorID != "" && !slices.Contains(a.AuthorIDs, f.AuthorID) {
			return false
		}
		return true
	}
	// 最新创建的在前
	return r.page(tx, match, func(a, b *model.Article) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	}, p)
}

type editorialRepo struct {
	*table[*model.EditorialRecord]
}

func (r *editorialRepo) GetByArticleID(_ context.Context, tx *txn.Tx, articleID string) (*model.EditorialRecord, error) {
	return r.first(tx, func(e *model.EditorialRecord) bool {
		return e.ArticleID == articleID
	})
}

type historyRepo struct {
	*table[*model.ContentHistory]
}

func (r *historyRepo) ListByArticle(_ context.Context, tx *txn.Tx, articleID string) ([]*model.ContentHistory, error) {
	return r.all(tx, func(h *model.ContentHistory) bool {
		return h.ArticleID == articleID
	})
}

type authorRepo struct {
	*table[*model.Author]
}

func (r *authorRepo) GetByUserID(_ context.Context, tx *txn.Tx, userID string) (*model.Author, error) {
	return r.first(tx, func(a *model.Author) bool {
		return a.UserID == userID
	})
}

type staffRepo struct {
	*table[*model.Staff]
}

func (r *staffRepo) GetByUserID(_ context.Context, tx *txn.Tx, userID string) (*model.Staff, error) {
	return r.first(tx, func(s *model.Staff) bool {
		return s.UserID == userID
	})
}

func (r *staffRepo) List(_ context.Context, tx *txn.Tx, p store.Page) ([]*model.Staff, int64, error) {
	return r.page(tx, nil, nil, p)
}

type volumeRepo struct {
	*table[*model.Volume]
}

func (r *volumeRepo) List(_ context.Context, tx *txn.Tx, p store.Page) ([]*model.Volume, int64, error) {
	// 期号大的在前
	return r.page(tx, nil, func(a, b *model.Volume) int {
		return b.Edition - a.Edition
	}, p)
}

type interactionRepo struct {
	*table[*model.Interaction]
}

func (r *interactionRepo) List(_ context.Context, tx *txn.Tx, f store.InteractionFilter, p store.Page) ([]*model.Interaction, int64, error) {
	match := func(i *model.Interaction) bool {
		if f.ArticleID != "" && i.ArticleID != f.ArticleID {
			return false
		}
		return f.Kind == "" || i.Kind == f.Kind
	}
	return r.page(tx, match, func(a, b *model.Interaction) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	}, p)
}

type pendingRepo struct {
	*table[*model.Pending]
}

// GetForUpdate 内存存储的事务互斥执行，无需额外加锁
func (r *pendingRepo) GetForUpdate(ctx context.Context, tx *txn.Tx, id string) (*model.Pending, error) {
	return r.GetByID(ctx, tx, id)
}

func (r *pendingRepo) List(_ context.Context, tx *txn.Tx, f store.PendingFilter, p store.Page) ([]*model.Pending, int64, error) {
	match := func(pd *model.Pending) bool {
		if f.Status != "" && pd.Status != f.Status {
			return false
		}
		if f.TargetID != "" && pd.TargetID != f.TargetID {
			return false
		}
		return f.RequesterID == "" || pd.RequesterID == f.RequesterID
	}
	return r.page(tx, match, func(a, b *model.Pending) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	}, p)
}
