package gormstore

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/store"
	"terminal-terrace/editorial/internal/txn"
)

// ArticleRepository 文章仓储
type ArticleRepository struct {
	*repository[*model.Article]
}

func (r *ArticleRepository) List(ctx context.Context, tx *txn.Tx, f store.ArticleFilter, p store.Page) ([]*model.Article, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if len(f.Statuses) > 0 {
			db = db.Where("status IN ?", f.Statuses)
		}
		if f.Type != "" {
			db = db.Where("type = ?", f.Type)
		}
		if f.VolumeID != "" {
			db = db.Where("volume_id = ?", f.VolumeID)
		}
		if f.AuthorID != "" {
			// jsonb 数组包含
			contains, _ := json.Marshal([]string{f.AuthorID})
			db = db.Where("author_ids @> ?::jsonb", string(contains))
		}
		return db
	}
	return r.page(ctx, tx, scope, "created_at DESC, id", p)
}

// EditorialRepository 编辑记录仓储
type EditorialRepository struct {
	*repository[*model.EditorialRecord]
}

func (r *EditorialRepository) GetByArticleID(ctx context.Context, tx *txn.Tx, articleID string) (*model.EditorialRecord, error) {
	return r.first(ctx, tx, "article_id = ?", articleID)
}

// HistoryRepository 内容版本仓储
type HistoryRepository struct {
	*repository[*model.ContentHistory]
}

func (r *HistoryRepository) ListByArticle(ctx context.Context, tx *txn.Tx, articleID string) ([]*model.ContentHistory, error) {
	db, err := r.conn(ctx, tx)
	if err != nil {
		return nil, err
	}
	var rows []*model.ContentHistory
	err = db.Where("article_id = ?", articleID).Order("created_at, ordinal").Find(&rows).Error
	return rows, err
}

// AuthorRepository 作者仓储
type AuthorRepository struct {
	*repository[*model.Author]
}

func (r *AuthorRepository) GetByUserID(ctx context.Context, tx *txn.Tx, userID string) (*model.Author, error) {
	return r.first(ctx, tx, "user_id = ?", userID)
}

// StaffRepository 员工仓储
type StaffRepository struct {
	*repository[*model.Staff]
}

func (r *StaffRepository) GetByUserID(ctx context.Context, tx *txn.Tx, userID string) (*model.Staff, error) {
	return r.first(ctx, tx, "user_id = ?", userID)
}

func (r *StaffRepository) List(ctx context.Context, tx *txn.Tx, p store.Page) ([]*model.Staff, int64, error) {
	return r.page(ctx, tx, nil, "created_at, id", p)
}

// VolumeRepository 期刊仓储
type VolumeRepository struct {
	*repository[*model.Volume]
}

func (r *VolumeRepository) List(ctx context.Context, tx *txn.Tx, p store.Page) ([]*model.Volume, int64, error) {
	return r.page(ctx, tx, nil, "edition DESC, id", p)
}

// InteractionRepository 评论仓储
type InteractionRepository struct {
	*repository[*model.Interaction]
}

func (r *InteractionRepository) List(ctx context.Context, tx *txn.Tx, f store.InteractionFilter, p store.Page) ([]*model.Interaction, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if f.ArticleID != "" {
			db = db.Where("article_id = ?", f.ArticleID)
		}
		if f.Kind != "" {
			db = db.Where("kind = ?", f.Kind)
		}
		return db
	}
	return r.page(ctx, tx, scope, "created_at, id", p)
}

// PendingRepository 待审批请求仓储
type PendingRepository struct {
	*repository[*model.Pending]
}

// GetForUpdate 事务中使用 SELECT ... FOR UPDATE，并发处理同一请求时后来者等待前者提交
func (r *PendingRepository) GetForUpdate(ctx context.Context, tx *txn.Tx, id string) (*model.Pending, error) {
	db, err := r.conn(ctx, tx)
	if err != nil {
		return nil, err
	}
	if tx != nil {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var p model.Pending
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		return nil, r.translate(id, err)
	}
	return &p, nil
}

func (r *PendingRepository) List(ctx context.Context, tx *txn.Tx, f store.PendingFilter, p store.Page) ([]*model.Pending, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.TargetID != "" {
			db = db.Where("target_id = ?", f.TargetID)
		}
		if f.RequesterID != "" {
			db = db.Where("requester_id = ?", f.RequesterID)
		}
		return db
	}
	return r.page(ctx, tx, scope, "created_at DESC, id", p)
}
