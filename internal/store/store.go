// Package store 各实体的仓储契约，所有方法接收可选的事务，nil 表示不在事务中
package store

import (
	"context"
	"errors"

	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/txn"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page 分页参数，Page 从 0 开始，skip = Page * PageSize
type Page struct {
	Page     int
	PageSize int
}

// Normalize 修正非法分页参数
func (p Page) Normalize() Page {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p Page) Skip() int {
	return p.Page * p.PageSize
}

// Repository 通用 CRUD
type Repository[T model.Entity] interface {
	GetByID(ctx context.Context, tx *txn.Tx, id string) (T, error)
	// GetByIDs 按传入顺序返回，缺失的 id 跳过
	GetByIDs(ctx context.Context, tx *txn.Tx, ids []string) ([]T, error)
	Add(ctx context.Context, tx *txn.Tx, entity T) error
	// Update 整体替换，记录不存在返回 ErrNotFound
	Update(ctx context.Context, tx *txn.Tx, entity T) error
	Delete(ctx context.Context, tx *txn.Tx, id string) error
}

// ArticleFilter 文章查询条件，零值字段不参与过滤
type ArticleFilter struct {
	Statuses []model.ArticleStatus
	Type     model.ArticleType
	VolumeID string
	AuthorID string
}

type ArticleRepository interface {
	Repository[*model.Article]
	List(ctx context.Context, tx *txn.Tx, filter ArticleFilter, page Page) ([]*model.Article, int64, error)
}

type EditorialRepository interface {
	Repository[*model.EditorialRecord]
	GetByArticleID(ctx context.Context, tx *txn.Tx, articleID string) (*model.EditorialRecord, error)
}

type HistoryRepository interface {
	Repository[*model.ContentHistory]
	// ListByArticle 按创建顺序返回文章的全部版本
	ListByArticle(ctx context.Context, tx *txn.Tx, articleID string) ([]*model.ContentHistory, error)
}

type AuthorRepository interface {
	Repository[*model.Author]
	GetByUserID(ctx context.Context, tx *txn.Tx, userID string) (*model.Author, error)
}

type StaffRepository interface {
	Repository[*model.Staff]
	GetByUserID(ctx context.Context, tx *txn.Tx, userID string) (*model.Staff, error)
	List(ctx context.Context, tx *txn.Tx, page Page) ([]*model.Staff, int64, error)
}

type VolumeRepository interface {
	Repository[*model.Volume]
	List(ctx context.Context, tx *txn.Tx, page Page) ([]*model.Volume, int64, error)
}

// InteractionFilter 评论查询条件
type InteractionFilter struct {
	ArticleID string
	Kind      model.InteractionKind
}

type InteractionRepository interface {
	Repository[*model.Interaction]
	List(ctx context.Context, tx *txn.Tx, filter InteractionFilter, page Page) ([]*model.Interaction, int64, error)
}

// PendingFilter 待审批请求查询条件
type PendingFilter struct {
	Status      model.PendingStatus
	TargetID    string
	RequesterID string
}

type PendingRepository interface {
	Repository[*model.Pending]
	List(ctx context.Context, tx *txn.Tx, filter PendingFilter, page Page) ([]*model.Pending, int64, error)
	// GetForUpdate 读取并锁定请求，直到事务结束
	GetForUpdate(ctx context.Context, tx *txn.Tx, id string) (*model.Pending, error)
}

// Repositories 全部仓储
type Repositories struct {
	Articles     ArticleRepository
	Editorials   EditorialRepository
	Histories    HistoryRepository
	Authors      AuthorRepository
	Staff        StaffRepository
	Volumes      VolumeRepository
	Interactions InteractionRepository
	Pending      PendingRepository
}

// Store 一种存储实现：仓储集合加事务入口
type Store interface {
	txn.Beginner
	Repositories() Repositories
}
