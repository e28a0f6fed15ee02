// Package history 文章内容版本链
//
// 版本只追加：每次修改内容都会新建一条版本记录，编辑记录的 HistoryIDs 增长一位，
// CurrentHistoryID 指向最新版本。已存在版本的内容不再修改，只有批注列表可变。
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/store"
	"terminal-terrace/editorial/internal/txn"
)

var ErrAlreadyInitialized = errors.New("article already has content history")

// Engine 版本管理
type Engine struct {
	articles   store.ArticleRepository
	editorials store.EditorialRepository
	histories  store.HistoryRepository
	newID      func() string
	now        func() time.Time
}

type Option func(*Engine)

// WithClock 替换时钟
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDGenerator 替换 id 生成
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

func NewEngine(repos store.Repositories, opts ...Option) *Engine {
	e := &Engine{
		articles:   repos.Articles,
		editorials: repos.Editorials,
		histories:  repos.Histories,
		newID:      uuid.NewString,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateInitialVersion 创建 Original 版本，作为编辑记录唯一的版本
func (e *Engine) CreateInitialVersion(ctx context.Context, tx *txn.Tx, articleID, content string, media []model.Media) (*model.ContentHistory, error) {
	editorial, err := e.editorials.GetByArticleID(ctx, tx, articleID)
	if err != nil {
		return nil, fmt.Errorf("load editorial: %w", err)
	}
	if len(editorial.HistoryIDs) > 0 {
		return nil, fmt.Errorf("article %s: %w", articleID, ErrAlreadyInitialized)
	}

	now := e.now()
	h := &model.ContentHistory{
		ID:        e.newID(),
		ArticleID: articleID,
		Ordinal:   model.Original,
		Content:   content,
		Media:     media,
		CreatedAt: now,
	}
	if err := e.histories.Add(ctx, tx, h); err != nil {
		return nil, fmt.Errorf("add history: %w", err)
	}

	editorial.HistoryIDs = []string{h.ID}
	editorial.CurrentHistoryID = h.ID
	editorial.UpdatedAt = now
	if err := e.editorials.Update(ctx, tx, editorial); err != nil {
		return nil, fmt.Errorf("update editorial: %w", err)
	}
	return h, nil
}

// AppendVersion 追加新版本
// 序号为 min(已有版本数, Final)，同时更新文章的编辑时间与首图
func (e *Engine) AppendVersion(ctx context.Context, tx *txn.Tx, articleID, content string, media []model.Media) (*model.ContentHistory, error) {
	article, err := e.articles.GetByID(ctx, tx, articleID)
	if err != nil {
		return nil, fmt.Errorf("load article: %w", err)
	}
	editorial, err := e.editorials.GetByArticleID(ctx, tx, articleID)
	if err != nil {
		return nil, fmt.Errorf("load editorial: %w", err)
	}

	now := e.now()
	h := &model.ContentHistory{
		ID:        e.newID(),
		ArticleID: articleID,
		Ordinal:   model.NextOrdinal(len(editorial.HistoryIDs)),
		Content:   content,
		Media:     media,
		CreatedAt: now,
	}
	if err := e.histories.Add(ctx, tx, h); err != nil {
		return nil, fmt.Errorf("add history: %w", err)
	}

	editorial.HistoryIDs = append(editorial.HistoryIDs, h.ID)
	editorial.CurrentHistoryID = h.ID
	editorial.UpdatedAt = now
	if err := e.editorials.Update(ctx, tx, editorial); err != nil {
		return nil, fmt.Errorf("update editorial: %w", err)
	}

	article.EditedAt = now
	if len(media) > 0 {
		featured := media[0]
		article.FeaturedMedia = &featured
	}
	if err := e.articles.Update(ctx, tx, article); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return h, nil
}

// Current 文章当前版本
func (e *Engine) Current(ctx context.Context, tx *txn.Tx, articleID string) (*model.ContentHistory, error) {
	editorial, err := e.editorials.GetByArticleID(ctx, tx, articleID)
	if err != nil {
		return nil, err
	}
	return e.histories.GetByID(ctx, tx, editorial.CurrentHistoryID)
}

// Versions 按创建顺序返回文章的全部版本
func (e *Engine) Versions(ctx context.Context, articleID string) ([]*model.ContentHistory, error) {
	if _, err := e.editorials.GetByArticleID(ctx, nil, articleID); err != nil {
		return nil, err
	}
	return e.histories.ListByArticle(ctx, nil, articleID)
}

// Get 按 id 读取版本
func (e *Engine) Get(ctx context.Context, historyID string) (*model.ContentHistory, error) {
	return e.histories.GetByID(ctx, nil, historyID)
}
