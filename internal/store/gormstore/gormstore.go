// Package gormstore PostgreSQL 存储，基于 gorm
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/store"
	"terminal-terrace/editorial/internal/txn"
)

var errForeignTx = errors.New("transaction was not started by gormstore")

// Store gorm 存储
type Store struct {
	db    *gorm.DB
	repos store.Repositories
}

func New(db *gorm.DB) *Store {
	return &Store{
		db: db,
		repos: store.Repositories{
			Articles:     &ArticleRepository{newRepository(db, "article", func() *model.Article { return &model.Article{} })},
			Editorials:   &EditorialRepository{newRepository(db, "editorial", func() *model.EditorialRecord { return &model.EditorialRecord{} })},
			Histories:    &HistoryRepository{newRepository(db, "history", func() *model.ContentHistory { return &model.ContentHistory{} })},
			Authors:      &AuthorRepository{newRepository(db, "author", func() *model.Author { return &model.Author{} })},
			Staff:        &StaffRepository{newRepository(db, "staff", func() *model.Staff { return &model.Staff{} })},
			Volumes:      &VolumeRepository{newRepository(db, "volume", func() *model.Volume { return &model.Volume{} })},
			Interactions: &InteractionRepository{newRepository(db, "interaction", func() *model.Interaction { return &model.Interaction{} })},
			Pending:      &PendingRepository{newRepository(db, "pending", func() *model.Pending { return &model.Pending{} })},
		},
	}
}

func (s *Store) Repositories() store.Repositories {
	return s.repos
}

// Begin 开启数据库事务
func (s *Store) Begin(ctx context.Context) (txn.Handle, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &session{db: tx}, nil
}

// session 事务会话
type session struct {
	db *gorm.DB
}

func (s *session) Commit() error {
	return s.db.Commit().Error
}

func (s *session) Rollback() error {
	return s.db.Rollback().Error
}

// repository 通用仓储
type repository[T model.Entity] struct {
	db   *gorm.DB
	name string
	newT func() T
}

func newRepository[T model.Entity](db *gorm.DB, name string, newT func() T) *repository[T] {
	return &repository[T]{db: db, name: name, newT: newT}
}

// conn 选择执行语句的连接，事务中使用事务会话
func (r *repository[T]) conn(ctx context.Context, tx *txn.Tx) (*gorm.DB, error) {
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}
	if !tx.IsActive() {
		return nil, txn.ErrNotActive
	}
	s, ok := tx.Handle().(*session)
	if !ok {
		return nil, errForeignTx
	}
	return s.db.WithContext(ctx), nil
}

func (r *repository[T]) translate(id string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s %s: %w", r.name, id, store.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s %s: %w", r.name, id, store.ErrDuplicate)
	}
	return err
}

func (r *repository[T]) GetByID(ctx context.Context, tx *txn.Tx, id string) (T, error) {
	var zero T
	db, err := r.conn(ctx, tx)
	if err != nil {
		return zero, err
	}
	v := r.newT()
	if err := db.First(v, "id = ?", id).Error; err != nil {
		return zero, r.translate(id, err)
	}
	return v, nil
}

func (r *repository[T]) GetByIDs(ctx context.Context, tx *txn.Tx, ids []string) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	db, err := r.conn(ctx, tx)
	if err != nil {
		return nil, err
	}
	var rows []T
	if err := db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]T, len(rows))
	for _, row := range rows {
		byID[row.GetID()] = row
	}
	out := make([]T, 0, len(rows))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *repository[T]) Add(ctx context.Context, tx *txn.Tx, entity T) error {
	db, err := r.conn(ctx, tx)
	if err != nil {
		return err
	}
	return r.translate(entity.GetID(), db.Create(entity).Error)
}

func (r *repository[T]) Update(ctx context.Context, tx *txn.Tx, entity T) error {
	db, err := r.conn(ctx, tx)
	if err != nil {
		return err
	}
	result := db.Model(entity).Select("*").Updates(entity)
	if result.Error != nil {
		return r.translate(entity.GetID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", r.name, entity.GetID(), store.ErrNotFound)
	}
	return nil
}

func (r *repository[T]) Delete(ctx context.Context, tx *txn.Tx, id string) error {
	db, err := r.conn(ctx, tx)
	if err != nil {
		return err
	}
	result := db.Delete(r.newT(), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", r.name, id, store.ErrNotFound)
	}
	return nil
}

// first 返回第一条匹配记录
func (r *repository[T]) first(ctx context.Context, tx *txn.Tx, query string, args ...any) (T, error) {
	var zero T
	db, err := r.conn(ctx, tx)
	if err != nil {
		return zero, err
	}
	v := r.newT()
	if err := db.Where(query, args...).First(v).Error; err != nil {
		return zero, r.translate(fmt.Sprint(args...), err)
	}
	return v, nil
}

// page 分页查询，scope 追加过滤条件
func (r *repository[T]) page(ctx context.Context, tx *txn.Tx, scope func(*gorm.DB) *gorm.DB, order string, p store.Page) ([]T, int64, error) {
	db, err := r.conn(ctx, tx)
	if err != nil {
		return nil, 0, err
	}
	p = p.Normalize()

	query := db.Model(r.newT())
	if scope != nil {
		query = scope(query)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []T
	if err := query.Order(order).Offset(p.Skip()).Limit(p.PageSize).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
