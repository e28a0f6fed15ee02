// Package memory 内存存储，用于本地开发与测试
//
// 实体以 JSON 保存，读出的是副本。事务记录自己写过的行的旧值，回滚时只恢复这些行。
// 同一时刻只允许一个事务。
package memory

import (
	"context"
	"sync"

	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/store"
	"terminal-terrace/editorial/internal/txn"
)

// rowRestorer 回滚时写回单行
type rowRestorer interface {
	putRow(id string, r row, existed bool)
}

// undo 事务写入前的行
type undo struct {
	t       rowRestorer
	id      string
	prev    row
	existed bool
}

// Store 内存存储
type Store struct {
	mu     sync.RWMutex
	txMu   sync.Mutex
	seq    uint64
	active *handle
	repos  store.Repositories
}

// New 创建空的内存存储
func New() *Store {
	s := &Store{}
	s.repos = store.Repositories{
		Articles:     &articleRepo{table: newTable[*model.Article](s, "article")},
		Editorials:   &editorialRepo{table: newTable[*model.EditorialRecord](s, "editorial")},
		Histories:    &historyRepo{table: newTable[*model.ContentHistory](s, "history")},
		Authors:      &authorRepo{table: newTable[*model.Author](s, "author")},
		Staff:        &staffRepo{table: newTable[*model.Staff](s, "staff")},
		Volumes:      &volumeRepo{table: newTable[*model.Volume](s, "volume")},
		Interactions: &interactionRepo{table: newTable[*model.Interaction](s, "interaction")},
		Pending:      &pendingRepo{table: newTable[*model.Pending](s, "pending")},
	}
	return s
}

func (s *Store) Repositories() store.Repositories {
	return s.repos
}

// Begin 开启事务，阻塞直到上一个事务结束
func (s *Store) Begin(ctx context.Context) (txn.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.txMu.Lock()

	h := &handle{s: s, touched: map[string]struct{}{}}
	s.mu.Lock()
	s.active = h
	s.mu.Unlock()
	return h, nil
}

// record 在事务第一次写某行之前保存该行，调用方持有 mu
func (s *Store) record(tx *txn.Tx, t rowRestorer, name, id string, prev row, existed bool) {
	if tx == nil || s.active == nil {
		return
	}
	key := name + "/" + id
	if _, ok := s.active.touched[key]; ok {
		return
	}
	s.active.touched[key] = struct{}{}
	s.active.undo = append(s.active.undo, undo{t: t, id: id, prev: prev, existed: existed})
}

type handle struct {
	s       *Store
	undo    []undo
	touched map[string]struct{}
	done    bool
}

func (h *handle) Commit() error {
	if h.done {
		return txn.ErrNotActive
	}
	h.done = true
	h.s.mu.Lock()
	h.s.active = nil
	h.s.mu.Unlock()
	h.s.txMu.Unlock()
	return nil
}

// Rollback 只恢复本事务写过的行，事务外的写入保留
func (h *handle) Rollback() error {
	if h.done {
		return txn.ErrNotActive
	}
	h.done = true
	h.s.mu.Lock()
	for i := len(h.undo) - 1; i >= 0; i-- {
		u := h.undo[i]
		u.t.putRow(u.id, u.prev, u.existed)
	}
	h.s.active = nil
	h.s.mu.Unlock()
	h.s.txMu.Unlock()
	return nil
}

func checkTx(tx *txn.Tx) error {
	if tx != nil && !tx.IsActive() {
		return txn.ErrNotActive
	}
	return nil
}
