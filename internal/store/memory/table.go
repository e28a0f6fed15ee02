package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/store"
	"terminal-terrace/editorial/internal/txn"
)

type row struct {
	data []byte
	seq  uint64
}

// table 一张表，键为实体 id
type table[T model.Entity] struct {
	s    *Store
	name string
	rows map[string]row
}

func newTable[T model.Entity](s *Store, name string) *table[T] {
	return &table[T]{s: s, name: name, rows: map[string]row{}}
}

func (t *table[T]) putRow(id string, r row, existed bool) {
	if existed {
		t.rows[id] = r
		return
	}
	delete(t.rows, id)
}

func (t *table[T]) decode(r row) (T, error) {
	var v T
	if err := json.Unmarshal(r.data, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", t.name, err)
	}
	return v, nil
}

func (t *table[T]) GetByID(_ context.Context, tx *txn.Tx, id string) (T, error) {
	var zero T
	if err := checkTx(tx); err != nil {
		return zero, err
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	r, ok := t.rows[id]
	if !ok {
		return zero, fmt.Errorf("%s %s: %w", t.name, id, store.ErrNotFound)
	}
	return t.decode(r)
}

func (t *table[T]) GetByIDs(_ context.Context, tx *txn.Tx, ids []string) ([]T, error) {
	if err := checkTx(tx); err != nil {
		return nil, err
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		r, ok := t.rows[id]
		if !ok {
			continue
		}
		v, err := t.decode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (t *table[T]) Add(_ context.Context, tx *txn.Tx, entity T) error {
	if err := checkTx(tx); err != nil {
		return err
	}
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("encode %s: %w", t.name, err)
	}

	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	id := entity.GetID()
	if _, ok := t.rows[id]; ok {
		return fmt.Errorf("%s %s: %w", t.name, id, store.ErrDuplicate)
	}
	t.s.record(tx, t, t.name, id, row{}, false)
	t.s.seq++
	t.rows[id] = row{data: data, seq: t.s.seq}
	return nil
}

func (t *table[T]) Update(_ context.Context, tx *txn.Tx, entity T) error {
	if err := checkTx(tx); err != nil {
		return err
	}
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("encode %s: %w", t.name, err)
	}

	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	id := entity.GetID()
	r, ok := t.rows[id]
	if !ok {
		return fmt.Errorf("%s %s: %w", t.name, id, store.ErrNotFound)
	}
	t.s.record(tx, t, t.name, id, r, true)
	t.rows[id] = row{data: data, seq: r.seq}
	return nil
}

func (t *table[T]) Delete(_ context.Context, tx *txn.Tx, id string) error {
	if err := checkTx(tx); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	r, ok := t.rows[id]
	if !ok {
		return fmt.Errorf("%s %s: %w", t.name, id, store.ErrNotFound)
	}
	t.s.record(tx, t, t.name, id, r, true)
	delete(t.rows, id)
	return nil
}

// all 按插入顺序返回满足条件的实体
func (t *table[T]) all(tx *txn.Tx, match func(T) bool) ([]T, error) {
	if err := checkTx(tx); err != nil {
		return nil, err
	}
	t.s.mu.RLock()
	rows := slices.Collect(maps.Values(t.rows))
	t.s.mu.RUnlock()

	slices.SortFunc(rows, func(a, b row) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})

	out := make([]T, 0, len(rows))
	for _, r := range rows {
		v, err := t.decode(r)
		if err != nil {
			return nil, err
		}
		if match == nil || match(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// page 过滤、稳定排序后分页，返回总数
func (t *table[T]) page(tx *txn.Tx, match func(T) bool, cmp func(a, b T) int, p store.Page) ([]T, int64, error) {
	items, err := t.all(tx, match)
	if err != nil {
		return nil, 0, err
	}
	if cmp != nil {
		slices.SortStableFunc(items, cmp)
	}

	p = p.Normalize()
	total := int64(len(items))
	start := min(p.Skip(), len(items))
	end := min(start+p.PageSize, len(items))
	return items[start:end], total, nil
}

// first 返回第一个满足条件的实体
func (t *table[T]) first(tx *txn.Tx, match func(T) bool) (T, error) {
	var zero T
	items, err := t.all(tx, match)
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, fmt.Errorf("%s: %w", t.name, store.ErrNotFound)
	}
	return items[0], nil
}
