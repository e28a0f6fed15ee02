// Package txn 显式事务：事务对象作为参数沿调用链传递，nil 表示不在事务中
package txn

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"terminal-terrace/editorial/internal/metrics"
)

var (
	ErrNestedTransaction = errors.New("transaction already active")
	ErrNotActive         = errors.New("transaction is not active")
)

// State 事务生命周期 NotStarted -> Active -> Committed | Aborted
type State int

const (
	NotStarted State = iota
	Active
	Committed
	Aborted
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case Active:
		return "Active"
	case Committed:
		return "Committed"
	case Aborted:
		return "Aborted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Handle 存储层的事务会话
type Handle interface {
	Commit() error
	Rollback() error
}

// Beginner 能够开启事务的存储
type Beginner interface {
	Begin(ctx context.Context) (Handle, error)
}

// Tx 一次事务
type Tx struct {
	state  State
	handle Handle
}

// State 当前状态
func (t *Tx) State() State {
	if t == nil {
		return NotStarted
	}
	return t.state
}

// IsActive 是否处于事务中
func (t *Tx) IsActive() bool {
	return t != nil && t.state == Active
}

// Handle 存储层会话，仓储通过它执行语句
func (t *Tx) Handle() Handle {
	if t == nil {
		return nil
	}
	return t.handle
}

// Commit 提交
func (t *Tx) Commit() error {
	if !t.IsActive() {
		return ErrNotActive
	}
	if err := t.handle.Commit(); err != nil {
		// 提交失败时尽量回滚，事务视为已中止
		_ = t.handle.Rollback()
		t.state = Aborted
		metrics.RecordTransaction("aborted")
		return fmt.Errorf("commit: %w", err)
	}
	t.state = Committed
	metrics.RecordTransaction("committed")
	return nil
}

// Abort 回滚
func (t *Tx) Abort() error {
	if !t.IsActive() {
		return ErrNotActive
	}
	t.state = Aborted
	metrics.RecordTransaction("aborted")
	if err := t.handle.Rollback(); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

type ctxKey struct{}

// FromContext 取出 ctx 上正在进行的事务
func FromContext(ctx context.Context) *Tx {
	tx, _ := ctx.Value(ctxKey{}).(*Tx)
	return tx
}

// Manager 事务管理
type Manager struct {
	beginner Beginner
	log      *logrus.Entry
}

func NewManager(beginner Beginner, log *logrus.Entry) *Manager {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Manager{beginner: beginner, log: log}
}

// Start 开启事务，ctx 上已有活动事务时拒绝嵌套
func (m *Manager) Start(ctx context.Context) (*Tx, error) {
	if FromContext(ctx).IsActive() {
		return nil, ErrNestedTransaction
	}
	handle, err := m.beginner.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{state: Active, handle: handle}, nil
}

// WithinTransaction 在事务中执行 fn，fn 返回错误或 panic 时回滚，错误原样返回
func (m *Manager) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) (err error) {
	tx, err := m.Start(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			if abortErr := tx.Abort(); abortErr != nil {
				m.log.WithError(abortErr).Error("回滚事务失败")
			}
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, ctxKey{}, tx), tx); err != nil {
		if abortErr := tx.Abort(); abortErr != nil {
			m.log.WithError(abortErr).Error("回滚事务失败")
		}
		return err
	}
	return tx.Commit()
}
