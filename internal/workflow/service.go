// Package workflow 编辑流程：受控命令的路由、审批与执行
//
// 每个修改操作先经过审批闸门：Bolsista 的请求被序列化为待审批记录，
// EditorChefe/Administrador 或满足关系权限的调用方直接执行。
// 审批通过时反序列化命令，调用与直接执行完全相同的执行函数。
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"

	"terminal-terrace/editorial/internal/history"
	"terminal-terrace/editorial/internal/identity"
	"terminal-terrace/editorial/internal/logger"
	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/store"
	"terminal-terrace/editorial/internal/txn"
)

// Service 编辑流程服务
type Service struct {
	repos    store.Repositories
	tx       *txn.Manager
	identity identity.Resolver
	history  *history.Engine
	policy   *bluemonday.Policy
	log      *logrus.Entry
	now      func() time.Time
	newID    func() string
}

type Option func(*Service)

// WithClock 替换时钟
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator 替换 id 生成
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// WithLogger 设置日志
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) {
		s.log = logger.Component(log, "workflow")
	}
}

// WithIdentity 替换身份解析，默认直接查询员工仓储
func WithIdentity(r identity.Resolver) Option {
	return func(s *Service) {
		s.identity = r
	}
}

func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		repos:  st.Repositories(),
		policy: bluemonday.UGCPolicy(),
		log:    logger.Component(nil, "workflow"),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.identity == nil {
		s.identity = identity.NewStoreResolver(s.repos.Staff)
	}
	s.tx = txn.NewManager(st, s.log.WithField("component", "txn"))
	s.history = history.NewEngine(s.repos, history.WithClock(s.now), history.WithIDGenerator(s.newID))
	return s
}

// Result 受控命令的结果：直接执行时 Value 有值，推迟时 Pending 有值
type Result[T any] struct {
	Value   T              `json:"value,omitempty"`
	Pending *model.Pending `json:"pending,omitempty"`
}

// Deferred 是否已转为待审批请求
func (r Result[T]) Deferred() bool {
	return r.Pending != nil
}

// Page 分页结果
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

func newPage[T any](items []T, total int64, p store.Page) Page[T] {
	p = p.Normalize()
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Page: p.Page, PageSize: p.PageSize}
}

// staffOf 解析调用方的员工记录，非员工为 nil
func (s *Service) staffOf(ctx context.Context, callerID string) (*model.Staff, error) {
	staff, err := s.identity.StaffByUserID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("resolve caller: %w", err)
	}
	return staff, nil
}
